package http

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"swapgate/src/Infrastructure/sideshift"
	"swapgate/src/logger"
	"swapgate/src/swap/domain"
)

type stubUseCase struct {
	res *domain.SwapQuoteResult
	err error
	got *domain.SwapRequest
}

func (s *stubUseCase) FetchSwapQuote(ctx context.Context, req *domain.SwapRequest) (*domain.SwapQuoteResult, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func newTestServer(uc domain.SwapUseCase) *httptest.Server {
	h := NewHandler(uc, logger.New("prod", "fatal"))
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return httptest.NewServer(r)
}

func fixtureResult() *domain.SwapQuoteResult {
	return &domain.SwapQuoteResult{
		FromNativeAmount:   big.NewInt(150000),
		ToNativeAmount:     big.NewInt(23647895),
		Tx:                 &domain.SpendResult{TxID: "tx-1"},
		DestinationAddress: "ltc1qsettle",
		Provider:           domain.ProviderSideShift,
		ExpiresAt:          time.Date(2021, 2, 1, 12, 15, 0, 0, time.UTC),
		OrderID:            "a67a90b58a6782f7834f",
	}
}

func postQuote(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/swap/quote", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestFetchSwapQuoteOK(t *testing.T) {
	uc := &stubUseCase{res: fixtureResult()}
	srv := newTestServer(uc)
	defer srv.Close()

	resp := postQuote(t, srv.URL,
		`{"from_asset":"btc","to_asset":"ltc","from_wallet_ref":"w1","to_wallet_ref":"w2","native_amount":"150000"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out SwapQuoteResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "a67a90b58a6782f7834f", out.OrderID)
	require.Equal(t, domain.ProviderSideShift, out.Provider)
	require.Equal(t, "150000", out.FromNativeAmount)
	require.Equal(t, "23647895", out.ToNativeAmount)
	require.Equal(t, "ltc1qsettle", out.DestinationAddress)
	require.Equal(t, "tx-1", out.TxID)
	require.False(t, out.IsEstimate)

	// parsing normalized tickers and defaulted the direction
	require.Equal(t, "BTC", uc.got.FromAsset)
	require.Equal(t, "LTC", uc.got.ToAsset)
	require.Equal(t, domain.DirectionFrom, uc.got.Direction)
	require.Equal(t, big.NewInt(150000), uc.got.NativeAmount)
}

func TestFetchSwapQuoteParsesDirectionTo(t *testing.T) {
	uc := &stubUseCase{res: fixtureResult()}
	srv := newTestServer(uc)
	defer srv.Close()

	resp := postQuote(t, srv.URL,
		`{"from_asset":"BTC","to_asset":"LTC","from_wallet_ref":"w1","to_wallet_ref":"w2","native_amount":"2894532784","direction":"to"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, domain.DirectionTo, uc.got.Direction)
}

func TestFetchSwapQuoteRejectsBadInput(t *testing.T) {
	uc := &stubUseCase{res: fixtureResult()}
	srv := newTestServer(uc)
	defer srv.Close()

	bodies := map[string]string{
		"malformed json":    `{`,
		"missing assets":    `{"from_wallet_ref":"w1","to_wallet_ref":"w2","native_amount":"1"}`,
		"missing wallets":   `{"from_asset":"BTC","to_asset":"LTC","native_amount":"1"}`,
		"amount not number": `{"from_asset":"BTC","to_asset":"LTC","from_wallet_ref":"w1","to_wallet_ref":"w2","native_amount":"abc"}`,
		"amount negative":   `{"from_asset":"BTC","to_asset":"LTC","from_wallet_ref":"w1","to_wallet_ref":"w2","native_amount":"-5"}`,
		"amount zero":       `{"from_asset":"BTC","to_asset":"LTC","from_wallet_ref":"w1","to_wallet_ref":"w2","native_amount":"0"}`,
		"unknown direction": `{"from_asset":"BTC","to_asset":"LTC","from_wallet_ref":"w1","to_wallet_ref":"w2","native_amount":"1","direction":"sideways"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			resp := postQuote(t, srv.URL, body)
			defer resp.Body.Close()
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestFetchSwapQuoteErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
		limit  string
	}{
		{"geo restricted", domain.ErrGeoRestricted, http.StatusForbidden, "geo_restricted", ""},
		{"unsupported pair", &domain.UnsupportedPairError{FromAsset: "BTC", ToAsset: "XYZ"}, http.StatusUnprocessableEntity, "unsupported_pair", ""},
		{"below limit", &domain.BelowLimitError{NativeMin: big.NewInt(1000000)}, http.StatusBadRequest, "below_limit", "1000000"},
		{"above limit", &domain.AboveLimitError{NativeMax: big.NewInt(500000000)}, http.StatusBadRequest, "above_limit", "500000000"},
		{"transport", &sideshift.HTTPError{StatusCode: 503, Body: "down"}, http.StatusBadGateway, "transport", ""},
		{"unclassified provider", &domain.UnclassifiedProviderError{Message: "odd"}, http.StatusBadGateway, "provider", ""},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &stubUseCase{err: tc.err}
			srv := newTestServer(uc)
			defer srv.Close()

			resp := postQuote(t, srv.URL,
				`{"from_asset":"BTC","to_asset":"LTC","from_wallet_ref":"w1","to_wallet_ref":"w2","native_amount":"150000"}`)
			defer resp.Body.Close()
			require.Equal(t, tc.status, resp.StatusCode)

			var out ErrorResponseBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			require.Equal(t, tc.kind, out.Kind)
			require.Equal(t, tc.limit, out.Limit)
			require.NotEmpty(t, out.Error)
		})
	}
}
