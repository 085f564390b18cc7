package exchange

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"swapgate/src/Infrastructure/sideshift"
)

func newAdapter(t *testing.T, baseURL, affiliateID string) *SideShiftAdapter {
	t.Helper()
	client, err := sideshift.NewClient(baseURL, sideshift.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return NewSideShiftAdapter(client, affiliateID)
}

func TestCreateOrderCarriesAffiliate(t *testing.T) {
	var sent map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &sent))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"orderId": "a67a90b58a6782f7834f",
			"depositAddress": {"address": "1F1tAaz5x1HUXrCNLbtMDqcw6o5GNn4xqX"},
			"settleAddress": {"address": "ltc1qsettle"},
			"depositAmount": "0.0015",
			"settleAmount": "0.23647895",
			"expiresAtISO": "2021-02-01T12:15:00.000Z"
		}`)
	}))
	defer srv.Close()

	a := newAdapter(t, srv.URL, "aff-123")
	order, err := a.CreateOrder(context.Background(), "quote-1", "ltc1qsettle")
	require.NoError(t, err)

	require.Equal(t, "aff-123", sent["affiliateId"])
	require.Equal(t, "quote-1", sent["quoteId"])
	require.Equal(t, "a67a90b58a6782f7834f", order.OrderID)
	require.Equal(t, "1F1tAaz5x1HUXrCNLbtMDqcw6o5GNn4xqX", order.DepositAddress)
	require.Equal(t, "ltc1qsettle", order.SettleAddress)
}

func TestRateInfoMapsPairBounds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pairs/btc/ltc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"rate": "188.317", "min": "0.0001", "max": "5"}`)
	}))
	defer srv.Close()

	a := newAdapter(t, srv.URL, "aff-123")
	rate, err := a.RateInfo(context.Background(), "btc", "ltc")
	require.NoError(t, err)

	require.Equal(t, "188.317", rate.Rate.String())
	require.Equal(t, "0.0001", rate.MinDeposit.String())
	require.Equal(t, "5", rate.MaxDeposit.String())
}

func TestPermissionsMapsFlags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"createOrder": false, "createQuote": true}`)
	}))
	defer srv.Close()

	a := newAdapter(t, srv.URL, "aff-123")
	perms, err := a.Permissions(context.Background())
	require.NoError(t, err)

	require.True(t, perms.CanCreateQuote)
	require.False(t, perms.CanCreateOrder)
}
