package http

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"swapgate/src/swap/domain"
)

// SwapQuoteRequestBody is the payload to request a fixed-rate swap quote.
// Amounts travel as decimal strings of native smallest units.
type SwapQuoteRequestBody struct {
	FromAsset     string `json:"from_asset" example:"BTC"`
	ToAsset       string `json:"to_asset" example:"LTC"`
	FromWalletRef string `json:"from_wallet_ref" example:"wallet-1"`
	ToWalletRef   string `json:"to_wallet_ref" example:"wallet-2"`
	NativeAmount  string `json:"native_amount" example:"150000"`
	Direction     string `json:"direction" example:"from"`
}

func (b SwapQuoteRequestBody) ToSwapRequest() (*domain.SwapRequest, error) {
	if b.FromAsset == "" || b.ToAsset == "" {
		return nil, errors.New("from_asset and to_asset are required")
	}
	if b.FromWalletRef == "" || b.ToWalletRef == "" {
		return nil, errors.New("from_wallet_ref and to_wallet_ref are required")
	}
	amount, ok := new(big.Int).SetString(b.NativeAmount, 10)
	if !ok || amount.Sign() <= 0 {
		return nil, errors.New("native_amount must be a positive integer string")
	}
	var direction domain.Direction
	switch strings.ToLower(b.Direction) {
	case "", string(domain.DirectionFrom):
		direction = domain.DirectionFrom
	case string(domain.DirectionTo):
		direction = domain.DirectionTo
	default:
		return nil, fmt.Errorf("unknown direction %q", b.Direction)
	}
	return &domain.SwapRequest{
		FromAsset:     strings.ToUpper(b.FromAsset),
		ToAsset:       strings.ToUpper(b.ToAsset),
		FromWalletRef: b.FromWalletRef,
		ToWalletRef:   b.ToWalletRef,
		NativeAmount:  amount,
		Direction:     direction,
	}, nil
}

// SwapQuoteResponseBody reports a funded swap quote
type SwapQuoteResponseBody struct {
	OrderID            string    `json:"order_id" example:"a67a90b58a6782f7834f"`
	Provider           string    `json:"provider" example:"sideshift"`
	FromNativeAmount   string    `json:"from_native_amount" example:"150000"`
	ToNativeAmount     string    `json:"to_native_amount" example:"23647895"`
	DestinationAddress string    `json:"destination_address" example:"ltc1q..."`
	TxID               string    `json:"tx_id"`
	IsEstimate         bool      `json:"is_estimate"`
	ExpiresAt          time.Time `json:"expires_at"`
}

func fromSwapResult(res *domain.SwapQuoteResult) SwapQuoteResponseBody {
	out := SwapQuoteResponseBody{
		OrderID:            res.OrderID,
		Provider:           res.Provider,
		FromNativeAmount:   res.FromNativeAmount.String(),
		ToNativeAmount:     res.ToNativeAmount.String(),
		DestinationAddress: res.DestinationAddress,
		IsEstimate:         res.IsEstimate,
		ExpiresAt:          res.ExpiresAt,
	}
	if res.Tx != nil {
		out.TxID = res.Tx.TxID
	}
	return out
}

// ErrorResponseBody carries the error kind and, for limit rejections, the
// offending native-unit boundary
type ErrorResponseBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Limit string `json:"limit,omitempty"`
}
