package domain

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"
)

// ExchangeAdapter is the outbound port to the swap provider.
type ExchangeAdapter interface {
	// Permissions reports whether quote and order creation are allowed.
	Permissions(ctx context.Context) (Permissions, error)

	// RateInfo fetches the current price and deposit bounds for a mapped
	// method pair.
	RateInfo(ctx context.Context, depositMethod, settleMethod string) (*RateInfo, error)

	// CreateFixedQuote locks a price for the given deposit amount.
	CreateFixedQuote(ctx context.Context, depositMethod, settleMethod string, depositAmount decimal.Decimal) (*FixedQuote, error)

	// CreateOrder turns a fixed quote into a fundable order settling to
	// settleAddress.
	CreateOrder(ctx context.Context, quoteID, settleAddress string) (*Order, error)
}

// WalletAdapter is the outbound port to wallet capabilities: receive
// addresses, denomination conversion, and spend building.
type WalletAdapter interface {
	ReceiveAddress(ctx context.Context, walletRef, asset string) (Address, error)
	ToDenomination(asset string, native *big.Int) (decimal.Decimal, error)
	ToNative(asset string, denominated decimal.Decimal) (*big.Int, error)
	MakeSpend(ctx context.Context, in *SpendInstruction) (*SpendResult, error)
}

// SwapUseCase is the single entry point exposed to delivery layers.
type SwapUseCase interface {
	FetchSwapQuote(ctx context.Context, req *SwapRequest) (*SwapQuoteResult, error)
}
