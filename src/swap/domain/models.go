package domain

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// ProviderSideShift identifies the exchange behind every quote this service
// produces.
const ProviderSideShift = "sideshift"

// Direction selects which side of the swap the requested amount denotes.
type Direction string

const (
	// DirectionFrom quotes an exact deposit amount.
	DirectionFrom Direction = "from"
	// DirectionTo quotes an exact settlement amount.
	DirectionTo Direction = "to"
)

// SwapRequest is the caller's input to the quote pipeline. Immutable once
// submitted.
type SwapRequest struct {
	FromAsset     string
	ToAsset       string
	FromWalletRef string
	ToWalletRef   string
	// NativeAmount is in the smallest unit of the asset selected by Direction.
	NativeAmount *big.Int
	Direction    Direction
}

// Permissions reports which provider operations are allowed for this
// session or region.
type Permissions struct {
	CanCreateQuote bool
	CanCreateOrder bool
}

// RateInfo is the current price and tradable range for a pair, fetched fresh
// per request and never cached. Bounds are denominated in the deposit asset.
type RateInfo struct {
	Rate       decimal.Decimal
	MinDeposit decimal.Decimal
	MaxDeposit decimal.Decimal
}

// FixedQuote is a provider-side price lock with a short validity window.
type FixedQuote struct {
	ID            string
	DepositAmount decimal.Decimal
	SettleAmount  decimal.Decimal
	Rate          decimal.Decimal
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// Order is a funded-swap contract created from a FixedQuote. DepositAddress
// is where the user's wallet must send funds before ExpiresAt.
type Order struct {
	ID             string
	OrderID        string
	DepositAddress string
	SettleAddress  string
	DepositAmount  decimal.Decimal
	SettleAmount   decimal.Decimal
	ExpiresAt      time.Time
}

// Address is a wallet receive address. Legacy is populated for assets that
// still distinguish a pre-fork encoding.
type Address struct {
	Public string
	Legacy string
}

type FeePriority string

const (
	FeePriorityStandard FeePriority = "standard"
	FeePriorityHigh     FeePriority = "high"
)

// SpendInstruction describes the transaction the wallet must build: send
// NativeAmount of Asset from WalletRef to DestinationAddress.
type SpendInstruction struct {
	Asset              string
	WalletRef          string
	NativeAmount       *big.Int
	DestinationAddress string
	FeePriority        FeePriority
	Swap               *SwapMeta
}

// SwapMeta tags a spend as part of a provider swap for provenance.
type SwapMeta struct {
	Provider           string
	OrderID            string
	IsEstimate         bool
	PayoutAddress      string
	PayoutAsset        string
	PayoutNativeAmount *big.Int
	PayoutWalletRef    string
	RefundAddress      string
	ExpiresAt          time.Time
}

// SpendResult is the wallet's handle for the built transaction.
type SpendResult struct {
	TxID string
}

// SwapQuoteResult is the record returned to the caller on success.
// Constructed once per orchestration call and never mutated afterwards.
type SwapQuoteResult struct {
	FromNativeAmount   *big.Int
	ToNativeAmount     *big.Int
	Tx                 *SpendResult
	DestinationAddress string
	Provider           string
	IsEstimate         bool
	ExpiresAt          time.Time
	OrderID            string
}
