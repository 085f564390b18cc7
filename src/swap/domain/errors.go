package domain

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrGeoRestricted means the provider refuses quote or order creation for
// this session/region. Not retryable.
var ErrGeoRestricted = errors.New("provider geo restricted")

// UnsupportedPairError means the requested asset pair is not tradable.
type UnsupportedPairError struct {
	FromAsset string
	ToAsset   string
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("pair %s/%s not tradable", e.FromAsset, e.ToAsset)
}

// BelowLimitError carries the provider minimum in native units of the
// deposit asset, so the caller can prompt for a corrected amount.
type BelowLimitError struct {
	NativeMin *big.Int
}

func (e *BelowLimitError) Error() string {
	return fmt.Sprintf("amount below provider minimum of %s native units", e.NativeMin)
}

// AboveLimitError mirrors BelowLimitError for the maximum bound.
type AboveLimitError struct {
	NativeMax *big.Int
}

func (e *AboveLimitError) Error() string {
	return fmt.Sprintf("amount above provider maximum of %s native units", e.NativeMax)
}

// UnclassifiedProviderError preserves a provider error payload that matched
// no known tag. Fatal for the call.
type UnclassifiedProviderError struct {
	Message string
}

func (e *UnclassifiedProviderError) Error() string {
	return "provider error: " + e.Message
}
