package usecase

import (
	"fmt"
	"math/big"

	"swapgate/src/swap/domain"
)

// nativeBounds holds a pair's deposit range converted to native units of the
// deposit asset.
type nativeBounds struct {
	min *big.Int
	max *big.Int
}

// depositBounds converts the pair's denominated bounds once. Both the
// pre-quote check and the post-quote tag classification reuse the result, so
// a rejection reports the same figures no matter which side raised it.
func (s *Service) depositBounds(rate *domain.RateInfo, fromAsset string) (nativeBounds, error) {
	min, err := s.wallet.ToNative(fromAsset, rate.MinDeposit)
	if err != nil {
		return nativeBounds{}, fmt.Errorf("convert pair minimum: %w", err)
	}
	max, err := s.wallet.ToNative(fromAsset, rate.MaxDeposit)
	if err != nil {
		return nativeBounds{}, fmt.Errorf("convert pair maximum: %w", err)
	}
	return nativeBounds{min: min, max: max}, nil
}

// checkDepositLimits compares a native deposit amount against the converted
// bounds.
func checkDepositLimits(amount *big.Int, bounds nativeBounds) error {
	if bounds.min != nil && amount.Cmp(bounds.min) < 0 {
		return &domain.BelowLimitError{NativeMin: bounds.min}
	}
	if bounds.max != nil && amount.Cmp(bounds.max) > 0 {
		return &domain.AboveLimitError{NativeMax: bounds.max}
	}
	return nil
}
