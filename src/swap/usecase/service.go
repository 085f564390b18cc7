package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"swapgate/src/Infrastructure/sideshift"
	"swapgate/src/config"
	"swapgate/src/logger"
	"swapgate/src/metrics"
	"swapgate/src/swap/domain"
)

// depositScale is the fractional precision the provider accepts on deposit
// amounts.
const depositScale = 8

type Service struct {
	exchange      domain.ExchangeAdapter
	wallet        domain.WalletAdapter
	logger        *logger.Logger
	metrics       *metrics.SwapMetrics
	codeOverrides map[string]string
	legacyAssets  map[string]bool
}

var _ domain.SwapUseCase = (*Service)(nil)

func NewService(exchange domain.ExchangeAdapter, wallet domain.WalletAdapter, logg *logger.Logger, m *metrics.SwapMetrics, cfg *config.Config) *Service {
	overrides := make(map[string]string, len(cfg.Swap.CodeOverrides))
	for ticker, method := range cfg.Swap.CodeOverrides {
		overrides[ticker] = method
	}
	legacy := make(map[string]bool, len(cfg.Swap.LegacyAddressAssets))
	for _, asset := range cfg.Swap.LegacyAddressAssets {
		legacy[asset] = true
	}
	return &Service{
		exchange:      exchange,
		wallet:        wallet,
		logger:        logg,
		metrics:       m,
		codeOverrides: overrides,
		legacyAssets:  legacy,
	}
}

// FetchSwapQuote runs the full quote pipeline: permission check, address
// resolution, rate fetch with limit validation, fixed quote, order creation,
// and the funding spend. The first failure aborts the remainder.
func (s *Service) FetchSwapQuote(ctx context.Context, req *domain.SwapRequest) (*domain.SwapQuoteResult, error) {
	start := time.Now()
	logg := s.logger.WithField("swap_id", uuid.New().String())

	s.metrics.RecordSwapStarted()
	res, err := s.fetchSwapQuote(ctx, logg, req)
	if err != nil {
		logg.Errorf("swap quote failed: %v", err)
		s.metrics.RecordSwapFailed(failureReason(err), time.Since(start).Seconds())
		return nil, err
	}
	s.metrics.RecordSwapCompleted(time.Since(start).Seconds())
	logg.Infof("swap quote completed order=%s tx=%s", res.OrderID, res.Tx.TxID)
	return res, nil
}

func (s *Service) fetchSwapQuote(ctx context.Context, logg *logger.Logger, req *domain.SwapRequest) (*domain.SwapQuoteResult, error) {
	if req.NativeAmount == nil || req.NativeAmount.Sign() <= 0 {
		return nil, errors.New("native amount must be positive")
	}

	// Step 1: both permissions must hold before any funds-adjacent call
	perms, err := s.exchange.Permissions(ctx)
	if err != nil {
		return nil, translateProviderErr(err)
	}
	if !perms.CanCreateQuote || !perms.CanCreateOrder {
		return nil, domain.ErrGeoRestricted
	}

	// Step 2: resolve refund and settle addresses concurrently; both are
	// required, so the first failure cancels the sibling lookup
	var refundAddr, settleAddr string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr, err := s.wallet.ReceiveAddress(gctx, req.FromWalletRef, req.FromAsset)
		if err != nil {
			return fmt.Errorf("resolve refund address: %w", err)
		}
		refundAddr = s.pickAddress(req.FromAsset, addr)
		return nil
	})
	g.Go(func() error {
		addr, err := s.wallet.ReceiveAddress(gctx, req.ToWalletRef, req.ToAsset)
		if err != nil {
			return fmt.Errorf("resolve settle address: %w", err)
		}
		settleAddr = s.pickAddress(req.ToAsset, addr)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Step 3: map tickers to provider method identifiers
	depositMethod := mapCode(s.codeOverrides, req.FromAsset)
	settleMethod := mapCode(s.codeOverrides, req.ToAsset)

	// Step 4: fetch the pair rate, size the deposit, enforce limits locally
	rate, err := s.exchange.RateInfo(ctx, depositMethod, settleMethod)
	if err != nil {
		if errors.Is(err, sideshift.ErrPairUnavailable) {
			return nil, &domain.UnsupportedPairError{FromAsset: req.FromAsset, ToAsset: req.ToAsset}
		}
		return nil, translateProviderErr(err)
	}

	depositAmount, depositNative, err := s.resolveDepositAmount(req, rate)
	if err != nil {
		return nil, err
	}
	bounds, err := s.depositBounds(rate, req.FromAsset)
	if err != nil {
		return nil, err
	}
	if err := checkDepositLimits(depositNative, bounds); err != nil {
		return nil, err
	}

	logg.Debugf("pair %s/%s rate=%s deposit=%s", depositMethod, settleMethod, rate.Rate, depositAmount)

	// Step 5: lock the rate; the provider rechecks bounds on its side, so a
	// tagged rejection here maps onto the same limit errors as step 4
	quote, err := s.exchange.CreateFixedQuote(ctx, depositMethod, settleMethod, depositAmount)
	if err != nil {
		switch {
		case errors.Is(err, sideshift.ErrAmountTooLow):
			return nil, &domain.BelowLimitError{NativeMin: bounds.min}
		case errors.Is(err, sideshift.ErrAmountTooHigh):
			return nil, &domain.AboveLimitError{NativeMax: bounds.max}
		}
		return nil, translateProviderErr(err)
	}

	// Step 6: turn the quote into an order paying out to the settle address
	order, err := s.exchange.CreateOrder(ctx, quote.ID, settleAddr)
	if err != nil {
		return nil, translateProviderErr(err)
	}

	// Step 7: assemble the funding spend from the order's own figures
	fromNative, err := s.wallet.ToNative(req.FromAsset, order.DepositAmount)
	if err != nil {
		return nil, fmt.Errorf("convert deposit amount: %w", err)
	}
	toNative, err := s.wallet.ToNative(req.ToAsset, order.SettleAmount)
	if err != nil {
		return nil, fmt.Errorf("convert settle amount: %w", err)
	}

	priority := domain.FeePriorityStandard
	if req.FromAsset == "BTC" {
		priority = domain.FeePriorityHigh
	}
	spend := &domain.SpendInstruction{
		Asset:              req.FromAsset,
		WalletRef:          req.FromWalletRef,
		NativeAmount:       fromNative,
		DestinationAddress: order.DepositAddress,
		FeePriority:        priority,
		Swap: &domain.SwapMeta{
			Provider:           domain.ProviderSideShift,
			OrderID:            order.OrderID,
			IsEstimate:         false,
			PayoutAddress:      settleAddr,
			PayoutAsset:        req.ToAsset,
			PayoutNativeAmount: toNative,
			PayoutWalletRef:    req.ToWalletRef,
			RefundAddress:      refundAddr,
			ExpiresAt:          order.ExpiresAt,
		},
	}

	// Step 8: fund the order
	tx, err := s.wallet.MakeSpend(ctx, spend)
	if err != nil {
		return nil, fmt.Errorf("make spend: %w", err)
	}

	return &domain.SwapQuoteResult{
		FromNativeAmount:   fromNative,
		ToNativeAmount:     toNative,
		Tx:                 tx,
		DestinationAddress: settleAddr,
		Provider:           domain.ProviderSideShift,
		IsEstimate:         false,
		ExpiresAt:          order.ExpiresAt,
		OrderID:            order.OrderID,
	}, nil
}

// resolveDepositAmount computes the provider-facing deposit amount and its
// native equivalent. Quoting the source side denominates the request amount
// directly; quoting the destination side divides the target amount by the
// current rate at the provider's deposit precision.
func (s *Service) resolveDepositAmount(req *domain.SwapRequest, rate *domain.RateInfo) (decimal.Decimal, *big.Int, error) {
	switch req.Direction {
	case domain.DirectionFrom:
		amount, err := s.wallet.ToDenomination(req.FromAsset, req.NativeAmount)
		if err != nil {
			return decimal.Zero, nil, fmt.Errorf("denominate deposit amount: %w", err)
		}
		return amount, new(big.Int).Set(req.NativeAmount), nil
	case domain.DirectionTo:
		if rate.Rate.IsZero() {
			return decimal.Zero, nil, &domain.UnsupportedPairError{FromAsset: req.FromAsset, ToAsset: req.ToAsset}
		}
		target, err := s.wallet.ToDenomination(req.ToAsset, req.NativeAmount)
		if err != nil {
			return decimal.Zero, nil, fmt.Errorf("denominate target amount: %w", err)
		}
		amount := target.DivRound(rate.Rate, depositScale)
		native, err := s.wallet.ToNative(req.FromAsset, amount)
		if err != nil {
			return decimal.Zero, nil, fmt.Errorf("convert deposit amount: %w", err)
		}
		return amount, native, nil
	default:
		return decimal.Zero, nil, fmt.Errorf("unknown quote direction %q", req.Direction)
	}
}

// pickAddress prefers the legacy encoding for assets configured to need it.
func (s *Service) pickAddress(asset string, addr domain.Address) string {
	if s.legacyAssets[asset] && addr.Legacy != "" {
		return addr.Legacy
	}
	return addr.Public
}

// translateProviderErr converts client-level failures that reach the
// pipeline untagged. Transport errors pass through unchanged.
func translateProviderErr(err error) error {
	var perr *sideshift.ProviderError
	if errors.As(err, &perr) {
		return &domain.UnclassifiedProviderError{Message: perr.Message}
	}
	return err
}

// failureReason buckets an error for the failure counter.
func failureReason(err error) string {
	var (
		pairErr  *domain.UnsupportedPairError
		belowErr *domain.BelowLimitError
		aboveErr *domain.AboveLimitError
		provErr  *domain.UnclassifiedProviderError
		httpErr  *sideshift.HTTPError
	)
	switch {
	case errors.Is(err, domain.ErrGeoRestricted):
		return "geo_restricted"
	case errors.As(err, &pairErr):
		return "unsupported_pair"
	case errors.As(err, &belowErr):
		return "below_limit"
	case errors.As(err, &aboveErr):
		return "above_limit"
	case errors.As(err, &httpErr):
		return "transport"
	case errors.As(err, &provErr):
		return "provider"
	default:
		return "internal"
	}
}
