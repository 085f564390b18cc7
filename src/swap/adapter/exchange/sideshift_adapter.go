package exchange

import (
	"context"

	"github.com/shopspring/decimal"

	"swapgate/src/Infrastructure/sideshift"
	"swapgate/src/swap/domain"
)

var _ domain.ExchangeAdapter = (*SideShiftAdapter)(nil)

// SideShiftAdapter exposes the SideShift client through the exchange port.
// The affiliate id travels on every order but never enters the domain layer.
type SideShiftAdapter struct {
	client      *sideshift.Client
	affiliateID string
}

func NewSideShiftAdapter(client *sideshift.Client, affiliateID string) *SideShiftAdapter {
	return &SideShiftAdapter{client: client, affiliateID: affiliateID}
}

func (a *SideShiftAdapter) Permissions(ctx context.Context) (domain.Permissions, error) {
	p, err := a.client.Permissions(ctx)
	if err != nil {
		return domain.Permissions{}, err
	}
	return domain.Permissions{
		CanCreateQuote: p.CreateQuote,
		CanCreateOrder: p.CreateOrder,
	}, nil
}

func (a *SideShiftAdapter) RateInfo(ctx context.Context, depositMethod, settleMethod string) (*domain.RateInfo, error) {
	pair, err := a.client.Pair(ctx, depositMethod, settleMethod)
	if err != nil {
		return nil, err
	}
	return &domain.RateInfo{
		Rate:       pair.Rate,
		MinDeposit: pair.Min,
		MaxDeposit: pair.Max,
	}, nil
}

func (a *SideShiftAdapter) CreateFixedQuote(ctx context.Context, depositMethod, settleMethod string, depositAmount decimal.Decimal) (*domain.FixedQuote, error) {
	q, err := a.client.CreateQuote(ctx, sideshift.QuoteRequest{
		DepositMethod: depositMethod,
		SettleMethod:  settleMethod,
		DepositAmount: depositAmount,
	})
	if err != nil {
		return nil, err
	}
	return &domain.FixedQuote{
		ID:            q.ID,
		DepositAmount: q.DepositAmount,
		SettleAmount:  q.SettleAmount,
		Rate:          q.Rate,
		CreatedAt:     q.CreatedAt,
		ExpiresAt:     q.ExpiresAt,
	}, nil
}

func (a *SideShiftAdapter) CreateOrder(ctx context.Context, quoteID, settleAddress string) (*domain.Order, error) {
	o, err := a.client.CreateOrder(ctx, sideshift.OrderRequest{
		QuoteID:       quoteID,
		AffiliateID:   a.affiliateID,
		SettleAddress: settleAddress,
	})
	if err != nil {
		return nil, err
	}
	return &domain.Order{
		ID:             o.ID,
		OrderID:        o.OrderID,
		DepositAddress: o.DepositAddress.Address,
		SettleAddress:  o.SettleAddress.Address,
		DepositAmount:  o.DepositAmount,
		SettleAmount:   o.SettleAmount,
		ExpiresAt:      o.ExpiresAt,
	}, nil
}
