package wallet

import (
	"context"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"swapgate/src/logger"
	"swapgate/src/swap/domain"
)

func newMock() *MockAdapter {
	return NewMockAdapter(logger.New("prod", "fatal"))
}

func TestReceiveAddressStable(t *testing.T) {
	m := newMock()
	ctx := context.Background()

	first, err := m.ReceiveAddress(ctx, "w1", "BTC")
	require.NoError(t, err)
	second, err := m.ReceiveAddress(ctx, "w1", "BTC")
	require.NoError(t, err)
	require.Equal(t, first, second)

	other, err := m.ReceiveAddress(ctx, "w1", "LTC")
	require.NoError(t, err)
	require.NotEqual(t, first.Public, other.Public)

	_, err = m.ReceiveAddress(ctx, "w1", "DOGE")
	require.Error(t, err)
}

func TestReceiveAddressLegacyOnlyForBCH(t *testing.T) {
	m := newMock()
	ctx := context.Background()

	bch, err := m.ReceiveAddress(ctx, "w1", "BCH")
	require.NoError(t, err)
	require.NotEmpty(t, bch.Legacy)

	btc, err := m.ReceiveAddress(ctx, "w1", "BTC")
	require.NoError(t, err)
	require.Empty(t, btc.Legacy)
}

func TestUnitConversion(t *testing.T) {
	m := newMock()

	native, err := m.ToNative("BTC", decimal.RequireFromString("0.0015"))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(150000), native)

	back, err := m.ToDenomination("BTC", native)
	require.NoError(t, err)
	require.True(t, back.Equal(decimal.RequireFromString("0.0015")), "got %s", back)

	usdt, err := m.ToNative("USDT", decimal.RequireFromString("12.5"))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(12500000), usdt)

	_, err = m.ToNative("DOGE", decimal.New(1, 0))
	require.Error(t, err)
}

func TestMakeSpendDebitsBalance(t *testing.T) {
	m := newMock()
	m.fund("w1", "BTC", big.NewInt(200000))

	spend := &domain.SpendInstruction{
		Asset:              "BTC",
		WalletRef:          "w1",
		NativeAmount:       big.NewInt(150000),
		DestinationAddress: "1F1tAaz5x1HUXrCNLbtMDqcw6o5GNn4xqX",
		FeePriority:        domain.FeePriorityHigh,
	}
	res, err := m.MakeSpend(context.Background(), spend)
	require.NoError(t, err)
	require.NotEmpty(t, res.TxID)

	// only 50000 left now
	_, err = m.MakeSpend(context.Background(), spend)
	require.Error(t, err)
	require.Contains(t, err.Error(), "insufficient funds")
}

func TestMakeSpendValidatesInput(t *testing.T) {
	m := newMock()

	_, err := m.MakeSpend(context.Background(), &domain.SpendInstruction{
		Asset:        "BTC",
		WalletRef:    "w1",
		NativeAmount: big.NewInt(0),
	})
	require.Error(t, err)

	_, err = m.MakeSpend(context.Background(), &domain.SpendInstruction{
		Asset:        "BTC",
		WalletRef:    "w1",
		NativeAmount: big.NewInt(100),
	})
	require.Error(t, err) // missing destination
}
