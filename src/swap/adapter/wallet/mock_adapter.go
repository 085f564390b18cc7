package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"swapgate/src/logger"
	"swapgate/src/swap/domain"
)

var _ domain.WalletAdapter = (*MockAdapter)(nil)

// MockAdapter simulates wallet behavior; use for local testing. Addresses are
// allocated on first request and stay stable for the process lifetime, and
// every wallet starts funded with ten whole coins of each known asset.
type MockAdapter struct {
	mu        sync.Mutex
	decimals  map[string]int32
	addresses map[string]domain.Address      // walletRef/asset -> address
	balances  map[string]map[string]*big.Int // walletRef -> asset -> native balance
	logger    *logger.Logger
}

func NewMockAdapter(logg *logger.Logger) *MockAdapter {
	return &MockAdapter{
		decimals: map[string]int32{
			"BTC":  8,
			"LTC":  8,
			"BCH":  8,
			"ETH":  18,
			"USDT": 6,
		},
		addresses: make(map[string]domain.Address),
		balances:  make(map[string]map[string]*big.Int),
		logger:    logg,
	}
}

func (m *MockAdapter) ReceiveAddress(ctx context.Context, walletRef, asset string) (domain.Address, error) {
	if _, ok := m.decimals[asset]; !ok {
		return domain.Address{}, fmt.Errorf("unknown asset %s", asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := walletRef + "/" + asset
	if addr, ok := m.addresses[key]; ok {
		return addr, nil
	}
	tag := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	addr := domain.Address{
		Public: fmt.Sprintf("%s-%s-%s", strings.ToLower(asset), walletRef, tag),
	}
	// BCH wallets expose both encodings
	if asset == "BCH" {
		addr.Legacy = "legacy-" + addr.Public
	}
	m.addresses[key] = addr
	return addr, nil
}

func (m *MockAdapter) ToDenomination(asset string, native *big.Int) (decimal.Decimal, error) {
	dec, ok := m.decimals[asset]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown asset %s", asset)
	}
	if native == nil {
		return decimal.Zero, errors.New("nil native amount")
	}
	return decimal.NewFromBigInt(native, -dec), nil
}

func (m *MockAdapter) ToNative(asset string, denominated decimal.Decimal) (*big.Int, error) {
	dec, ok := m.decimals[asset]
	if !ok {
		return nil, fmt.Errorf("unknown asset %s", asset)
	}
	return denominated.Shift(dec).BigInt(), nil
}

func (m *MockAdapter) MakeSpend(ctx context.Context, in *domain.SpendInstruction) (*domain.SpendResult, error) {
	if in == nil || in.NativeAmount == nil || in.NativeAmount.Sign() <= 0 {
		return nil, errors.New("spend amount must be positive")
	}
	if in.DestinationAddress == "" {
		return nil, errors.New("destination address required")
	}
	if _, ok := m.decimals[in.Asset]; !ok {
		return nil, fmt.Errorf("unknown asset %s", in.Asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bal := m.balanceLocked(in.WalletRef, in.Asset)
	if bal.Cmp(in.NativeAmount) < 0 {
		return nil, fmt.Errorf("insufficient funds: have %s, want %s %s", bal, in.NativeAmount, in.Asset)
	}
	bal.Sub(bal, in.NativeAmount)
	tx := fmt.Sprintf("mock-%s-%s", strings.ToLower(in.Asset), uuid.New().String())
	if in.Swap != nil {
		m.logger.Infof("mock spend tx=%s asset=%s amount=%s to=%s order=%s priority=%s",
			tx, in.Asset, in.NativeAmount, in.DestinationAddress, in.Swap.OrderID, in.FeePriority)
	} else {
		m.logger.Infof("mock spend tx=%s asset=%s amount=%s to=%s priority=%s",
			tx, in.Asset, in.NativeAmount, in.DestinationAddress, in.FeePriority)
	}
	return &domain.SpendResult{TxID: tx}, nil
}

func (m *MockAdapter) fund(walletRef, asset string, native *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.balances[walletRef]; !ok {
		m.balances[walletRef] = make(map[string]*big.Int)
	}
	m.balances[walletRef][asset] = new(big.Int).Set(native)
}

// balanceLocked lazily funds a wallet the first time it is touched so demo
// spends have something to draw on. Callers must hold the mutex.
func (m *MockAdapter) balanceLocked(walletRef, asset string) *big.Int {
	if _, ok := m.balances[walletRef]; !ok {
		m.balances[walletRef] = make(map[string]*big.Int)
	}
	if bal, ok := m.balances[walletRef][asset]; ok {
		return bal
	}
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(m.decimals[asset])), nil)
	bal := new(big.Int).Mul(unit, big.NewInt(10))
	m.balances[walletRef][asset] = bal
	return bal
}
