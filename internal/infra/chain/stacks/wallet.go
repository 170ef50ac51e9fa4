package stacks

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/vietddude/stacksyield/internal/bridge"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

// BalanceFetcher reads account balances.
type BalanceFetcher interface {
	Balances(ctx context.Context, principal string) (*Balances, error)
}

// Wallet exposes a configured Stacks address as a wallet.Provider. Balances
// report the bridged token identified by tokenID.
type Wallet struct {
	address string
	tokenID string
	client  BalanceFetcher

	mu        sync.RWMutex
	connected bool
}

// NewWallet validates address against network ("mainnet" or "testnet").
func NewWallet(address, network, tokenID string, client BalanceFetcher) (*Wallet, error) {
	if err := validateAddress(address, network); err != nil {
		return nil, err
	}
	return &Wallet{address: address, tokenID: tokenID, client: client}, nil
}

func validateAddress(address, network string) error {
	prefixes := []string{"SP", "SM"}
	if network == "testnet" {
		prefixes = []string{"ST", "SN"}
	}
	for _, p := range prefixes {
		if strings.HasPrefix(address, p) && len(address) >= 28 {
			return nil
		}
	}
	return fmt.Errorf("invalid %s stacks address %q", network, address)
}

func (w *Wallet) Chain() domain.Chain { return domain.ChainStacks }

func (w *Wallet) Connect(ctx context.Context) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = true
	return w.address, nil
}

func (w *Wallet) Disconnect(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = false
	return nil
}

func (w *Wallet) Address(ctx context.Context) (string, error) {
	if !w.IsConnected() {
		return "", nil
	}
	return w.address, nil
}

func (w *Wallet) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

// Balance returns the bridged token balance of address, "0" when the token is
// not configured or the account holds none.
func (w *Wallet) Balance(ctx context.Context, address string) (string, error) {
	if w.tokenID == "" {
		return "0", nil
	}
	balances, err := w.client.Balances(ctx, address)
	if err != nil {
		return "", err
	}
	token, ok := balances.FungibleTokens[w.tokenID]
	if !ok || token.Balance == "" {
		return "0", nil
	}
	units, ok := new(big.Int).SetString(token.Balance, 10)
	if !ok {
		return "", fmt.Errorf("invalid balance %q for %s", token.Balance, w.tokenID)
	}
	return bridge.FormatAmount(units), nil
}
