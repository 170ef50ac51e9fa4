package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vietddude/stacksyield/internal/core/domain"
	"github.com/vietddude/stacksyield/internal/metrics"
)

// Tracker holds the wallet state of every registered chain. Provider calls are
// made without holding the lock.
type Tracker struct {
	providers map[domain.Chain]Provider
	states    map[domain.Chain]domain.WalletState
	mu        sync.RWMutex
	log       *slog.Logger
}

// NewTracker creates a tracker for the given providers, all disconnected.
func NewTracker(providers ...Provider) *Tracker {
	t := &Tracker{
		providers: make(map[domain.Chain]Provider, len(providers)),
		states:    make(map[domain.Chain]domain.WalletState, len(providers)),
		log:       slog.Default().With("component", "wallet"),
	}
	for _, p := range providers {
		t.providers[p.Chain()] = p
		t.states[p.Chain()] = domain.DefaultWalletState()
	}
	return t
}

func (t *Tracker) provider(chain domain.Chain) (Provider, error) {
	p, ok := t.providers[chain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownChain, chain)
	}
	return p, nil
}

// Connect asks the chain's provider for an address and marks the wallet
// connected, then refreshes balances. On failure the state is untouched.
func (t *Tracker) Connect(ctx context.Context, chain domain.Chain) error {
	p, err := t.provider(chain)
	if err != nil {
		return err
	}

	address, err := p.Connect(ctx)
	if err == nil && address == "" {
		err = fmt.Errorf("%w: no address returned from wallet", domain.ErrConnectionFailure)
	}
	if err != nil {
		metrics.WalletConnections.WithLabelValues(string(chain), "error").Inc()
		t.log.Error("Failed to connect wallet", "chain", chain, "error", err)
		return fmt.Errorf("connect %s: %w", chain, err)
	}
	metrics.WalletConnections.WithLabelValues(string(chain), "success").Inc()

	t.mu.Lock()
	t.states[chain] = domain.WalletState{
		Address:     address,
		Balance:     "0",
		IsConnected: true,
	}
	t.mu.Unlock()
	t.log.Info("Wallet connected", "chain", chain, "address", address)

	t.RefreshBalances(ctx)
	return nil
}

// Disconnect tears down the provider session and resets the wallet state.
// The state is reset even when teardown fails; the error is still returned.
func (t *Tracker) Disconnect(ctx context.Context, chain domain.Chain) error {
	p, err := t.provider(chain)
	if err != nil {
		return err
	}

	teardownErr := p.Disconnect(ctx)

	t.mu.Lock()
	t.states[chain] = domain.DefaultWalletState()
	t.mu.Unlock()

	if teardownErr != nil {
		t.log.Warn("Wallet teardown failed", "chain", chain, "error", teardownErr)
		return fmt.Errorf("disconnect %s: %w", chain, teardownErr)
	}
	t.log.Info("Wallet disconnected", "chain", chain)
	return nil
}

// RefreshBalances re-queries the balance of every connected chain. A failure
// on one chain is logged and leaves its previous balance in place.
func (t *Tracker) RefreshBalances(ctx context.Context) {
	for _, chain := range domain.Chains {
		p, ok := t.providers[chain]
		if !ok {
			continue
		}

		state := t.State(chain)
		if !state.IsConnected || state.Address == "" {
			continue
		}

		balance, err := p.Balance(ctx, state.Address)
		if err != nil {
			metrics.BalanceRefreshErrors.WithLabelValues(string(chain)).Inc()
			t.log.Warn("Failed to update balance", "chain", chain, "address", state.Address, "error", err)
			continue
		}

		t.mu.Lock()
		// Skip if the wallet was disconnected or switched while querying.
		if cur := t.states[chain]; cur.IsConnected && cur.Address == state.Address {
			cur.Balance = balance
			t.states[chain] = cur
		}
		t.mu.Unlock()
	}
}

// Restore adopts sessions that providers still hold, e.g. after a restart of
// the dashboard with a wallet that stayed signed in.
func (t *Tracker) Restore(ctx context.Context) {
	for _, chain := range domain.Chains {
		p, ok := t.providers[chain]
		if !ok || !p.IsConnected() {
			continue
		}

		address, err := p.Address(ctx)
		if err != nil || address == "" {
			continue
		}

		t.mu.Lock()
		state := t.states[chain]
		state.Address = address
		state.IsConnected = true
		t.states[chain] = state
		t.mu.Unlock()
		t.log.Info("Restored wallet session", "chain", chain, "address", address)
	}
}

// SetBalance overrides the displayed balance of a chain.
func (t *Tracker) SetBalance(chain domain.Chain, balance string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.states[chain]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownChain, chain)
	}
	state.Balance = balance
	t.states[chain] = state
	return nil
}

// State returns a copy of a chain's wallet state.
func (t *Tracker) State(chain domain.Chain) domain.WalletState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	state, ok := t.states[chain]
	if !ok {
		return domain.DefaultWalletState()
	}
	return state
}

// Snapshot returns a copy of every chain's wallet state.
func (t *Tracker) Snapshot() map[domain.Chain]domain.WalletState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[domain.Chain]domain.WalletState, len(t.states))
	for chain, state := range t.states {
		out[chain] = state
	}
	return out
}
