// Package wallet tracks the wallet connection state of both chains.
package wallet

import (
	"context"
	"fmt"

	"github.com/vietddude/stacksyield/internal/core/domain"
)

// Provider is a chain-specific wallet capability. Providers are resolved once
// at startup and may be substituted by test doubles.
type Provider interface {
	// Chain returns the chain this provider connects to
	Chain() domain.Chain

	// Connect obtains the wallet address, failing if the wallet is unavailable
	Connect(ctx context.Context) (string, error)

	// Disconnect tears the session down
	Disconnect(ctx context.Context) error

	// Address returns the connected address, empty when not connected
	Address(ctx context.Context) (string, error)

	// IsConnected reports whether the provider holds an active session
	IsConnected() bool

	// Balance returns the bridged token balance of address as a decimal string
	Balance(ctx context.Context, address string) (string, error)
}

// Unavailable returns a provider whose Connect always fails. It stands in for
// chains that are not configured.
func Unavailable(chain domain.Chain, reason string) Provider {
	return unavailable{chain: chain, reason: reason}
}

type unavailable struct {
	chain  domain.Chain
	reason string
}

func (u unavailable) Chain() domain.Chain { return u.chain }

func (u unavailable) Connect(ctx context.Context) (string, error) {
	return "", fmt.Errorf("%w: %s: %s", domain.ErrConnectionFailure, u.chain, u.reason)
}

func (u unavailable) Disconnect(ctx context.Context) error                  { return nil }
func (u unavailable) Address(ctx context.Context) (string, error)           { return "", nil }
func (u unavailable) IsConnected() bool                                     { return false }
func (u unavailable) Balance(ctx context.Context, a string) (string, error) { return "0", nil }
