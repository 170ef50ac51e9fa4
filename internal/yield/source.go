// Package yield fetches yield protocol data and compares opportunities across
// chains.
package yield

import (
	"context"

	"github.com/vietddude/stacksyield/internal/core/domain"
)

// Source provides the current list of yield protocols.
type Source interface {
	Fetch(ctx context.Context) ([]domain.YieldProtocol, error)
}

// DefaultProtocols returns the built-in protocol list. The returned slice is
// a fresh copy.
func DefaultProtocols() []domain.YieldProtocol {
	return []domain.YieldProtocol{
		{
			ID:          "alex-lending",
			Name:        "ALEX Lending",
			Chain:       domain.ChainStacks,
			APY:         8.5,
			TVL:         "2.5M",
			Logo:        "/protocols/alex.png",
			Description: "Decentralized lending protocol on Stacks",
		},
		{
			ID:          "arkadiko-vault",
			Name:        "Arkadiko Vault",
			Chain:       domain.ChainStacks,
			APY:         7.2,
			TVL:         "1.8M",
			Logo:        "/protocols/arkadiko.png",
			Description: "Stablecoin vaults with competitive yields",
		},
		{
			ID:          "velar-pool",
			Name:        "Velar Liquidity Pool",
			Chain:       domain.ChainStacks,
			APY:         9.8,
			TVL:         "3.2M",
			Logo:        "/protocols/velar.png",
			Description: "AMM liquidity pools",
		},
		{
			ID:          "aave-eth",
			Name:        "Aave V3",
			Chain:       domain.ChainEthereum,
			APY:         4.5,
			TVL:         "1.2B",
			Logo:        "/protocols/aave.png",
			Description: "Leading DeFi lending protocol",
		},
		{
			ID:          "compound-eth",
			Name:        "Compound Finance",
			Chain:       domain.ChainEthereum,
			APY:         3.8,
			TVL:         "850M",
			Logo:        "/protocols/compound.png",
			Description: "Autonomous interest rate protocol",
		},
	}
}
