package yield

import (
	"math"

	"github.com/vietddude/stacksyield/internal/core/domain"
)

// ProfitParams configures CalculateBridgeProfit.
type ProfitParams struct {
	Days       float64 // holding period
	BridgeCost float64 // USDC
}

// DefaultProfitParams is a one year hold with a 5 USDC bridge cost.
var DefaultProfitParams = ProfitParams{Days: 365, BridgeCost: 5}

// BestYield returns the protocol with the highest APY, restricted to chain
// when it is non-nil. The first protocol wins ties.
func BestYield(protocols []domain.YieldProtocol, chain *domain.Chain) (domain.YieldProtocol, bool) {
	var (
		best  domain.YieldProtocol
		found bool
	)
	for _, p := range protocols {
		if chain != nil && p.Chain != *chain {
			continue
		}
		if !found || p.APY > best.APY {
			best = p
			found = true
		}
	}
	return best, found
}

// CalculateBridgeProfit returns the extra return of moving amount from
// currentAPY to targetAPY over days, minus bridgeCost, floored at zero.
func CalculateBridgeProfit(amount, currentAPY, targetAPY, days, bridgeCost float64) float64 {
	currentReturn := amount * currentAPY / 100 * (days / 365)
	targetReturn := amount * targetAPY / 100 * (days / 365)
	return math.Max(0, targetReturn-currentReturn-bridgeCost)
}

// Recommend compares the best protocol on currentChain with the best on the
// other chain. It reports false when either chain has no protocol.
func Recommend(currentChain domain.Chain, amount float64, protocols []domain.YieldProtocol, params ProfitParams) (domain.YieldRecommendation, bool) {
	other := currentChain.Other()
	current, ok := BestYield(protocols, &currentChain)
	if !ok {
		return domain.YieldRecommendation{}, false
	}
	target, ok := BestYield(protocols, &other)
	if !ok {
		return domain.YieldRecommendation{}, false
	}

	profit := CalculateBridgeProfit(amount, current.APY, target.APY, params.Days, params.BridgeCost)
	return domain.YieldRecommendation{
		ShouldBridge:        profit > 0,
		CurrentProtocol:     current,
		RecommendedProtocol: target,
		PotentialProfit:     profit,
		APYDifference:       target.APY - current.APY,
	}, true
}
