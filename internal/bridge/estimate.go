package bridge

import (
	"context"

	"github.com/vietddude/stacksyield/internal/core/domain"
)

// EstimateTime returns the advisory duration of a transfer in seconds.
func EstimateTime(from, to domain.Chain) int64 {
	switch {
	case from == domain.ChainEthereum && to == domain.ChainStacks:
		return 12 * 60
	case from == domain.ChainStacks && to == domain.ChainEthereum:
		return 18 * 60
	}
	return 0
}

// StatusChecker reports the settlement status of a submitted transfer.
type StatusChecker interface {
	Check(ctx context.Context, txHash string) (domain.BridgeStatus, error)
}

// StatusCheckerFunc adapts a function to StatusChecker.
type StatusCheckerFunc func(ctx context.Context, txHash string) (domain.BridgeStatus, error)

func (f StatusCheckerFunc) Check(ctx context.Context, txHash string) (domain.BridgeStatus, error) {
	return f(ctx, txHash)
}

// ConfirmedStatus treats every confirmed deposit as completed. Attestation
// tracking on the Stacks side is not available yet.
var ConfirmedStatus = StatusCheckerFunc(func(ctx context.Context, txHash string) (domain.BridgeStatus, error) {
	return domain.BridgeStatusCompleted, nil
})
