package evm

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

// Confirmer waits for transactions through a deploy backend.
type Confirmer struct {
	backend bind.DeployBackend
}

func NewConfirmer(backend bind.DeployBackend) *Confirmer {
	return &Confirmer{backend: backend}
}

func (c *Confirmer) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(ctx, c.backend, tx)
}

// ReceiptFetcher is the subset of ethclient.Client used by ReceiptChecker.
type ReceiptFetcher interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// ReceiptChecker derives a bridge status from the deposit receipt.
type ReceiptChecker struct {
	client  ReceiptFetcher
	reserve *Reserve
}

// NewReceiptChecker creates a checker. With a non-nil reserve a successful
// receipt only counts as completed when it carries the reserve's Deposit log.
func NewReceiptChecker(client ReceiptFetcher, reserve *Reserve) *ReceiptChecker {
	return &ReceiptChecker{client: client, reserve: reserve}
}

// Check reports processing while the receipt is unknown, failed when the
// deposit reverted or emitted no Deposit event, and completed otherwise.
func (c *ReceiptChecker) Check(ctx context.Context, txHash string) (domain.BridgeStatus, error) {
	receipt, err := c.client.TransactionReceipt(ctx, common.HexToHash(txHash))
	if errors.Is(err, ethereum.NotFound) {
		return domain.BridgeStatusProcessing, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get transaction receipt: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return domain.BridgeStatusFailed, nil
	}
	if c.reserve != nil {
		if _, ok := c.reserve.FindDeposit(receipt); !ok {
			return domain.BridgeStatusFailed, nil
		}
	}
	return domain.BridgeStatusCompleted, nil
}
