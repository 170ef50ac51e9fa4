package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/vietddude/stacksyield/internal/core/domain"
	"github.com/vietddude/stacksyield/internal/metrics"
)

// StacksChainTag is the destination chain identifier passed to the reserve.
const StacksChainTag = "stacks"

// SignerSource resolves the active signing capability of the source chain.
type SignerSource interface {
	// ActiveSigner returns nil when no wallet is connected
	ActiveSigner() *bind.TransactOpts
}

// Token is the bridged ERC-20 token.
type Token interface {
	Address() common.Address
	Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error)
	Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error)
}

// Reserve is the bridge contract that escrows the token.
type Reserve interface {
	Address() common.Address
	Deposit(
		opts *bind.TransactOpts,
		token common.Address,
		amount *big.Int,
		destinationChain [32]byte,
		destinationAddress [32]byte,
	) (*types.Transaction, error)
}

// Confirmer waits for a submitted transaction to be mined.
type Confirmer interface {
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// Initiator submits bridge transfers.
type Initiator interface {
	BridgeToStacks(ctx context.Context, amount, stacksAddress string) (string, error)
	BridgeToEthereum(ctx context.Context, amount, ethereumAddress string) (string, error)
}

// USDCBridge bridges USDC from Ethereum to Stacks through the reserve contract.
type USDCBridge struct {
	signers   SignerSource
	token     Token
	reserve   Reserve
	confirmer Confirmer
	log       *slog.Logger
}

// NewUSDCBridge creates a bridge initiator.
func NewUSDCBridge(signers SignerSource, token Token, reserve Reserve, confirmer Confirmer) *USDCBridge {
	return &USDCBridge{
		signers:   signers,
		token:     token,
		reserve:   reserve,
		confirmer: confirmer,
		log:       slog.Default().With("component", "bridge"),
	}
}

// BridgeToStacks approves the reserve if the allowance is short, deposits
// amount for stacksAddress, waits for the deposit to be mined and returns its
// hash. Any failure aborts the whole operation.
func (b *USDCBridge) BridgeToStacks(ctx context.Context, amount, stacksAddress string) (string, error) {
	start := time.Now()

	signer := b.signers.ActiveSigner()
	if signer == nil {
		return "", domain.ErrNoSignerAvailable
	}

	units, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}
	destChain, err := EncodeBytes32String(StacksChainTag)
	if err != nil {
		return "", err
	}
	destAddress, err := EncodeBytes32String(stacksAddress)
	if err != nil {
		return "", fmt.Errorf("encode destination address: %w", err)
	}

	opts := *signer
	opts.Context = ctx

	if err := b.ensureAllowance(ctx, &opts, units); err != nil {
		return "", err
	}

	b.log.Info("Initiating bridge to Stacks", "amount", amount, "destination", stacksAddress)
	tx, err := b.reserve.Deposit(&opts, b.token.Address(), units, destChain, destAddress)
	if err != nil {
		return "", fmt.Errorf("%w: deposit: %w", domain.ErrContractCallFailure, err)
	}
	b.log.Info("Bridge transaction submitted", "tx", tx.Hash().Hex())

	if err := b.wait(ctx, tx, "deposit"); err != nil {
		return "", err
	}
	b.log.Info("Bridge transaction confirmed", "tx", tx.Hash().Hex())
	metrics.BridgeDuration.Observe(time.Since(start).Seconds())

	return tx.Hash().Hex(), nil
}

func (b *USDCBridge) ensureAllowance(ctx context.Context, opts *bind.TransactOpts, units *big.Int) error {
	spender := b.reserve.Address()
	allowance, err := b.token.Allowance(ctx, opts.From, spender)
	if err != nil {
		return fmt.Errorf("%w: allowance: %w", domain.ErrContractCallFailure, err)
	}
	if allowance != nil && allowance.Cmp(units) >= 0 {
		return nil
	}

	b.log.Info("Approving USDC spend", "spender", spender.Hex(), "amount", units.String(),
		"reason", domain.ErrInsufficientAllowance)
	tx, err := b.token.Approve(opts, spender, units)
	if err != nil {
		return fmt.Errorf("%w: approve: %w", domain.ErrContractCallFailure, err)
	}
	metrics.BridgeApprovals.Inc()

	if err := b.wait(ctx, tx, "approve"); err != nil {
		return err
	}
	b.log.Info("USDC approved", "tx", tx.Hash().Hex())
	return nil
}

func (b *USDCBridge) wait(ctx context.Context, tx *types.Transaction, step string) error {
	receipt, err := b.confirmer.WaitMined(ctx, tx)
	if err != nil {
		return fmt.Errorf("%w: wait for %s: %w", domain.ErrContractCallFailure, step, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: %s reverted in tx %s", domain.ErrContractCallFailure, step, tx.Hash().Hex())
	}
	return nil
}

// BridgeToEthereum is not supported yet and never touches a contract.
func (b *USDCBridge) BridgeToEthereum(ctx context.Context, amount, ethereumAddress string) (string, error) {
	return "", fmt.Errorf("%w: stacks to ethereum bridge", domain.ErrNotImplemented)
}
