package bridge

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

var (
	testOwner   = common.HexToAddress("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")
	testToken   = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	testReserve = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

// calls records the order of external calls across the fakes.
type calls []string

type fakeSigners struct{ opts *bind.TransactOpts }

func (f fakeSigners) ActiveSigner() *bind.TransactOpts { return f.opts }

type fakeToken struct {
	log          *calls
	allowance    *big.Int
	allowanceErr error
	approveErr   error
	approvals    []*big.Int
	nonce        uint64
}

func (f *fakeToken) Address() common.Address { return testToken }

func (f *fakeToken) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	*f.log = append(*f.log, "allowance")
	if owner != testOwner || spender != testReserve {
		return nil, errors.New("unexpected owner/spender")
	}
	return f.allowance, f.allowanceErr
}

func (f *fakeToken) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	*f.log = append(*f.log, "approve")
	if f.approveErr != nil {
		return nil, f.approveErr
	}
	f.approvals = append(f.approvals, amount)
	f.nonce++
	return types.NewTx(&types.LegacyTx{Nonce: f.nonce}), nil
}

type fakeReserve struct {
	log        *calls
	depositErr error
	deposits   int
	lastAmount *big.Int
	lastChain  [32]byte
	lastDest   [32]byte
	lastToken  common.Address
}

func (f *fakeReserve) Address() common.Address { return testReserve }

func (f *fakeReserve) Deposit(
	opts *bind.TransactOpts,
	token common.Address,
	amount *big.Int,
	destinationChain [32]byte,
	destinationAddress [32]byte,
) (*types.Transaction, error) {
	*f.log = append(*f.log, "deposit")
	if f.depositErr != nil {
		return nil, f.depositErr
	}
	f.deposits++
	f.lastToken = token
	f.lastAmount = amount
	f.lastChain = destinationChain
	f.lastDest = destinationAddress
	return types.NewTx(&types.LegacyTx{Nonce: 100}), nil
}

type fakeConfirmer struct {
	log    *calls
	status uint64
	err    error
}

func (f *fakeConfirmer) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	*f.log = append(*f.log, "wait")
	if f.err != nil {
		return nil, f.err
	}
	return &types.Receipt{Status: f.status, TxHash: tx.Hash()}, nil
}

type bridgeFixture struct {
	log       calls
	token     *fakeToken
	reserve   *fakeReserve
	confirmer *fakeConfirmer
	bridge    *USDCBridge
}

func newBridgeFixture(allowance int64) *bridgeFixture {
	f := &bridgeFixture{}
	f.token = &fakeToken{log: &f.log, allowance: big.NewInt(allowance)}
	f.reserve = &fakeReserve{log: &f.log}
	f.confirmer = &fakeConfirmer{log: &f.log, status: types.ReceiptStatusSuccessful}
	signers := fakeSigners{opts: &bind.TransactOpts{From: testOwner}}
	f.bridge = NewUSDCBridge(signers, f.token, f.reserve, f.confirmer)
	return f
}

func TestBridgeToStacks_ApprovesWhenAllowanceShort(t *testing.T) {
	f := newBridgeFixture(1_000_000) // 1 USDC

	hash, err := f.bridge.BridgeToStacks(context.Background(), "100", "SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY")
	require.NoError(t, err)

	assert.Equal(t, calls{"allowance", "approve", "wait", "deposit", "wait"}, f.log)
	require.Len(t, f.token.approvals, 1)
	assert.Equal(t, big.NewInt(100_000_000), f.token.approvals[0])
	assert.Equal(t, 1, f.reserve.deposits)
	assert.Equal(t, types.NewTx(&types.LegacyTx{Nonce: 100}).Hash().Hex(), hash)
}

func TestBridgeToStacks_SkipsApprovalWhenAllowanceSuffices(t *testing.T) {
	f := newBridgeFixture(100_000_000)

	_, err := f.bridge.BridgeToStacks(context.Background(), "100", "SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY")
	require.NoError(t, err)

	assert.Empty(t, f.token.approvals)
	assert.Equal(t, calls{"allowance", "deposit", "wait"}, f.log)
}

func TestBridgeToStacks_EncodesDeposit(t *testing.T) {
	f := newBridgeFixture(0)

	_, err := f.bridge.BridgeToStacks(context.Background(), "2.5", "SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY")
	require.NoError(t, err)

	wantChain, _ := EncodeBytes32String("stacks")
	wantDest, _ := EncodeBytes32String("SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY")
	assert.Equal(t, testToken, f.reserve.lastToken)
	assert.Equal(t, big.NewInt(2_500_000), f.reserve.lastAmount)
	assert.Equal(t, wantChain, f.reserve.lastChain)
	assert.Equal(t, wantDest, f.reserve.lastDest)
}

func TestBridgeToStacks_NoSigner(t *testing.T) {
	f := newBridgeFixture(0)
	f.bridge.signers = fakeSigners{}

	_, err := f.bridge.BridgeToStacks(context.Background(), "100", "SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY")
	require.ErrorIs(t, err, domain.ErrNoSignerAvailable)
	assert.Empty(t, f.log)
}

func TestBridgeToStacks_FailuresAbort(t *testing.T) {
	boom := errors.New("execution reverted")

	tests := []struct {
		name    string
		setup   func(f *bridgeFixture)
		wantLog calls
	}{
		{
			name:    "allowance",
			setup:   func(f *bridgeFixture) { f.token.allowanceErr = boom },
			wantLog: calls{"allowance"},
		},
		{
			name:    "approve",
			setup:   func(f *bridgeFixture) { f.token.approveErr = boom },
			wantLog: calls{"allowance", "approve"},
		},
		{
			name:    "deposit",
			setup:   func(f *bridgeFixture) { f.reserve.depositErr = boom; f.token.allowance = big.NewInt(1e12) },
			wantLog: calls{"allowance", "deposit"},
		},
		{
			name:    "wait",
			setup:   func(f *bridgeFixture) { f.confirmer.err = boom },
			wantLog: calls{"allowance", "approve", "wait"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newBridgeFixture(0)
			tc.setup(f)

			_, err := f.bridge.BridgeToStacks(context.Background(), "100", "SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY")
			require.ErrorIs(t, err, domain.ErrContractCallFailure)
			require.ErrorIs(t, err, boom)
			assert.Equal(t, tc.wantLog, f.log)
		})
	}
}

func TestBridgeToStacks_RevertedReceipt(t *testing.T) {
	f := newBridgeFixture(1e12)
	f.confirmer.status = types.ReceiptStatusFailed

	_, err := f.bridge.BridgeToStacks(context.Background(), "100", "SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY")
	require.ErrorIs(t, err, domain.ErrContractCallFailure)
	assert.Contains(t, err.Error(), "deposit reverted")
}

func TestBridgeToStacks_InvalidInputMakesNoCalls(t *testing.T) {
	f := newBridgeFixture(0)

	_, err := f.bridge.BridgeToStacks(context.Background(), "-1", "SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY")
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.bridge.BridgeToStacks(context.Background(), "1", "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
	require.Error(t, err)
	assert.Empty(t, f.log)
}

func TestBridgeToEthereum_NotImplemented(t *testing.T) {
	f := newBridgeFixture(0)

	for _, amount := range []string{"1", "0", "garbage"} {
		_, err := f.bridge.BridgeToEthereum(context.Background(), amount, testOwner.Hex())
		require.ErrorIs(t, err, domain.ErrNotImplemented)
	}
	assert.Empty(t, f.log)
}
