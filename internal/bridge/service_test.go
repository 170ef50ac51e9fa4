package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

type fakeWallets map[domain.Chain]domain.WalletState

func (f fakeWallets) State(chain domain.Chain) domain.WalletState {
	if s, ok := f[chain]; ok {
		return s
	}
	return domain.DefaultWalletState()
}

type fakeInitiator struct {
	hash        string
	err         error
	amount      string
	destination string
	toStacks    int
}

func (f *fakeInitiator) BridgeToStacks(ctx context.Context, amount, destination string) (string, error) {
	f.toStacks++
	f.amount = amount
	f.destination = destination
	return f.hash, f.err
}

func (f *fakeInitiator) BridgeToEthereum(ctx context.Context, amount, destination string) (string, error) {
	return "", domain.ErrNotImplemented
}

func connectedWallets() fakeWallets {
	return fakeWallets{
		domain.ChainEthereum: {Address: testOwner.Hex(), Balance: "100", IsConnected: true},
		domain.ChainStacks:   {Address: "SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY7RX8QJ5SVTE", Balance: "0", IsConnected: true},
	}
}

func newTestService(wallets WalletState, fi Initiator, status StatusChecker) *Service {
	s := NewService(wallets, NewTracker(), fi, status)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	s.newID = func() string { return "tx-1" }
	return s
}

func TestServiceBridgeSubmitted(t *testing.T) {
	fi := &fakeInitiator{hash: "0xdead"}
	s := newTestService(connectedWallets(), fi, nil)

	tx, err := s.Bridge(context.Background(), Request{From: domain.ChainEthereum, To: domain.ChainStacks, Amount: "25.5"})
	require.NoError(t, err)

	assert.Equal(t, "tx-1", tx.ID)
	assert.Equal(t, domain.BridgeStatusProcessing, tx.Status)
	assert.Equal(t, "0xdead", tx.TxHash)
	assert.Equal(t, int64(720), tx.EstimatedTime)
	assert.Equal(t, "25.5", fi.amount)
	assert.Equal(t, "SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY7RX8QJ5SVTE", fi.destination)

	current, ok := s.Tracker().Current()
	require.True(t, ok)
	assert.Equal(t, tx, current)
}

func TestServiceBridgeInitiatorFailure(t *testing.T) {
	fi := &fakeInitiator{err: domain.ErrContractCallFailure}
	s := newTestService(connectedWallets(), fi, nil)

	tx, err := s.Bridge(context.Background(), Request{From: domain.ChainEthereum, To: domain.ChainStacks, Amount: "1"})
	require.ErrorIs(t, err, domain.ErrContractCallFailure)
	assert.Equal(t, domain.BridgeStatusFailed, tx.Status)
	assert.Empty(t, tx.TxHash)

	txs := s.Tracker().Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, domain.BridgeStatusFailed, txs[0].Status)
}

func TestServiceBridgeToEthereumNotImplemented(t *testing.T) {
	fi := &fakeInitiator{}
	s := newTestService(connectedWallets(), fi, nil)

	tx, err := s.Bridge(context.Background(), Request{From: domain.ChainStacks, To: domain.ChainEthereum, Amount: "1"})
	require.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.Equal(t, domain.BridgeStatusFailed, tx.Status)
	assert.Equal(t, int64(1080), tx.EstimatedTime)
	assert.Zero(t, fi.toStacks)
}

func TestServiceBridgeRejectsBeforeRecording(t *testing.T) {
	tests := []struct {
		name    string
		wallets fakeWallets
		req     Request
		wantErr error
	}{
		{
			name:    "invalid amount",
			wallets: connectedWallets(),
			req:     Request{From: domain.ChainEthereum, To: domain.ChainStacks, Amount: "abc"},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "source not connected",
			wallets: fakeWallets{domain.ChainStacks: connectedWallets()[domain.ChainStacks]},
			req:     Request{From: domain.ChainEthereum, To: domain.ChainStacks, Amount: "1"},
			wantErr: domain.ErrWalletNotConnected,
		},
		{
			name:    "destination not connected",
			wallets: fakeWallets{domain.ChainEthereum: connectedWallets()[domain.ChainEthereum]},
			req:     Request{From: domain.ChainEthereum, To: domain.ChainStacks, Amount: "1"},
			wantErr: domain.ErrWalletNotConnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fi := &fakeInitiator{hash: "0x1"}
			s := newTestService(tt.wallets, fi, nil)

			_, err := s.Bridge(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, s.Tracker().Transactions())
			assert.Zero(t, fi.toStacks)
		})
	}
}

func TestServiceRefresh(t *testing.T) {
	s := newTestService(connectedWallets(), &fakeInitiator{hash: "0xdead"}, nil)
	_, err := s.Bridge(context.Background(), Request{From: domain.ChainEthereum, To: domain.ChainStacks, Amount: "1"})
	require.NoError(t, err)

	tx, err := s.Refresh(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BridgeStatusCompleted, tx.Status)

	// completed is final
	tx, err = s.Refresh(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BridgeStatusCompleted, tx.Status)
}

func TestServiceRefreshIgnoresBackwardStatus(t *testing.T) {
	checker := StatusCheckerFunc(func(ctx context.Context, txHash string) (domain.BridgeStatus, error) {
		return domain.BridgeStatusPending, nil
	})
	s := newTestService(connectedWallets(), &fakeInitiator{hash: "0xdead"}, checker)
	_, err := s.Bridge(context.Background(), Request{From: domain.ChainEthereum, To: domain.ChainStacks, Amount: "1"})
	require.NoError(t, err)

	tx, err := s.Refresh(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BridgeStatusProcessing, tx.Status)
}

func TestServiceRefreshErrors(t *testing.T) {
	checkErr := errors.New("rpc down")
	checker := StatusCheckerFunc(func(ctx context.Context, txHash string) (domain.BridgeStatus, error) {
		return "", checkErr
	})
	s := newTestService(connectedWallets(), &fakeInitiator{hash: "0xdead"}, checker)

	_, err := s.Refresh(context.Background(), "nope")
	require.ErrorIs(t, err, ErrTransactionNotFound)

	_, err = s.Bridge(context.Background(), Request{From: domain.ChainEthereum, To: domain.ChainStacks, Amount: "1"})
	require.NoError(t, err)
	tx, err := s.Refresh(context.Background(), "tx-1")
	require.ErrorIs(t, err, checkErr)
	assert.Equal(t, domain.BridgeStatusProcessing, tx.Status)
}

func TestEstimateTime(t *testing.T) {
	assert.Equal(t, int64(720), EstimateTime(domain.ChainEthereum, domain.ChainStacks))
	assert.Equal(t, int64(1080), EstimateTime(domain.ChainStacks, domain.ChainEthereum))
	assert.Zero(t, EstimateTime(domain.ChainStacks, domain.ChainStacks))
}
