package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/stacksyield/internal/core/domain"
	"github.com/vietddude/stacksyield/internal/metrics"
)

// WalletState exposes the wallet states the service needs. It is satisfied
// by *wallet.Tracker.
type WalletState interface {
	State(chain domain.Chain) domain.WalletState
}

// Request is a user's bridge intent.
type Request struct {
	From   domain.Chain `json:"from"`
	To     domain.Chain `json:"to"`
	Amount string       `json:"amount"`
}

// Service records bridge requests in the tracker and drives the initiator.
type Service struct {
	wallets   WalletState
	tracker   *Tracker
	initiator Initiator
	status    StatusChecker
	now       func() time.Time
	newID     func() string
	log       *slog.Logger
}

// NewService creates a bridge service. A nil status checker defaults to ConfirmedStatus.
func NewService(wallets WalletState, tracker *Tracker, initiator Initiator, status StatusChecker) *Service {
	if status == nil {
		status = ConfirmedStatus
	}
	return &Service{
		wallets:   wallets,
		tracker:   tracker,
		initiator: initiator,
		status:    status,
		now:       time.Now,
		newID:     uuid.NewString,
		log:       slog.Default().With("component", "bridge"),
	}
}

// Tracker returns the transaction tracker the service writes to.
func (s *Service) Tracker() *Tracker {
	return s.tracker
}

// Bridge validates req, records a pending transaction and submits it. The
// returned transaction reflects the tracker after the attempt; on failure it is
// marked failed and the initiator's error is returned alongside it.
func (s *Service) Bridge(ctx context.Context, req Request) (domain.BridgeTransaction, error) {
	if _, err := ParseAmount(req.Amount); err != nil {
		return domain.BridgeTransaction{}, err
	}

	source := s.wallets.State(req.From)
	if !source.IsConnected {
		return domain.BridgeTransaction{}, fmt.Errorf("%w: connect your %s wallet", domain.ErrWalletNotConnected, req.From)
	}
	dest := s.wallets.State(req.To)
	if !dest.IsConnected || dest.Address == "" {
		return domain.BridgeTransaction{}, fmt.Errorf("%w: connect your %s wallet", domain.ErrWalletNotConnected, req.To)
	}

	tx := domain.BridgeTransaction{
		ID:            s.newID(),
		From:          req.From,
		To:            req.To,
		Amount:        req.Amount,
		Status:        domain.BridgeStatusPending,
		Timestamp:     s.now(),
		EstimatedTime: EstimateTime(req.From, req.To),
	}
	s.tracker.Add(tx)

	txHash, err := s.submit(ctx, req, dest.Address)
	if err != nil {
		s.tracker.Update(tx.ID, domain.StatusUpdate(domain.BridgeStatusFailed))
		metrics.BridgeInitiations.WithLabelValues(string(req.From), string(req.To), "failed").Inc()
		s.log.Error("Bridge failed", "id", tx.ID, "from", req.From, "to", req.To, "error", err)
		updated, _ := s.tracker.Get(tx.ID)
		return updated, err
	}

	s.tracker.Update(tx.ID, domain.SubmittedUpdate(txHash))
	metrics.BridgeInitiations.WithLabelValues(string(req.From), string(req.To), "submitted").Inc()
	s.log.Info("Bridge transaction submitted", "id", tx.ID, "tx", txHash)

	updated, _ := s.tracker.Get(tx.ID)
	return updated, nil
}

func (s *Service) submit(ctx context.Context, req Request, destination string) (string, error) {
	switch {
	case req.From == domain.ChainEthereum && req.To == domain.ChainStacks:
		return s.initiator.BridgeToStacks(ctx, req.Amount, destination)
	case req.From == domain.ChainStacks && req.To == domain.ChainEthereum:
		return s.initiator.BridgeToEthereum(ctx, req.Amount, destination)
	}
	return "", fmt.Errorf("%w: %s to %s", domain.ErrNotImplemented, req.From, req.To)
}

// ErrTransactionNotFound is returned by Refresh for unknown ids.
var ErrTransactionNotFound = errors.New("bridge transaction not found")

// Refresh asks the status checker about a processing transaction and applies
// the reported status when it moves the transaction forward.
func (s *Service) Refresh(ctx context.Context, id string) (domain.BridgeTransaction, error) {
	tx, ok := s.tracker.Get(id)
	if !ok {
		return domain.BridgeTransaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	if tx.Status != domain.BridgeStatusProcessing || tx.TxHash == "" {
		return tx, nil
	}

	status, err := s.status.Check(ctx, tx.TxHash)
	if err != nil {
		return tx, fmt.Errorf("check status of %s: %w", tx.TxHash, err)
	}
	if !tx.Status.CanAdvanceTo(status) {
		return tx, nil
	}

	s.tracker.Update(id, domain.StatusUpdate(status))
	s.log.Info("Bridge status updated", "id", id, "status", status)
	tx, _ = s.tracker.Get(id)
	return tx, nil
}
