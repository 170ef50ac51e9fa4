package domain

import (
	"encoding/json"
	"time"
)

// BridgeStatus is the lifecycle state of a bridge transfer.
type BridgeStatus string

const (
	BridgeStatusPending    BridgeStatus = "pending"
	BridgeStatusProcessing BridgeStatus = "processing"
	BridgeStatusCompleted  BridgeStatus = "completed"
	BridgeStatusFailed     BridgeStatus = "failed"
)

// CanAdvanceTo reports whether moving from s to next follows
// pending -> processing -> {completed|failed}. Pending may fail directly.
func (s BridgeStatus) CanAdvanceTo(next BridgeStatus) bool {
	switch s {
	case BridgeStatusPending:
		return next == BridgeStatusProcessing || next == BridgeStatusFailed
	case BridgeStatusProcessing:
		return next == BridgeStatusCompleted || next == BridgeStatusFailed
	}
	return false
}

// IsFinal reports whether no further transitions are defined.
func (s BridgeStatus) IsFinal() bool {
	return s == BridgeStatusCompleted || s == BridgeStatusFailed
}

// BridgeTransaction is a tracked transfer between the two chains.
type BridgeTransaction struct {
	ID            string       `json:"id"`
	From          Chain        `json:"from"`
	To            Chain        `json:"to"`
	Amount        string       `json:"amount"`
	Status        BridgeStatus `json:"status"`
	TxHash        string       `json:"txHash,omitempty"`
	Timestamp     time.Time    `json:"-"`
	EstimatedTime int64        `json:"estimatedTime,omitempty"` // seconds, advisory
}

// MarshalJSON encodes Timestamp as unix milliseconds.
func (t BridgeTransaction) MarshalJSON() ([]byte, error) {
	type alias BridgeTransaction
	return json.Marshal(struct {
		alias
		Timestamp int64 `json:"timestamp"`
	}{alias(t), t.Timestamp.UnixMilli()})
}

// TransactionUpdate carries the fields to merge into a BridgeTransaction.
// Nil fields are left untouched.
type TransactionUpdate struct {
	Status        *BridgeStatus
	TxHash        *string
	EstimatedTime *int64
}

// Apply returns tx with the non-nil fields of u merged in.
func (u TransactionUpdate) Apply(tx BridgeTransaction) BridgeTransaction {
	if u.Status != nil {
		tx.Status = *u.Status
	}
	if u.TxHash != nil {
		tx.TxHash = *u.TxHash
	}
	if u.EstimatedTime != nil {
		tx.EstimatedTime = *u.EstimatedTime
	}
	return tx
}

// StatusUpdate builds an update that only changes the status.
func StatusUpdate(status BridgeStatus) TransactionUpdate {
	return TransactionUpdate{Status: &status}
}

// SubmittedUpdate marks a transaction as processing with the given hash.
func SubmittedUpdate(txHash string) TransactionUpdate {
	status := BridgeStatusProcessing
	return TransactionUpdate{Status: &status, TxHash: &txHash}
}
