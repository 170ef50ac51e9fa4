package bridge

import (
	"sync"

	"github.com/vietddude/stacksyield/internal/core/domain"
)

// Listener is notified with the latest snapshot of a transaction after it is
// added or updated.
type Listener interface {
	OnTransaction(tx domain.BridgeTransaction)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(tx domain.BridgeTransaction)

func (f ListenerFunc) OnTransaction(tx domain.BridgeTransaction) { f(tx) }

// Tracker holds the session's bridge history, newest first, and a pointer to
// the current transaction. The current transaction is always resolved from the
// history, so both views show the same data for an id.
type Tracker struct {
	transactions []domain.BridgeTransaction
	currentID    string
	listeners    []Listener
	mu           sync.RWMutex
}

// NewTracker creates an empty tracker.
func NewTracker(listeners ...Listener) *Tracker {
	return &Tracker{listeners: listeners}
}

// AddListener registers a listener for subsequent changes.
func (t *Tracker) AddListener(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

// Add prepends tx to the history and makes it current.
func (t *Tracker) Add(tx domain.BridgeTransaction) {
	t.mu.Lock()
	t.transactions = append([]domain.BridgeTransaction{tx}, t.transactions...)
	t.currentID = tx.ID
	listeners := t.listeners
	t.mu.Unlock()

	notify(listeners, tx)
}

// Update merges u into the transaction with the given id. Unknown ids are
// ignored.
func (t *Tracker) Update(id string, u domain.TransactionUpdate) bool {
	t.mu.Lock()
	i := t.indexOf(id)
	if i < 0 {
		t.mu.Unlock()
		return false
	}
	t.transactions[i] = u.Apply(t.transactions[i])
	updated := t.transactions[i]
	listeners := t.listeners
	t.mu.Unlock()

	notify(listeners, updated)
	return true
}

// SetCurrent points the current transaction at the history entry with the
// given id. An empty id clears it; an unknown id leaves it unchanged and
// returns false.
func (t *Tracker) SetCurrent(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id == "" {
		t.currentID = ""
		return true
	}
	if t.indexOf(id) < 0 {
		return false
	}
	t.currentID = id
	return true
}

// Clear empties the history and the current pointer.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transactions = nil
	t.currentID = ""
}

// Transactions returns a copy of the history, newest first.
func (t *Tracker) Transactions() []domain.BridgeTransaction {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.BridgeTransaction, len(t.transactions))
	copy(out, t.transactions)
	return out
}

// Current returns the current transaction, if any.
func (t *Tracker) Current() (domain.BridgeTransaction, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.currentID == "" {
		return domain.BridgeTransaction{}, false
	}
	if i := t.indexOf(t.currentID); i >= 0 {
		return t.transactions[i], true
	}
	return domain.BridgeTransaction{}, false
}

// Get returns the history entry with the given id.
func (t *Tracker) Get(id string) (domain.BridgeTransaction, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := t.indexOf(id); i >= 0 {
		return t.transactions[i], true
	}
	return domain.BridgeTransaction{}, false
}

func (t *Tracker) indexOf(id string) int {
	for i := range t.transactions {
		if t.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func notify(listeners []Listener, tx domain.BridgeTransaction) {
	for _, l := range listeners {
		l.OnTransaction(tx)
	}
}
