package bridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

func sampleTx(id string) domain.BridgeTransaction {
	return domain.BridgeTransaction{
		ID:            id,
		From:          domain.ChainEthereum,
		To:            domain.ChainStacks,
		Amount:        "10",
		Status:        domain.BridgeStatusPending,
		Timestamp:     time.UnixMilli(1700000000000),
		EstimatedTime: 720,
	}
}

func TestTrackerAddPrependsAndSetsCurrent(t *testing.T) {
	tr := NewTracker()
	tr.Add(sampleTx("a"))
	tr.Add(sampleTx("b"))

	txs := tr.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, "b", txs[0].ID)
	assert.Equal(t, "a", txs[1].ID)

	current, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, "b", current.ID)
}

func TestTrackerUpdateKeepsCurrentInSync(t *testing.T) {
	tr := NewTracker()
	tr.Add(sampleTx("a"))

	ok := tr.Update("a", domain.SubmittedUpdate("0xabc"))
	require.True(t, ok)

	current, _ := tr.Current()
	entry, found := tr.Get("a")
	require.True(t, found)
	assert.Equal(t, entry, current)
	assert.Equal(t, domain.BridgeStatusProcessing, entry.Status)
	assert.Equal(t, "0xabc", entry.TxHash)
	assert.Equal(t, int64(720), entry.EstimatedTime)
}

func TestTrackerUpdateOlderEntryLeavesCurrent(t *testing.T) {
	tr := NewTracker()
	tr.Add(sampleTx("a"))
	tr.Add(sampleTx("b"))

	tr.Update("a", domain.StatusUpdate(domain.BridgeStatusFailed))

	current, _ := tr.Current()
	assert.Equal(t, "b", current.ID)
	assert.Equal(t, domain.BridgeStatusPending, current.Status)

	a, _ := tr.Get("a")
	assert.Equal(t, domain.BridgeStatusFailed, a.Status)
}

func TestTrackerUpdateUnknownID(t *testing.T) {
	tr := NewTracker()
	tr.Add(sampleTx("a"))
	before := tr.Transactions()
	beforeCurrent, _ := tr.Current()

	assert.False(t, tr.Update("missing", domain.StatusUpdate(domain.BridgeStatusCompleted)))
	assert.Equal(t, before, tr.Transactions())
	current, _ := tr.Current()
	assert.Equal(t, beforeCurrent, current)
}

func TestTrackerSetCurrentAndClear(t *testing.T) {
	tr := NewTracker()
	tr.Add(sampleTx("a"))
	tr.Add(sampleTx("b"))

	assert.True(t, tr.SetCurrent(""))
	_, ok := tr.Current()
	assert.False(t, ok)
	assert.Len(t, tr.Transactions(), 2)

	assert.False(t, tr.SetCurrent("missing"))
	_, ok = tr.Current()
	assert.False(t, ok)

	require.True(t, tr.SetCurrent("a"))
	current, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, "a", current.ID)

	tr.Clear()
	assert.Empty(t, tr.Transactions())
	_, ok = tr.Current()
	assert.False(t, ok)
}

func TestTrackerCurrentFollowsHistoryEntry(t *testing.T) {
	tr := NewTracker()
	tr.Add(sampleTx("a"))
	tr.Add(sampleTx("b"))
	require.True(t, tr.SetCurrent("a"))

	tr.Update("a", domain.SubmittedUpdate("0x1"))

	current, ok := tr.Current()
	require.True(t, ok)
	entry, _ := tr.Get("a")
	assert.Equal(t, entry, current)
	assert.Equal(t, "10", current.Amount)
	assert.Equal(t, "0x1", current.TxHash)
}

func TestTrackerTransactionsReturnsCopy(t *testing.T) {
	tr := NewTracker()
	tr.Add(sampleTx("a"))
	txs := tr.Transactions()
	txs[0].Status = domain.BridgeStatusFailed

	a, _ := tr.Get("a")
	assert.Equal(t, domain.BridgeStatusPending, a.Status)
}

func TestTrackerNotifiesListeners(t *testing.T) {
	var seen []domain.BridgeTransaction
	tr := NewTracker(ListenerFunc(func(tx domain.BridgeTransaction) {
		seen = append(seen, tx)
	}))

	tr.Add(sampleTx("a"))
	tr.Update("a", domain.SubmittedUpdate("0x1"))
	tr.Update("missing", domain.SubmittedUpdate("0x2"))

	require.Len(t, seen, 2)
	assert.Equal(t, domain.BridgeStatusPending, seen[0].Status)
	assert.Equal(t, domain.BridgeStatusProcessing, seen[1].Status)
	assert.Equal(t, "0x1", seen[1].TxHash)
}
