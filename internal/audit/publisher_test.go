package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	pub.Emit(context.Background(), Event{
		Category: CategorySecurity,
		Username: "jane",
		Action:   ActionLoginBlocked,
		Reason:   "Login failed",
	})

	events, err := store.ListByUser(context.Background(), "jane")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionLoginBlocked, events[0].Action)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))

	pub.Emit(context.Background(), Event{
		Category: CategorySecurity,
		Username: "jane",
		Action:   ActionTransactionGate,
		Outcome:  "block",
		Rule:     "malware_detected",
	})

	// Close drains the worker before we read.
	pub.Close()

	events, err := store.ListByUser(context.Background(), "jane")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "malware_detected", events[0].Rule)
}

func TestPublisher_PreservesExplicitIdentity(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	pub.Emit(context.Background(), Event{ID: "evt-1", Timestamp: at, Username: "jane", Action: ActionLogout})

	events, err := store.ListByUser(context.Background(), "jane")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, at, events[0].Timestamp)
}

func TestInMemoryStore_ListRecent(t *testing.T) {
	store := NewInMemoryStore()
	for _, user := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(context.Background(), Event{Username: user, Action: ActionSessionAuthorized}))
	}

	recent, err := store.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].Username)
	assert.Equal(t, "c", recent[1].Username)
}
