package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/storage/memory"
)

func testEvent(t *testing.T, guildID string, typ events.Type, at time.Time) *events.Event {
	t.Helper()
	e, err := events.New(guildID, typ, at, "player-1", nil)
	require.NoError(t, err)
	return e
}

func TestScope_AssignsSequentialSeqs(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	sc := newRootScope(tx, "guild-1")

	first := testEvent(t, "guild-1", events.TypePlayerJoined, at)
	second := testEvent(t, "guild-1", events.TypeOrderRecharge, at.Add(time.Hour))

	require.NoError(t, sc.AddEvent(ctx, first))
	require.NoError(t, sc.AddEvent(ctx, second))

	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, int64(2), second.Seq)
	// The second event chains onto the first within the same scope
	assert.Equal(t, int64(0), first.ParentSeq)
	assert.Equal(t, first.Seq, second.ParentSeq)
}

func TestScope_ChildEventsParentToEnclosingAction(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	sc := newRootScope(tx, "guild-1")

	action := testEvent(t, "guild-1", events.TypeCreaturePlayed, at)
	require.NoError(t, sc.AddEvent(ctx, action))

	// Each sub-operation opens its own child scope, so every sub-event sees
	// the action as its nearest ancestor event rather than chaining onto a
	// sibling sub-event.
	paid := testEvent(t, "guild-1", events.TypeResourcePaid, at)
	require.NoError(t, sc.child().AddEvent(ctx, paid))

	gained := testEvent(t, "guild-1", events.TypeResourceGained, at)
	require.NoError(t, sc.child().AddEvent(ctx, gained))

	assert.Equal(t, action.Seq, paid.ParentSeq)
	assert.Equal(t, action.Seq, gained.ParentSeq)

	all := sc.Events()
	require.Len(t, all, 3)
}

func TestScope_ExplicitParentWins(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	sc := newRootScope(tx, "guild-1")

	root := testEvent(t, "guild-1", events.TypePlayerJoined, at)
	require.NoError(t, sc.AddEvent(ctx, root))

	timer := testEvent(t, "guild-1", events.TypeOrderRecharge, at.Add(time.Hour))
	timer.ParentSeq = root.Seq

	other := testEvent(t, "guild-1", events.TypeMagicRecharge, at.Add(time.Hour))
	other.ParentSeq = root.Seq

	child := sc.child()
	require.NoError(t, child.AddEvent(ctx, timer))
	require.NoError(t, child.AddEvent(ctx, other))

	// Both keep the explicit parent instead of chaining onto each other
	assert.Equal(t, root.Seq, timer.ParentSeq)
	assert.Equal(t, root.Seq, other.ParentSeq)
}

func TestScope_SeqsContinueFromJournal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	sc := newRootScope(tx, "guild-1")
	first := testEvent(t, "guild-1", events.TypePlayerJoined, at)
	require.NoError(t, sc.AddEvent(ctx, first))
	require.NoError(t, tx.AppendEvents(ctx, sc.Events()))
	require.NoError(t, tx.Commit())

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	sc = newRootScope(tx, "guild-1")
	second := testEvent(t, "guild-1", events.TypePlayerLeft, at.Add(time.Hour))
	require.NoError(t, sc.AddEvent(ctx, second))

	assert.Equal(t, int64(2), second.Seq)
}
