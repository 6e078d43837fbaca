package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
)

func seedGuild(t *testing.T, store *Store, guildID string) {
	t.Helper()
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateGuild(ctx, &entities.Guild{
		ID:     guildID,
		Config: entities.DefaultGuildConfig(),
	}))
	require.NoError(t, tx.Commit())
}

func TestStore_CommitMakesWritesVisible(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedGuild(t, store, "guild-1")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreatePlayer(ctx, &entities.Player{
		GuildID: "guild-1",
		ID:      "player-1",
		Hand:    []string{"c1"},
	}))
	require.NoError(t, tx.Commit())

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	player, err := tx.GetPlayer(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, player.Hand)
}

func TestStore_RollbackDiscardsWrites(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedGuild(t, store, "guild-1")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreatePlayer(ctx, &entities.Player{GuildID: "guild-1", ID: "player-1"}))
	require.NoError(t, tx.Rollback())

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = tx.GetPlayer(ctx, "guild-1", "player-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_ReadsAreSnapshots(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedGuild(t, store, "guild-1")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreatePlayer(ctx, &entities.Player{GuildID: "guild-1", ID: "player-1"}))

	// Mutating a read copy must not leak into the transaction
	player, err := tx.GetPlayer(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	player.Hand = append(player.Hand, "stray")

	player, err = tx.GetPlayer(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Empty(t, player.Hand)
	require.NoError(t, tx.Rollback())
}

func TestStore_DeleteGuildCascades(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedGuild(t, store, "guild-1")
	seedGuild(t, store, "guild-2")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreatePlayer(ctx, &entities.Player{GuildID: "guild-1", ID: "player-1"}))
	require.NoError(t, tx.CreateCreature(ctx, &entities.Creature{GuildID: "guild-1", ID: "c1", OwnerID: "player-1"}))
	require.NoError(t, tx.CreateRegion(ctx, &entities.Region{GuildID: "guild-1", ID: "r1"}))
	require.NoError(t, tx.PutFreeCreature(ctx, &entities.FreeCreature{GuildID: "guild-1", ChannelID: "ch", MessageID: "m1"}))
	require.NoError(t, tx.AppendEvents(ctx, []*events.Event{
		{GuildID: "guild-1", Seq: 1, Type: events.TypePlayerJoined},
	}))
	require.NoError(t, tx.CreatePlayer(ctx, &entities.Player{GuildID: "guild-2", ID: "player-1"}))
	require.NoError(t, tx.Commit())

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeleteGuild(ctx, "guild-1"))
	require.NoError(t, tx.Commit())

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = tx.GetGuild(ctx, "guild-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = tx.GetPlayer(ctx, "guild-1", "player-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = tx.GetCreature(ctx, "guild-1", "c1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = tx.GetRegion(ctx, "guild-1", "r1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = tx.GetFreeCreature(ctx, "guild-1", "ch", "m1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	seq, err := tx.MaxEventSeq(ctx, "guild-1")
	require.NoError(t, err)
	assert.Zero(t, seq)

	// The sibling guild is untouched
	_, err = tx.GetPlayer(ctx, "guild-2", "player-1")
	assert.NoError(t, err)
}

func TestStore_CreateConflictsAndMissingUpdates(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedGuild(t, store, "guild-1")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	err = tx.CreateGuild(ctx, &entities.Guild{ID: "guild-1"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	err = tx.UpdatePlayer(ctx, &entities.Player{GuildID: "guild-1", ID: "ghost"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = tx.UpdateGuildConfig(ctx, "guild-9", entities.DefaultGuildConfig())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_EventJournal(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedGuild(t, store, "guild-1")

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.AppendEvents(ctx, []*events.Event{
		{GuildID: "guild-1", Seq: 1, Type: events.TypePlayerJoined, At: base},
		{GuildID: "guild-1", Seq: 2, ParentSeq: 1, Type: events.TypeOrderRecharge, At: base.Add(4 * time.Hour)},
		{GuildID: "guild-1", Seq: 3, ParentSeq: 1, Type: events.TypeCardsDrawn, At: base},
	}))
	require.NoError(t, tx.Commit())

	tx, err = store.Begin(ctx)
	require.NoError(t, err)

	seq, err := tx.MaxEventSeq(ctx, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), seq)

	unresolved, err := tx.UnresolvedEvents(ctx, "guild-1")
	require.NoError(t, err)
	assert.Len(t, unresolved, 3)

	require.NoError(t, tx.MarkEventResolved(ctx, "guild-1", 1))
	assert.ErrorIs(t, tx.MarkEventResolved(ctx, "guild-1", 99), storage.ErrNotFound)
	require.NoError(t, tx.Commit())

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	unresolved, err = tx.UnresolvedEvents(ctx, "guild-1")
	require.NoError(t, err)
	require.Len(t, unresolved, 2)
	assert.Equal(t, int64(2), unresolved[0].Seq)

	// Window and type filters
	window, err := tx.EventsInWindow(ctx, "guild-1", base, base.Add(time.Hour), nil)
	require.NoError(t, err)
	assert.Len(t, window, 2)

	window, err = tx.EventsInWindow(ctx, "guild-1", base, base.Add(5*time.Hour),
		[]events.Type{events.TypeOrderRecharge})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, int64(2), window[0].Seq)
}
