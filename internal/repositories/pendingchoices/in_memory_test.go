package pendingchoices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
)

func testChoice(guildID, playerID string) *entities.PendingChoice {
	return &entities.PendingChoice{
		GuildID:  guildID,
		PlayerID: playerID,
		Command: entities.PendingCommand{
			Name:       "play_region",
			CreatureID: "creature-1",
			RegionID:   "region-1",
		},
		Answers: []int{1},
		Choice: entities.Choice{
			Prompt:  "Choose a card",
			Options: []string{"a", "b"},
		},
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestInMemoryRepository_PutGetDelete(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "guild-1", "player-1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Put(ctx, testChoice("guild-1", "player-1")))

	got, err := repo.Get(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, "play_region", got.Command.Name)
	assert.Equal(t, []int{1}, got.Answers)

	require.NoError(t, repo.Delete(ctx, "guild-1", "player-1"))
	_, err = repo.Get(ctx, "guild-1", "player-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "guild-1", "player-1"), ErrNotFound)
}

func TestInMemoryRepository_PutOverwrites(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	first := testChoice("guild-1", "player-1")
	require.NoError(t, repo.Put(ctx, first))

	second := testChoice("guild-1", "player-1")
	second.Answers = []int{1, 0}
	require.NoError(t, repo.Put(ctx, second))

	got, err := repo.Get(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, got.Answers)
}

func TestInMemoryRepository_DeleteGuild(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, testChoice("guild-1", "player-1")))
	require.NoError(t, repo.Put(ctx, testChoice("guild-1", "player-2")))
	require.NoError(t, repo.Put(ctx, testChoice("guild-2", "player-1")))

	require.NoError(t, repo.DeleteGuild(ctx, "guild-1"))

	_, err := repo.Get(ctx, "guild-1", "player-1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Get(ctx, "guild-1", "player-2")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Get(ctx, "guild-2", "player-1")
	assert.NoError(t, err)
}

func TestInMemoryRepository_CopiesOnReadAndWrite(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	original := testChoice("guild-1", "player-1")
	require.NoError(t, repo.Put(ctx, original))
	original.Answers[0] = 99

	got, err := repo.Get(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got.Answers)

	got.Answers[0] = 42
	again, err := repo.Get(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, again.Answers)
}
