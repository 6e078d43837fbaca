package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
)

func TestDrawCards_HandCapacityCutsDrawShort(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	// Hand 3 of 5; asking for four only yields two
	result, err := env.svc.DrawCards(ctx, "guild-1", "player-1", 4)
	require.NoError(t, err)
	assert.Len(t, result.Drawn, 2)
	assert.True(t, result.HandFull)
	assert.False(t, result.Reshuffled)

	hand, err := env.svc.GetHand(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Len(t, hand, 5)

	// Against an already full hand a draw is a quiet no-op
	result, err = env.svc.DrawCards(ctx, "guild-1", "player-1", 1)
	require.NoError(t, err)
	assert.Empty(t, result.Drawn)
	assert.True(t, result.HandFull)
}

func TestDrawCards_ReshufflesDiscardThenRunsDry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	// Build a discard pile: the raven trades a hand card away
	_, err := env.svc.DrawCards(ctx, "guild-1", "player-1", 2)
	require.NoError(t, err)
	raven := env.findHandCreature(t, "guild-1", "player-1", baseRaven)
	glade := env.findRegion(t, "guild-1", baseGlade)
	_, err = env.svc.PlayCreatureToRegion(ctx, &PlayRegionInput{
		GuildID:    "guild-1",
		PlayerID:   "player-1",
		CreatureID: raven.ID,
		RegionID:   glade.ID,
		Answers:    []int{0},
	})
	require.NoError(t, err)

	// Hand 3, deck 3, discard 1. Lift the capacity so the deck can be
	// drained past its remaining cards.
	guild, err := env.svc.GetGuild(ctx, "guild-1")
	require.NoError(t, err)
	cfg := guild.Config
	cfg.HandCapacity = 20
	require.NoError(t, env.svc.UpdateGuildConfig(ctx, "guild-1", cfg))

	result, err := env.svc.DrawCards(ctx, "guild-1", "player-1", 4)
	require.NoError(t, err)
	assert.Len(t, result.Drawn, 4)
	assert.True(t, result.Reshuffled)

	player, err := env.svc.GetPlayer(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Len(t, player.Hand, 7)
	assert.Empty(t, player.Deck)
	assert.Empty(t, player.Discard)

	// With deck and discard both empty the next draw has nothing to give
	_, err = env.svc.DrawCards(ctx, "guild-1", "player-1", 1)
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestGetPlayer_UnknownPlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CreateGuild(ctx, "guild-1")
	require.NoError(t, err)

	_, err = env.svc.GetPlayer(ctx, "guild-1", "nobody")
	assert.True(t, apperrors.IsNotFound(err))
}
