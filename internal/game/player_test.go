package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
)

func TestJoinGuild_ArmsOneTimerChainPerResource(t *testing.T) {
	env := newTestEnv(t)
	env.setupPlayer(t, "guild-1", "player-1")

	assert.Equal(t, 1, env.unresolvedOfType(t, "guild-1", events.TypeOrderRecharge))
	assert.Equal(t, 1, env.unresolvedOfType(t, "guild-1", events.TypeMagicRecharge))
	assert.Equal(t, 1, env.unresolvedOfType(t, "guild-1", events.TypeCardRecharge))
}

func TestLeaveGuild_RetiresTimerChains(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	require.NoError(t, env.svc.LeaveGuild(ctx, "guild-1", "player-1"))

	assert.Equal(t, 0, env.unresolvedOfType(t, "guild-1", events.TypeOrderRecharge))
	assert.Equal(t, 0, env.unresolvedOfType(t, "guild-1", events.TypeMagicRecharge))
	assert.Equal(t, 0, env.unresolvedOfType(t, "guild-1", events.TypeCardRecharge))
}

func TestRejoinAfterLeave_DoesNotDuplicateTimerChains(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	require.NoError(t, env.svc.LeaveGuild(ctx, "guild-1", "player-1"))
	_, err := env.svc.JoinGuild(ctx, "guild-1", "player-1")
	require.NoError(t, err)

	// Only the fresh chain may exist; a revived stale one would double income
	assert.Equal(t, 1, env.unresolvedOfType(t, "guild-1", events.TypeOrderRecharge))

	env.clock.Advance(4*time.Hour + time.Minute)
	_, err = env.svc.ResolveDueEvents(ctx, "guild-1", env.clock.Now())
	require.NoError(t, err)

	resources, err := env.svc.GetResources(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, 4, resources[entities.ResourceOrder])

	assert.Equal(t, 1, env.unresolvedOfType(t, "guild-1", events.TypeOrderRecharge))
}

func TestLeaveGuild_FreesOccupiedRegions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	boar := env.findHandCreature(t, "guild-1", "player-1", baseBoar)
	market := env.findRegion(t, "guild-1", baseMarket)
	_, err := env.svc.PlayCreatureToRegion(ctx, &PlayRegionInput{
		GuildID:    "guild-1",
		PlayerID:   "player-1",
		CreatureID: boar.ID,
		RegionID:   market.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.LeaveGuild(ctx, "guild-1", "player-1"))

	market = env.findRegion(t, "guild-1", baseMarket)
	assert.False(t, market.Occupied())
}
