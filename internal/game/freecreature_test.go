package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
)

func (env *testEnv) rollWisp(t *testing.T, guildID, rollerID, messageID string) *entities.FreeCreature {
	t.Helper()

	// Pick index 4 of the rollable list lands on the gloom wisp,
	// whose claim price is 2 magic
	env.shuffler.SetPicks([]int{4})
	fc, err := env.svc.RollFreeCreature(context.Background(), &RollFreeCreatureInput{
		GuildID:   guildID,
		RollerID:  rollerID,
		ChannelID: "chan-1",
		MessageID: messageID,
	})
	require.NoError(t, err)
	require.Equal(t, baseWisp, fc.BaseID)
	return fc
}

func TestRollFreeCreature_OpensProtectionAndExpiryWindows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	fc := env.rollWisp(t, "guild-1", "player-1", "msg-1")
	assert.Equal(t, "player-1", fc.RollerID)
	assert.Equal(t, testStart.Add(30*time.Minute), fc.ProtectedUntil)
	assert.Equal(t, testStart.Add(6*time.Hour), fc.ExpiresAt)

	stored, err := env.svc.GetFreeCreature(ctx, "guild-1", "chan-1", "msg-1")
	require.NoError(t, err)
	assert.Equal(t, fc.BaseID, stored.BaseID)
	assert.False(t, stored.Claimed())
}

func TestClaimFreeCreature_RollerBeatsProtection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")
	env.setupPlayer(t, "guild-1", "player-2")

	env.rollWisp(t, "guild-1", "player-1", "msg-1")

	// Inside the protection window only the roller may claim
	_, err := env.svc.ClaimFreeCreature(ctx, "guild-1", "chan-1", "msg-1", "player-2")
	assert.ErrorIs(t, err, ErrProtectedFreeCreature)

	creature, err := env.svc.ClaimFreeCreature(ctx, "guild-1", "chan-1", "msg-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, baseWisp, creature.BaseID)
	assert.Equal(t, entities.LocationDiscard, creature.Location)

	// The claim price was paid
	resources, err := env.svc.GetResources(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, 0, resources[entities.ResourceMagic])

	player, err := env.svc.GetPlayer(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Contains(t, player.Discard, creature.ID)
}

func TestClaimFreeCreature_AnyoneAfterProtectionLapses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")
	env.setupPlayer(t, "guild-1", "player-2")

	env.rollWisp(t, "guild-1", "player-1", "msg-1")
	env.clock.Advance(31 * time.Minute)

	creature, err := env.svc.ClaimFreeCreature(ctx, "guild-1", "chan-1", "msg-1", "player-2")
	require.NoError(t, err)
	assert.Equal(t, "player-2", creature.OwnerID)

	resources, err := env.svc.GetResources(ctx, "guild-1", "player-2")
	require.NoError(t, err)
	assert.Equal(t, 0, resources[entities.ResourceMagic])

	// First come, first served
	_, err = env.svc.ClaimFreeCreature(ctx, "guild-1", "chan-1", "msg-1", "player-1")
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestClaimFreeCreature_InsufficientPriceLeavesRewardOpen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	env.rollWisp(t, "guild-1", "player-1", "msg-1")

	require.NoError(t, env.svc.Remove(ctx, "guild-1", "player-1", []entities.ResourceAmount{
		{Resource: entities.ResourceMagic, Amount: 2},
	}))

	_, err := env.svc.ClaimFreeCreature(ctx, "guild-1", "chan-1", "msg-1", "player-1")
	assert.ErrorIs(t, err, ErrInsufficientResources)

	fc, err := env.svc.GetFreeCreature(ctx, "guild-1", "chan-1", "msg-1")
	require.NoError(t, err)
	assert.False(t, fc.Claimed())
}

func TestClaimFreeCreature_ExpiryAndCleanup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	// One reward claimed right away, one left to rot
	env.rollWisp(t, "guild-1", "player-1", "msg-claimed")
	_, err := env.svc.ClaimFreeCreature(ctx, "guild-1", "chan-1", "msg-claimed", "player-1")
	require.NoError(t, err)

	env.rollWisp(t, "guild-1", "player-1", "msg-stale")

	env.clock.Advance(7 * time.Hour)
	now := env.clock.Now()

	_, err = env.svc.ClaimFreeCreature(ctx, "guild-1", "chan-1", "msg-stale", "player-1")
	assert.ErrorIs(t, err, ErrExpiredFreeCreature)

	_, err = env.svc.ResolveDueEvents(ctx, "guild-1", now)
	require.NoError(t, err)

	// The unclaimed reward is swept away; the claimed one stays for history
	_, err = env.svc.GetFreeCreature(ctx, "guild-1", "chan-1", "msg-stale")
	assert.True(t, apperrors.IsNotFound(err))

	fc, err := env.svc.GetFreeCreature(ctx, "guild-1", "chan-1", "msg-claimed")
	require.NoError(t, err)
	assert.True(t, fc.Claimed())
}
