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

func TestLedger_GiveAndRemove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	// Starting balances
	resources, err := env.svc.GetResources(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, 3, resources[entities.ResourceOrder])
	assert.Equal(t, 2, resources[entities.ResourceMagic])

	require.NoError(t, env.svc.Give(ctx, "guild-1", "player-1", []entities.ResourceAmount{
		{Resource: entities.ResourceOrder, Amount: 2},
	}))
	require.NoError(t, env.svc.Remove(ctx, "guild-1", "player-1", []entities.ResourceAmount{
		{Resource: entities.ResourceMagic, Amount: 1},
	}))

	resources, err = env.svc.GetResources(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, 5, resources[entities.ResourceOrder])
	assert.Equal(t, 1, resources[entities.ResourceMagic])
}

func TestLedger_RemoveNeverDrivesBalanceNegative(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	err := env.svc.Remove(ctx, "guild-1", "player-1", []entities.ResourceAmount{
		{Resource: entities.ResourceOrder, Amount: 4},
	})
	assert.ErrorIs(t, err, ErrInsufficientResources)

	// The failed removal changed nothing
	resources, err := env.svc.GetResources(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, 3, resources[entities.ResourceOrder])
}

func TestLedger_MixedPriceIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	// order is affordable, magic is not; neither may be deducted
	err := env.svc.Remove(ctx, "guild-1", "player-1", []entities.ResourceAmount{
		{Resource: entities.ResourceOrder, Amount: 1},
		{Resource: entities.ResourceMagic, Amount: 5},
	})
	assert.ErrorIs(t, err, ErrInsufficientResources)

	resources, err := env.svc.GetResources(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, 3, resources[entities.ResourceOrder])
	assert.Equal(t, 2, resources[entities.ResourceMagic])
}

func TestLedger_DuplicateEntriesMergeIntoOneEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	require.NoError(t, env.svc.Give(ctx, "guild-1", "player-1", []entities.ResourceAmount{
		{Resource: entities.ResourceOrder, Amount: 1},
		{Resource: entities.ResourceOrder, Amount: 2},
	}))

	resources, err := env.svc.GetResources(ctx, "guild-1", "player-1")
	require.NoError(t, err)
	assert.Equal(t, 6, resources[entities.ResourceOrder])

	gains, err := env.svc.EventsInWindow(ctx, "guild-1",
		testStart.Add(-time.Hour), testStart.Add(time.Hour),
		[]events.Type{events.TypeResourceGained})
	require.NoError(t, err)
	require.Len(t, gains, 1)

	payload, err := events.Decode(gains[0])
	require.NoError(t, err)
	gained := payload.(*events.GainedPayload)
	assert.Equal(t, []entities.ResourceAmount{
		{Resource: entities.ResourceOrder, Amount: 3},
	}, gained.Amounts)
}

func TestLedger_EmptyAndZeroAmountsAreNoOps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	before, err := env.svc.EventsInWindow(ctx, "guild-1",
		testStart.Add(-time.Hour), testStart.Add(time.Hour), nil)
	require.NoError(t, err)

	require.NoError(t, env.svc.Give(ctx, "guild-1", "player-1", nil))
	require.NoError(t, env.svc.Remove(ctx, "guild-1", "player-1", []entities.ResourceAmount{
		{Resource: entities.ResourceMagic, Amount: 0},
	}))

	after, err := env.svc.EventsInWindow(ctx, "guild-1",
		testStart.Add(-time.Hour), testStart.Add(time.Hour), nil)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestLedger_HasAndFulfillsPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	ok, err := env.svc.Has(ctx, "guild-1", "player-1", entities.ResourceOrder, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.svc.Has(ctx, "guild-1", "player-1", entities.ResourceOrder, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.svc.FulfillsPrice(ctx, "guild-1", "player-1", []entities.ResourceAmount{
		{Resource: entities.ResourceOrder, Amount: 2},
		{Resource: entities.ResourceMagic, Amount: 2},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	// Duplicate entries are summed before checking
	ok, err = env.svc.FulfillsPrice(ctx, "guild-1", "player-1", []entities.ResourceAmount{
		{Resource: entities.ResourceMagic, Amount: 1},
		{Resource: entities.ResourceMagic, Amount: 2},
	})
	require.NoError(t, err)
	assert.False(t, ok)
}
