package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/thornmere/menagerie-bot-discord/internal/clock"
	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	mocknotify "github.com/thornmere/menagerie-bot-discord/internal/notify/mock"
	"github.com/thornmere/menagerie-bot-discord/internal/repositories/pendingchoices"
	mockshuffle "github.com/thornmere/menagerie-bot-discord/internal/shuffle/mock"
	"github.com/thornmere/menagerie-bot-discord/internal/storage/memory"
)

// testEnv bundles a service over an in-memory store with deterministic time
// and shuffling
type testEnv struct {
	svc      *Service
	store    *memory.Store
	clock    *clock.Fixed
	shuffler *mockshuffle.ManualMockShuffler
	pending  pendingchoices.Repository
}

var testStart = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:    memory.NewStore(),
		clock:    clock.NewFixed(testStart),
		shuffler: mockshuffle.NewManualMockShuffler(),
		pending:  pendingchoices.NewInMemoryRepository(),
	}
	env.svc = NewService(&ServiceConfig{
		Store:          env.store,
		PendingChoices: env.pending,
		Shuffler:       env.shuffler,
		Clock:          env.clock,
	})
	return env
}

// setupPlayer provisions a guild with one enrolled player
func (env *testEnv) setupPlayer(t *testing.T, guildID, playerID string) *entities.Player {
	t.Helper()
	ctx := context.Background()

	_, err := env.svc.CreateGuild(ctx, guildID)
	require.NoError(t, err)

	player, err := env.svc.JoinGuild(ctx, guildID, playerID)
	require.NoError(t, err)
	return player
}

// findHandCreature returns the first hand creature with the given base id
func (env *testEnv) findHandCreature(t *testing.T, guildID, playerID string, baseID int) *entities.Creature {
	t.Helper()

	hand, err := env.svc.GetHand(context.Background(), guildID, playerID)
	require.NoError(t, err)
	for _, creature := range hand {
		if creature.BaseID == baseID {
			return creature
		}
	}
	t.Fatalf("no creature with base id %d in hand", baseID)
	return nil
}

// findRegion returns the guild's region instance with the given base id
func (env *testEnv) findRegion(t *testing.T, guildID string, baseID int) *entities.Region {
	t.Helper()

	regions, err := env.svc.ListRegions(context.Background(), guildID)
	require.NoError(t, err)
	for _, region := range regions {
		if region.BaseID == baseID {
			return region
		}
	}
	t.Fatalf("no region with base id %d", baseID)
	return nil
}

func TestService_NotifiesResolverAfterCommitWithEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := mocknotify.NewMockNotifier(ctrl)

	env := newTestEnv(t)
	svc := NewService(&ServiceConfig{
		Store:          env.store,
		PendingChoices: env.pending,
		Notifier:       notifier,
		Shuffler:       env.shuffler,
		Clock:          env.clock,
	})

	ctx := context.Background()

	// Guild creation records no events, so no notification
	_, err := svc.CreateGuild(ctx, "guild-1")
	require.NoError(t, err)

	// Joining commits events and wakes the resolver
	notifier.EXPECT().Notify(gomock.Any()).Return(nil)
	_, err = svc.JoinGuild(ctx, "guild-1", "player-1")
	require.NoError(t, err)
}
