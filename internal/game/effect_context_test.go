package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
)

func TestNextSelection_ConsumesOneAnswerPerChoicePointInOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	tx, err := env.store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	queue := []int{2, 0}
	ec := env.svc.newEffectContext(newRootScope(tx, "guild-1"), "player-1", &queue)

	// Each choice point takes exactly the next queued answer
	picked, err := ec.NextSelection(entities.Choice{
		Prompt:  "Pick the first offering",
		Options: []string{"a", "b", "c", "d"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, picked)
	assert.Len(t, queue, 1)

	picked, err = ec.NextSelection(entities.Choice{
		Prompt:  "Pick the second offering",
		Options: []string{"x", "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, picked)
	assert.Empty(t, queue)

	// An exhausted queue raises the choice that needs answering
	_, err = ec.NextSelection(entities.Choice{
		Prompt:  "Pick the third offering",
		Options: []string{"x", "y"},
	})
	needs, ok := AsNeedsChoice(err)
	require.True(t, ok)
	assert.Equal(t, "Pick the third offering", needs.Choice.Prompt)
}

func TestNextSelection_RejectsOutOfRangeQueuedAnswer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupPlayer(t, "guild-1", "player-1")

	tx, err := env.store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	queue := []int{5}
	ec := env.svc.newEffectContext(newRootScope(tx, "guild-1"), "player-1", &queue)

	_, err = ec.NextSelection(entities.Choice{
		Prompt:  "Pick an offering",
		Options: []string{"x", "y"},
	})
	assert.True(t, apperrors.IsInvalidArgument(err))
}
