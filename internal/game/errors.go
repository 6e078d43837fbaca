package game

import (
	"errors"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
)

// Rule-violation errors. Any of these aborts the whole enclosing transaction;
// nothing from the attempt persists.
var (
	// ErrInsufficientResources is returned when a price exceeds a balance
	ErrInsufficientResources = apperrors.RuleViolation("insufficient resources")

	// ErrCreatureCannotQuest marks a creature type that never quests
	ErrCreatureCannotQuest = apperrors.RuleViolation("this creature cannot quest")

	// ErrCreatureCannotQuestHere marks a region that rejects the creature's category
	ErrCreatureCannotQuestHere = apperrors.RuleViolation("this creature cannot quest in this region")

	// ErrCreatureCannotCampaign marks a creature type that never campaigns
	ErrCreatureCannotCampaign = apperrors.RuleViolation("this creature cannot join the campaign")

	// ErrRegionOccupied is returned when playing into an occupied region
	ErrRegionOccupied = apperrors.RuleViolation("the region is still occupied")

	// ErrCreatureNotInHand is returned when playing a creature outside the hand
	ErrCreatureNotInHand = apperrors.RuleViolation("the creature is not in your hand")

	// ErrEmptyDeck is returned when drawing with no cards left anywhere
	ErrEmptyDeck = apperrors.RuleViolation("no cards left to draw")

	// ErrExpiredFreeCreature is returned when claiming past the expiry window
	ErrExpiredFreeCreature = apperrors.RuleViolation("this free creature has expired")

	// ErrProtectedFreeCreature is returned when a non-roller claims during protection
	ErrProtectedFreeCreature = apperrors.RuleViolation("this free creature is still protected for its roller")

	// ErrAlreadyClaimed is returned when claiming a taken reward
	ErrAlreadyClaimed = apperrors.RuleViolation("this free creature was already claimed")
)

// NeedsChoiceError is the control-flow signal raised when an ability requires
// a player-supplied selection that is not in the extra-data queue. It is not a
// failure: the transaction rolls back and the command is suspended until the
// player answers.
type NeedsChoiceError struct {
	Choice entities.Choice
}

// Error implements the error interface
func (e *NeedsChoiceError) Error() string {
	return "player input required: " + e.Choice.Prompt
}

// AsNeedsChoice extracts a NeedsChoiceError from an error chain
func AsNeedsChoice(err error) (*NeedsChoiceError, bool) {
	var needs *NeedsChoiceError
	if errors.As(err, &needs) {
		return needs, true
	}
	return nil, false
}
