package game

import (
	"context"
	"errors"
	"log"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/repositories/pendingchoices"
)

// suspend records a rolled-back command so it can be replayed once the player
// answers. A player has at most one pending choice per guild; a new suspension
// overwrites the old one.
func (s *Service) suspend(ctx context.Context, guildID, playerID string, cmd entities.PendingCommand, answers []int, choice entities.Choice) {
	pending := &entities.PendingChoice{
		GuildID:   guildID,
		PlayerID:  playerID,
		Command:   cmd,
		Answers:   append([]int(nil), answers...),
		Choice:    choice,
		CreatedAt: s.clock.Now(),
	}
	if err := s.pending.Put(ctx, pending); err != nil {
		log.Printf("game: store pending choice for %s/%s: %v", guildID, playerID, err)
	}
}

// PendingChoiceFor returns the player's suspended command, if any
func (s *Service) PendingChoiceFor(ctx context.Context, guildID, playerID string) (*entities.PendingChoice, error) {
	pending, err := s.pending.Get(ctx, guildID, playerID)
	if err != nil {
		if errors.Is(err, pendingchoices.ErrNotFound) {
			return nil, apperrors.NotFoundf("no pending choice for player %s", playerID)
		}
		return nil, apperrors.Wrap(err, "get pending choice")
	}
	return pending, nil
}

// CancelChoice abandons the player's suspended command
func (s *Service) CancelChoice(ctx context.Context, guildID, playerID string) error {
	if err := s.pending.Delete(ctx, guildID, playerID); err != nil {
		if errors.Is(err, pendingchoices.ErrNotFound) {
			return apperrors.NotFoundf("no pending choice for player %s", playerID)
		}
		return apperrors.Wrap(err, "delete pending choice")
	}
	return nil
}

// ResumeChoice answers the player's pending choice and replays the suspended
// command from the beginning with the full answer queue. The replay can
// suspend again on a later choice; that records a fresh pending entry carrying
// every answer collected so far.
func (s *Service) ResumeChoice(ctx context.Context, guildID, playerID string, answer int) error {
	pending, err := s.pending.Get(ctx, guildID, playerID)
	if err != nil {
		if errors.Is(err, pendingchoices.ErrNotFound) {
			return apperrors.NotFoundf("no pending choice for player %s", playerID)
		}
		return apperrors.Wrap(err, "get pending choice")
	}

	if answer < 0 || answer >= len(pending.Choice.Options) {
		return apperrors.InvalidArgumentf("answer %d out of range for %d options", answer, len(pending.Choice.Options))
	}

	// The entry is spent whatever happens next; a re-suspension writes a new one
	if err := s.pending.Delete(ctx, guildID, playerID); err != nil && !errors.Is(err, pendingchoices.ErrNotFound) {
		return apperrors.Wrap(err, "delete pending choice")
	}

	answers := append(append([]int(nil), pending.Answers...), answer)

	switch pending.Command.Name {
	case CommandPlayRegion:
		_, err = s.PlayCreatureToRegion(ctx, &PlayRegionInput{
			GuildID:    guildID,
			PlayerID:   playerID,
			CreatureID: pending.Command.CreatureID,
			RegionID:   pending.Command.RegionID,
			Answers:    answers,
		})
	case CommandPlayCampaign:
		_, err = s.PlayCreatureToCampaign(ctx, &PlayCampaignInput{
			GuildID:    guildID,
			PlayerID:   playerID,
			CreatureID: pending.Command.CreatureID,
			Answers:    answers,
		})
	default:
		return apperrors.Internalf("unknown pending command %q", pending.Command.Name)
	}
	return err
}
