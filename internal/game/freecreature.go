package game

import (
	"context"
	"errors"

	"github.com/thornmere/menagerie-bot-discord/internal/catalog"
	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
)

// RollFreeCreatureInput identifies the Discord message a reward hangs off
type RollFreeCreatureInput struct {
	GuildID   string
	RollerID  string
	ChannelID string
	MessageID string
}

// RollFreeCreature rolls a claimable creature reward. The roller gets an
// exclusive protection window; after the expiry window nobody can claim. Both
// boundaries are recorded as timer events parented to the roll.
func (s *Service) RollFreeCreature(ctx context.Context, input *RollFreeCreatureInput) (*entities.FreeCreature, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input is required")
	}

	var fc *entities.FreeCreature
	err := s.runScope(ctx, input.GuildID, func(sc *Scope) error {
		guild, err := sc.Tx().GetGuild(ctx, input.GuildID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NotFoundf("guild %s not found", input.GuildID)
			}
			return apperrors.Wrap(err, "get guild")
		}
		if _, err := sc.Tx().GetPlayer(ctx, input.GuildID, input.RollerID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NotFoundf("player %s not found", input.RollerID)
			}
			return apperrors.Wrap(err, "get player")
		}

		rollable := catalog.RollableCreatures()
		if len(rollable) == 0 {
			return apperrors.Internal("catalog has no rollable creatures")
		}
		baseID := rollable[s.shuffler.Pick(len(rollable))]

		now := s.clock.Now()
		fc = &entities.FreeCreature{
			GuildID:        input.GuildID,
			ChannelID:      input.ChannelID,
			MessageID:      input.MessageID,
			BaseID:         baseID,
			RollerID:       input.RollerID,
			ProtectedUntil: now.Add(guild.Config.FreeCreatureProtection),
			ExpiresAt:      now.Add(guild.Config.FreeCreatureExpiry),
			RolledAt:       now,
		}
		if err := sc.Tx().PutFreeCreature(ctx, fc); err != nil {
			return apperrors.Wrap(err, "store free creature")
		}

		payload := &events.FreeCreaturePayload{
			ChannelID: input.ChannelID,
			MessageID: input.MessageID,
			BaseID:    baseID,
			RollerID:  input.RollerID,
		}

		rolled, err := events.New(input.GuildID, events.TypeFreeCreatureRolled, now, input.RollerID, payload)
		if err != nil {
			return apperrors.Wrap(err, "build rolled event")
		}
		if err := sc.AddEvent(ctx, rolled); err != nil {
			return err
		}

		// Both window timers are siblings under the roll
		timerScope := sc.child()

		unprotected, err := events.New(input.GuildID, events.TypeFreeCreatureUnprotected, fc.ProtectedUntil, input.RollerID, payload)
		if err != nil {
			return apperrors.Wrap(err, "build unprotected event")
		}
		unprotected.ParentSeq = rolled.Seq
		if err := timerScope.AddEvent(ctx, unprotected); err != nil {
			return err
		}

		expired, err := events.New(input.GuildID, events.TypeFreeCreatureExpired, fc.ExpiresAt, input.RollerID, payload)
		if err != nil {
			return apperrors.Wrap(err, "build expired event")
		}
		expired.ParentSeq = rolled.Seq
		return timerScope.AddEvent(ctx, expired)
	})
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// GetFreeCreature returns a rolled reward by its message key
func (s *Service) GetFreeCreature(ctx context.Context, guildID, channelID, messageID string) (*entities.FreeCreature, error) {
	var fc *entities.FreeCreature
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		var err error
		fc, err = sc.Tx().GetFreeCreature(ctx, guildID, channelID, messageID)
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFoundf("free creature %s/%s not found", channelID, messageID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// ClaimFreeCreature claims a rolled reward for the claimant. The claim price
// is paid inside the same transaction and the creature lands in the
// claimant's discard pile.
func (s *Service) ClaimFreeCreature(ctx context.Context, guildID, channelID, messageID, claimantID string) (*entities.Creature, error) {
	var creature *entities.Creature

	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		fc, err := sc.Tx().GetFreeCreature(ctx, guildID, channelID, messageID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NotFoundf("free creature %s/%s not found", channelID, messageID)
			}
			return apperrors.Wrap(err, "get free creature")
		}

		if fc.Claimed() {
			return ErrAlreadyClaimed
		}
		now := s.clock.Now()
		if !now.Before(fc.ExpiresAt) {
			return ErrExpiredFreeCreature
		}
		if now.Before(fc.ProtectedUntil) && claimantID != fc.RollerID {
			return ErrProtectedFreeCreature
		}

		base, ok := catalog.GetCreature(fc.BaseID)
		if !ok {
			return apperrors.Internalf("free creature has unknown base id %d", fc.BaseID)
		}

		if _, err := sc.Tx().GetPlayer(ctx, guildID, claimantID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NotFoundf("player %s not found", claimantID)
			}
			return apperrors.Wrap(err, "get player")
		}

		creature = &entities.Creature{
			GuildID:  guildID,
			ID:       s.uuidGenerator.New(),
			BaseID:   fc.BaseID,
			OwnerID:  claimantID,
			Location: entities.LocationDiscard,
		}

		claimed, err := events.New(guildID, events.TypeFreeCreatureClaimed, now, claimantID, &events.ClaimedPayload{
			ChannelID:  channelID,
			MessageID:  messageID,
			BaseID:     fc.BaseID,
			ClaimantID: claimantID,
			CreatureID: creature.ID,
		})
		if err != nil {
			return apperrors.Wrap(err, "build claimed event")
		}
		if err := sc.AddEvent(ctx, claimed); err != nil {
			return err
		}

		if err := s.payPrice(ctx, sc, claimantID, base.ClaimPrice); err != nil {
			return err
		}

		if err := sc.Tx().CreateCreature(ctx, creature); err != nil {
			return apperrors.Wrap(err, "create claimed creature")
		}

		// Reload: the claim price just changed the player's balances
		player, err := sc.Tx().GetPlayer(ctx, guildID, claimantID)
		if err != nil {
			return apperrors.Wrap(err, "get player")
		}
		player.Discard = append(player.Discard, creature.ID)
		if err := sc.Tx().UpdatePlayer(ctx, player); err != nil {
			return apperrors.Wrap(err, "update player")
		}

		fc.ClaimedBy = claimantID
		if err := sc.Tx().UpdateFreeCreature(ctx, fc); err != nil {
			return apperrors.Wrap(err, "update free creature")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return creature, nil
}
