package game

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/thornmere/menagerie-bot-discord/internal/catalog"
	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
)

// Play command names, persisted in pending choices so a suspended command can
// be re-invoked after a restart
const (
	CommandPlayRegion   = "play_region"
	CommandPlayCampaign = "play_campaign"
)

// playOrderCost is the flat order cost of any play action
var playOrderCost = []entities.ResourceAmount{
	{Resource: entities.ResourceOrder, Amount: 1},
}

// PlayRegionInput describes a quest attempt
type PlayRegionInput struct {
	GuildID    string
	PlayerID   string
	CreatureID string
	RegionID   string

	// Answers are pre-collected choice answers, consumed FIFO on replay
	Answers []int
}

// PlayRegionResult reports a successful quest
type PlayRegionResult struct {
	Creature      *entities.Creature
	RechargesAt   time.Time
	OccupiedUntil time.Time
}

// PlayCampaignInput describes a campaign commitment
type PlayCampaignInput struct {
	GuildID    string
	PlayerID   string
	CreatureID string

	Answers []int
}

// PlayCampaignResult reports a successful campaign play
type PlayCampaignResult struct {
	Creature *entities.Creature
	Strength int
	Total    int
}

// PlayCreatureToRegion sends a hand creature on a quest. The whole pipeline
// runs in one transaction: validation, the creature.played event, the order
// cost, the creature and region quest prices, zone moves with their recharge
// timers, then region and creature effects. A missing choice answer rolls
// everything back and suspends the command.
func (s *Service) PlayCreatureToRegion(ctx context.Context, input *PlayRegionInput) (*PlayRegionResult, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input is required")
	}

	result := &PlayRegionResult{}
	queue := append([]int(nil), input.Answers...)

	err := s.runScope(ctx, input.GuildID, func(sc *Scope) error {
		return s.playToRegion(ctx, sc, input, result, &queue)
	})
	if err != nil {
		if needs, ok := AsNeedsChoice(err); ok {
			s.suspend(ctx, input.GuildID, input.PlayerID, entities.PendingCommand{
				Name:       CommandPlayRegion,
				CreatureID: input.CreatureID,
				RegionID:   input.RegionID,
			}, input.Answers, needs.Choice)
		}
		return nil, err
	}
	return result, nil
}

func (s *Service) playToRegion(ctx context.Context, sc *Scope, input *PlayRegionInput, result *PlayRegionResult, queue *[]int) error {
	now := s.clock.Now()

	guild, err := sc.Tx().GetGuild(ctx, sc.GuildID())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFoundf("guild %s not found", sc.GuildID())
		}
		return apperrors.Wrap(err, "get guild")
	}

	creature, base, err := s.handCreature(ctx, sc, input.PlayerID, input.CreatureID)
	if err != nil {
		return err
	}

	region, err := sc.Tx().GetRegion(ctx, sc.GuildID(), input.RegionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFoundf("region %s not found", input.RegionID)
		}
		return apperrors.Wrap(err, "get region")
	}
	regionBase, ok := catalog.GetRegion(region.BaseID)
	if !ok {
		return apperrors.Internalf("region %s has unknown base id %d", region.ID, region.BaseID)
	}

	if region.Occupied() {
		return ErrRegionOccupied
	}
	if !regionBase.AcceptsCategory(base.Category) {
		return ErrCreatureCannotQuestHere
	}
	if base.QuestPrice == nil {
		return ErrCreatureCannotQuest
	}

	// The play event leads; everything below is recorded as its child
	played, err := events.New(sc.GuildID(), events.TypeCreaturePlayed, now, input.PlayerID, &events.PlayedPayload{
		CreatureID: creature.ID,
		BaseID:     creature.BaseID,
		RegionID:   region.ID,
	})
	if err != nil {
		return apperrors.Wrap(err, "build played event")
	}
	if err := sc.AddEvent(ctx, played); err != nil {
		return err
	}

	if err := s.payPrice(ctx, sc, input.PlayerID, playOrderCost); err != nil {
		return err
	}
	if err := s.payPrice(ctx, sc, input.PlayerID, base.QuestPrice()); err != nil {
		return err
	}
	if regionBase.QuestPrice != nil {
		if err := s.payPrice(ctx, sc, input.PlayerID, regionBase.QuestPrice()); err != nil {
			return err
		}
	}

	rechargesAt := now.Add(guild.Config.CreatureRecharge)
	if err := s.moveHandToPlayed(ctx, sc, input.PlayerID, creature, rechargesAt); err != nil {
		return err
	}

	occupiedUntil := now.Add(guild.Config.RegionRecharge)
	if err := s.occupyRegion(ctx, sc, region, creature.ID, occupiedUntil); err != nil {
		return err
	}

	ec := s.newEffectContext(sc, input.PlayerID, queue)
	if regionBase.QuestEffect != nil {
		if err := regionBase.QuestEffect(ctx, ec); err != nil {
			return err
		}
	}
	if base.QuestEffect != nil {
		if err := base.QuestEffect(ctx, ec); err != nil {
			return err
		}
	}

	creature.Location = entities.LocationPlayed
	result.Creature = creature
	result.RechargesAt = rechargesAt
	result.OccupiedUntil = occupiedUntil
	return nil
}

// PlayCreatureToCampaign commits a hand creature to the campaign track. The
// campaign effect runs after prices and determines the recorded strength.
func (s *Service) PlayCreatureToCampaign(ctx context.Context, input *PlayCampaignInput) (*PlayCampaignResult, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input is required")
	}

	result := &PlayCampaignResult{}
	queue := append([]int(nil), input.Answers...)

	err := s.runScope(ctx, input.GuildID, func(sc *Scope) error {
		return s.playToCampaign(ctx, sc, input, result, &queue)
	})
	if err != nil {
		if needs, ok := AsNeedsChoice(err); ok {
			s.suspend(ctx, input.GuildID, input.PlayerID, entities.PendingCommand{
				Name:       CommandPlayCampaign,
				CreatureID: input.CreatureID,
			}, input.Answers, needs.Choice)
		}
		return nil, err
	}
	return result, nil
}

func (s *Service) playToCampaign(ctx context.Context, sc *Scope, input *PlayCampaignInput, result *PlayCampaignResult, queue *[]int) error {
	now := s.clock.Now()

	creature, base, err := s.handCreature(ctx, sc, input.PlayerID, input.CreatureID)
	if err != nil {
		return err
	}
	if base.CampaignPrice == nil {
		return ErrCreatureCannotCampaign
	}

	payload := &events.CampaignPlayedPayload{
		CreatureID: creature.ID,
		BaseID:     creature.BaseID,
	}
	played, err := events.New(sc.GuildID(), events.TypeCampaignPlayed, now, input.PlayerID, payload)
	if err != nil {
		return apperrors.Wrap(err, "build campaign event")
	}
	if err := sc.AddEvent(ctx, played); err != nil {
		return err
	}

	if err := s.payPrice(ctx, sc, input.PlayerID, playOrderCost); err != nil {
		return err
	}
	if err := s.payPrice(ctx, sc, input.PlayerID, base.CampaignPrice()); err != nil {
		return err
	}

	strength := 0
	if base.CampaignEffect != nil {
		ec := s.newEffectContext(sc, input.PlayerID, queue)
		strength, err = base.CampaignEffect(ctx, ec)
		if err != nil {
			return err
		}
	}

	// The strength is only known after the effect ran; finalize the payload
	// before the event is persisted.
	payload.Strength = strength
	played.Payload, err = json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, "finalize campaign payload")
	}

	child := sc.child()
	player, err := child.Tx().GetPlayer(ctx, child.GuildID(), input.PlayerID)
	if err != nil {
		return apperrors.Wrap(err, "get player")
	}
	if !player.RemoveFromHand(creature.ID) {
		return ErrCreatureNotInHand
	}
	player.Campaign = append(player.Campaign, entities.CampaignEntry{
		CreatureID: creature.ID,
		Strength:   strength,
	})
	if err := child.Tx().UpdatePlayer(ctx, player); err != nil {
		return apperrors.Wrap(err, "update player")
	}

	creature.Location = entities.LocationCampaign
	if err := child.Tx().UpdateCreature(ctx, creature); err != nil {
		return apperrors.Wrap(err, "update creature")
	}

	result.Creature = creature
	result.Strength = strength
	result.Total = player.CampaignStrength()
	return nil
}

// handCreature loads a creature, verifying ownership and hand membership
func (s *Service) handCreature(ctx context.Context, sc *Scope, playerID, creatureID string) (*entities.Creature, *catalog.Creature, error) {
	player, err := sc.Tx().GetPlayer(ctx, sc.GuildID(), playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, apperrors.NotFoundf("player %s not found", playerID)
		}
		return nil, nil, apperrors.Wrap(err, "get player")
	}

	creature, err := sc.Tx().GetCreature(ctx, sc.GuildID(), creatureID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, apperrors.NotFoundf("creature %s not found", creatureID)
		}
		return nil, nil, apperrors.Wrap(err, "get creature")
	}
	if creature.OwnerID != playerID || !player.InHand(creatureID) {
		return nil, nil, ErrCreatureNotInHand
	}

	base, ok := catalog.GetCreature(creature.BaseID)
	if !ok {
		return nil, nil, apperrors.Internalf("creature %s has unknown base id %d", creatureID, creature.BaseID)
	}
	return creature, base, nil
}

// moveHandToPlayed moves the creature into the played zone and arms its
// one-shot recharge timer
func (s *Service) moveHandToPlayed(ctx context.Context, sc *Scope, playerID string, creature *entities.Creature, rechargesAt time.Time) error {
	child := sc.child()

	player, err := child.Tx().GetPlayer(ctx, child.GuildID(), playerID)
	if err != nil {
		return apperrors.Wrap(err, "get player")
	}
	if !player.RemoveFromHand(creature.ID) {
		return ErrCreatureNotInHand
	}
	player.Played = append(player.Played, entities.PlayedCreature{
		CreatureID:  creature.ID,
		RechargesAt: rechargesAt,
	})
	if err := child.Tx().UpdatePlayer(ctx, player); err != nil {
		return apperrors.Wrap(err, "update player")
	}

	moved := *creature
	moved.Location = entities.LocationPlayed
	if err := child.Tx().UpdateCreature(ctx, &moved); err != nil {
		return apperrors.Wrap(err, "update creature")
	}

	e, err := events.New(child.GuildID(), events.TypeCreatureRecharge, rechargesAt, playerID, &events.CreatureRechargePayload{
		CreatureID: creature.ID,
	})
	if err != nil {
		return apperrors.Wrap(err, "build creature recharge event")
	}
	return child.AddEvent(ctx, e)
}

// occupyRegion marks the region held and arms its one-shot recharge timer
func (s *Service) occupyRegion(ctx context.Context, sc *Scope, region *entities.Region, creatureID string, until time.Time) error {
	child := sc.child()

	region.OccupiedBy = creatureID
	region.OccupiedUntil = until
	if err := child.Tx().UpdateRegion(ctx, region); err != nil {
		return apperrors.Wrap(err, "update region")
	}

	e, err := events.New(child.GuildID(), events.TypeRegionRecharge, until, "", &events.RegionRechargePayload{
		RegionID: region.ID,
	})
	if err != nil {
		return apperrors.Wrap(err, "build region recharge event")
	}
	return child.AddEvent(ctx, e)
}
