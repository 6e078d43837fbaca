package game

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/thornmere/menagerie-bot-discord/internal/catalog"
	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/repositories/pendingchoices"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
)

// startingHandSize is how many cards a new player draws on joining
const startingHandSize = 3

var startingResources = []entities.ResourceAmount{
	{Resource: entities.ResourceOrder, Amount: 3},
	{Resource: entities.ResourceMagic, Amount: 2},
}

// JoinGuild enrolls a player: starting resources, a shuffled starting deck, an
// opening hand and the three perpetual recharge timers. The timers and the
// opening draw are all parented to the player.joined event.
func (s *Service) JoinGuild(ctx context.Context, guildID, playerID string) (*entities.Player, error) {
	var player *entities.Player

	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		guild, err := sc.Tx().GetGuild(ctx, guildID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NotFoundf("guild %s not found", guildID)
			}
			return apperrors.Wrap(err, "get guild")
		}

		now := s.clock.Now()

		player = &entities.Player{
			GuildID:   guildID,
			ID:        playerID,
			Resources: make(map[entities.Resource]int),
		}
		for _, entry := range startingResources {
			player.AddResource(entry.Resource, entry.Amount)
		}

		for _, baseID := range catalog.StartingDeck() {
			creature := &entities.Creature{
				GuildID:  guildID,
				ID:       s.uuidGenerator.New(),
				BaseID:   baseID,
				OwnerID:  playerID,
				Location: entities.LocationDeck,
			}
			if err := sc.Tx().CreateCreature(ctx, creature); err != nil {
				return apperrors.Wrap(err, "create starting creature")
			}
			player.Deck = append(player.Deck, creature.ID)
		}
		s.shuffler.Shuffle(len(player.Deck), func(a, b int) {
			player.Deck[a], player.Deck[b] = player.Deck[b], player.Deck[a]
		})

		if err := sc.Tx().CreatePlayer(ctx, player); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				return apperrors.AlreadyExistsf("player %s already joined guild %s", playerID, guildID)
			}
			return apperrors.Wrap(err, "create player")
		}

		joined, err := events.New(guildID, events.TypePlayerJoined, now, playerID, nil)
		if err != nil {
			return apperrors.Wrap(err, "build joined event")
		}
		if err := sc.AddEvent(ctx, joined); err != nil {
			return err
		}

		// Arm the perpetual timers as siblings under the joined event
		timers := []struct {
			typ      events.Type
			interval time.Duration
		}{
			{events.TypeOrderRecharge, guild.Config.OrderRechargeInterval},
			{events.TypeMagicRecharge, guild.Config.MagicRechargeInterval},
			{events.TypeCardRecharge, guild.Config.CardRechargeInterval},
		}
		timerScope := sc.child()
		for _, timer := range timers {
			e, err := events.New(guildID, timer.typ, now.Add(timer.interval), playerID, nil)
			if err != nil {
				return apperrors.Wrap(err, "build timer event")
			}
			e.ParentSeq = joined.Seq
			if err := timerScope.AddEvent(ctx, e); err != nil {
				return err
			}
		}

		if _, err := s.drawCards(ctx, sc, playerID, startingHandSize); err != nil {
			return err
		}

		// Zones changed during the opening draw
		player, err = sc.Tx().GetPlayer(ctx, guildID, playerID)
		if err != nil {
			return apperrors.Wrap(err, "reload player")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// LeaveGuild removes a player: regions their creatures occupied are freed,
// their creature instances are deleted and their timers end when the resolver
// next sees them. A player.left event closes the story.
func (s *Service) LeaveGuild(ctx context.Context, guildID, playerID string) error {
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		if _, err := sc.Tx().GetPlayer(ctx, guildID, playerID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NotFoundf("player %s not found", playerID)
			}
			return apperrors.Wrap(err, "get player")
		}

		regions, err := sc.Tx().ListRegions(ctx, guildID)
		if err != nil {
			return apperrors.Wrap(err, "list regions")
		}
		for _, region := range regions {
			if !region.Occupied() {
				continue
			}
			creature, err := sc.Tx().GetCreature(ctx, guildID, region.OccupiedBy)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					continue
				}
				return apperrors.Wrap(err, "get occupying creature")
			}
			if creature.OwnerID != playerID {
				continue
			}
			region.OccupiedBy = ""
			region.OccupiedUntil = time.Time{}
			if err := sc.Tx().UpdateRegion(ctx, region); err != nil {
				return apperrors.Wrap(err, "free region")
			}
		}

		if err := sc.Tx().DeletePlayer(ctx, guildID, playerID); err != nil {
			return apperrors.Wrap(err, "delete player")
		}
		if err := sc.Tx().DeleteCreaturesByOwner(ctx, guildID, playerID); err != nil {
			return apperrors.Wrap(err, "delete creatures")
		}

		// Retire the player's perpetual timers now. Rejoining under the same id
		// arms fresh chains; a stale unresolved timer would revive alongside
		// them and double every grant.
		unresolved, err := sc.Tx().UnresolvedEvents(ctx, guildID)
		if err != nil {
			return apperrors.Wrap(err, "list unresolved events")
		}
		for _, e := range unresolved {
			if e.PlayerID != playerID || !e.Type.Recurring() {
				continue
			}
			if err := sc.Tx().MarkEventResolved(ctx, guildID, e.Seq); err != nil {
				return apperrors.Wrap(err, "retire timer event")
			}
		}

		left, err := events.New(guildID, events.TypePlayerLeft, s.clock.Now(), playerID, nil)
		if err != nil {
			return apperrors.Wrap(err, "build left event")
		}
		return sc.AddEvent(ctx, left)
	})
	if err != nil {
		return err
	}

	if err := s.pending.Delete(ctx, guildID, playerID); err != nil && !errors.Is(err, pendingchoices.ErrNotFound) {
		log.Printf("game: clear pending choice for %s/%s: %v", guildID, playerID, err)
	}
	return nil
}
