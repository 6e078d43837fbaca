package game

import (
	"context"
	"errors"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
)

// DrawResult summarizes one draw operation
type DrawResult struct {
	// Drawn holds the creature instance ids that reached the hand, in order
	Drawn []string
	// Reshuffled is set when the discard pile was folded back into the deck
	Reshuffled bool
	// HandFull is set when hand capacity cut the draw short
	HandFull bool
}

// drawCards draws up to n cards into the player's hand inside an open scope.
// The deck is refilled from a shuffled discard pile when it runs dry. A draw
// cut short by hand capacity is not an error; it just draws fewer cards. One
// summary cards.drawn event is recorded for the whole operation, including a
// zero-card draw against a full hand. Only a draw that finds the deck and
// discard both empty while the hand still has room fails, with ErrEmptyDeck.
func (s *Service) drawCards(ctx context.Context, sc *Scope, playerID string, n int) (*DrawResult, error) {
	child := sc.child()

	guild, err := child.Tx().GetGuild(ctx, child.GuildID())
	if err != nil {
		return nil, apperrors.Wrap(err, "get guild")
	}

	player, err := child.Tx().GetPlayer(ctx, child.GuildID(), playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NotFoundf("player %s not found", playerID)
		}
		return nil, apperrors.Wrap(err, "get player")
	}

	result := &DrawResult{}

	for i := 0; i < n; i++ {
		if len(player.Hand) >= guild.Config.HandCapacity {
			result.HandFull = true
			break
		}

		if len(player.Deck) == 0 {
			if len(player.Discard) == 0 {
				if len(result.Drawn) == 0 {
					return nil, ErrEmptyDeck
				}
				break
			}
			player.Deck = player.Discard
			player.Discard = nil
			s.shuffler.Shuffle(len(player.Deck), func(a, b int) {
				player.Deck[a], player.Deck[b] = player.Deck[b], player.Deck[a]
			})
			result.Reshuffled = true
			for _, id := range player.Deck {
				if err := s.moveCreature(ctx, child, id, entities.LocationDeck); err != nil {
					return nil, err
				}
			}
		}

		id := player.Deck[0]
		player.Deck = player.Deck[1:]
		player.Hand = append(player.Hand, id)
		if err := s.moveCreature(ctx, child, id, entities.LocationHand); err != nil {
			return nil, err
		}
		result.Drawn = append(result.Drawn, id)
	}

	if err := child.Tx().UpdatePlayer(ctx, player); err != nil {
		return nil, apperrors.Wrap(err, "update player")
	}

	e, err := events.New(child.GuildID(), events.TypeCardsDrawn, s.clock.Now(), playerID, &events.DrawnPayload{
		Count:       len(result.Drawn),
		CreatureIDs: result.Drawn,
		Reshuffled:  result.Reshuffled,
		HandFull:    result.HandFull,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "build drawn event")
	}
	if err := child.AddEvent(ctx, e); err != nil {
		return nil, err
	}
	return result, nil
}

// moveCreature updates a creature instance's location
func (s *Service) moveCreature(ctx context.Context, sc *Scope, creatureID string, loc entities.CreatureLocation) error {
	creature, err := sc.Tx().GetCreature(ctx, sc.GuildID(), creatureID)
	if err != nil {
		return apperrors.Wrap(err, "get creature")
	}
	if creature.Location == loc {
		return nil
	}
	creature.Location = loc
	if err := sc.Tx().UpdateCreature(ctx, creature); err != nil {
		return apperrors.Wrap(err, "update creature")
	}
	return nil
}

// DrawCards draws up to n cards as its own transaction
func (s *Service) DrawCards(ctx context.Context, guildID, playerID string, n int) (*DrawResult, error) {
	var result *DrawResult
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		var err error
		result, err = s.drawCards(ctx, sc, playerID, n)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetPlayer returns a player's full state
func (s *Service) GetPlayer(ctx context.Context, guildID, playerID string) (*entities.Player, error) {
	var player *entities.Player
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		var err error
		player, err = sc.Tx().GetPlayer(ctx, guildID, playerID)
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFoundf("player %s not found", playerID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// GetHand returns the creature instances in the player's hand, in hand order
func (s *Service) GetHand(ctx context.Context, guildID, playerID string) ([]*entities.Creature, error) {
	var hand []*entities.Creature
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		player, err := sc.Tx().GetPlayer(ctx, guildID, playerID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NotFoundf("player %s not found", playerID)
			}
			return apperrors.Wrap(err, "get player")
		}
		for _, id := range player.Hand {
			creature, err := sc.Tx().GetCreature(ctx, guildID, id)
			if err != nil {
				return apperrors.Wrap(err, "get creature")
			}
			hand = append(hand, creature)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hand, nil
}

// ListRegions returns the guild's regions
func (s *Service) ListRegions(ctx context.Context, guildID string) ([]*entities.Region, error) {
	var regions []*entities.Region
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		var err error
		regions, err = sc.Tx().ListRegions(ctx, guildID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return regions, nil
}
