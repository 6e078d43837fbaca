package game

import (
	"context"
	"errors"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
)

// fulfillsPrice reports whether the player can afford the merged price without
// mutating anything
func (s *Service) fulfillsPrice(ctx context.Context, sc *Scope, playerID string, price []entities.ResourceAmount) (bool, error) {
	merged := entities.MergeAmounts(price)
	if len(merged) == 0 {
		return true, nil
	}

	player, err := sc.Tx().GetPlayer(ctx, sc.GuildID(), playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, apperrors.NotFoundf("player %s not found", playerID)
		}
		return false, apperrors.Wrap(err, "get player")
	}

	for _, entry := range merged {
		if player.Resource(entry.Resource) < entry.Amount {
			return false, nil
		}
	}
	return true, nil
}

// payPrice deducts a merged price from the player and records one
// resource.paid event. An empty price is a no-op with no event.
func (s *Service) payPrice(ctx context.Context, sc *Scope, playerID string, price []entities.ResourceAmount) error {
	merged := entities.MergeAmounts(price)
	if len(merged) == 0 {
		return nil
	}

	child := sc.child()

	player, err := child.Tx().GetPlayer(ctx, child.GuildID(), playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFoundf("player %s not found", playerID)
		}
		return apperrors.Wrap(err, "get player")
	}

	for _, entry := range merged {
		if player.Resource(entry.Resource) < entry.Amount {
			return ErrInsufficientResources
		}
	}
	for _, entry := range merged {
		player.AddResource(entry.Resource, -entry.Amount)
	}

	if err := child.Tx().UpdatePlayer(ctx, player); err != nil {
		return apperrors.Wrap(err, "update player")
	}

	e, err := events.New(child.GuildID(), events.TypeResourcePaid, s.clock.Now(), playerID, &events.PaidPayload{Amounts: merged})
	if err != nil {
		return apperrors.Wrap(err, "build paid event")
	}
	return child.AddEvent(ctx, e)
}

// gain grants a merged gain list to the player and records one
// resource.gained event. An empty gain is a no-op with no event.
func (s *Service) gain(ctx context.Context, sc *Scope, playerID string, gains []entities.ResourceAmount) error {
	merged := entities.MergeAmounts(gains)
	if len(merged) == 0 {
		return nil
	}

	child := sc.child()

	player, err := child.Tx().GetPlayer(ctx, child.GuildID(), playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFoundf("player %s not found", playerID)
		}
		return apperrors.Wrap(err, "get player")
	}

	for _, entry := range merged {
		player.AddResource(entry.Resource, entry.Amount)
	}

	if err := child.Tx().UpdatePlayer(ctx, player); err != nil {
		return apperrors.Wrap(err, "update player")
	}

	e, err := events.New(child.GuildID(), events.TypeResourceGained, s.clock.Now(), playerID, &events.GainedPayload{Amounts: merged})
	if err != nil {
		return apperrors.Wrap(err, "build gained event")
	}
	return child.AddEvent(ctx, e)
}

// GetResources returns the player's resource balances
func (s *Service) GetResources(ctx context.Context, guildID, playerID string) (map[entities.Resource]int, error) {
	var balances map[entities.Resource]int
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		player, err := sc.Tx().GetPlayer(ctx, guildID, playerID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NotFoundf("player %s not found", playerID)
			}
			return apperrors.Wrap(err, "get player")
		}
		balances = player.Resources
		if balances == nil {
			balances = make(map[entities.Resource]int)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// Has reports whether the player holds at least amount of the resource
func (s *Service) Has(ctx context.Context, guildID, playerID string, res entities.Resource, amount int) (bool, error) {
	var ok bool
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		var err error
		ok, err = s.fulfillsPrice(ctx, sc, playerID, []entities.ResourceAmount{{Resource: res, Amount: amount}})
		return err
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// FulfillsPrice reports whether the player can afford the whole price at once
func (s *Service) FulfillsPrice(ctx context.Context, guildID, playerID string, price []entities.ResourceAmount) (bool, error) {
	var ok bool
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		var err error
		ok, err = s.fulfillsPrice(ctx, sc, playerID, price)
		return err
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Give grants resources to a player as its own transaction
func (s *Service) Give(ctx context.Context, guildID, playerID string, gains []entities.ResourceAmount) error {
	return s.runScope(ctx, guildID, func(sc *Scope) error {
		return s.gain(ctx, sc, playerID, gains)
	})
}

// Remove deducts resources from a player as its own transaction. It fails
// with ErrInsufficientResources rather than driving a balance negative.
func (s *Service) Remove(ctx context.Context, guildID, playerID string, price []entities.ResourceAmount) error {
	return s.runScope(ctx, guildID, func(sc *Scope) error {
		return s.payPrice(ctx, sc, playerID, price)
	})
}
