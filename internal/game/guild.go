package game

import (
	"context"
	"errors"
	"log"

	"github.com/thornmere/menagerie-bot-discord/internal/catalog"
	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
)

// CreateGuild provisions a new guild with default config and the catalog's
// starting regions
func (s *Service) CreateGuild(ctx context.Context, guildID string) (*entities.Guild, error) {
	guild := &entities.Guild{
		ID:        guildID,
		Config:    entities.DefaultGuildConfig(),
		CreatedAt: s.clock.Now(),
	}

	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		if err := sc.Tx().CreateGuild(ctx, guild); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				return apperrors.AlreadyExistsf("guild %s already exists", guildID)
			}
			return apperrors.Wrap(err, "create guild")
		}

		for _, baseID := range catalog.StartingRegions() {
			region := &entities.Region{
				GuildID: guildID,
				ID:      s.uuidGenerator.New(),
				BaseID:  baseID,
			}
			if err := sc.Tx().CreateRegion(ctx, region); err != nil {
				return apperrors.Wrap(err, "seed region")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return guild, nil
}

// GetGuild returns a guild with its config
func (s *Service) GetGuild(ctx context.Context, guildID string) (*entities.Guild, error) {
	var guild *entities.Guild
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		var err error
		guild, err = sc.Tx().GetGuild(ctx, guildID)
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFoundf("guild %s not found", guildID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return guild, nil
}

// UpdateGuildConfig replaces the guild's config
func (s *Service) UpdateGuildConfig(ctx context.Context, guildID string, cfg entities.GuildConfig) error {
	return s.runScope(ctx, guildID, func(sc *Scope) error {
		if err := sc.Tx().UpdateGuildConfig(ctx, guildID, cfg); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NotFoundf("guild %s not found", guildID)
			}
			return apperrors.Wrap(err, "update guild config")
		}
		return nil
	})
}

// DeleteGuild removes the guild and everything it owns, including its event
// journal and any pending choices
func (s *Service) DeleteGuild(ctx context.Context, guildID string) error {
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		if err := sc.Tx().DeleteGuild(ctx, guildID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NotFoundf("guild %s not found", guildID)
			}
			return apperrors.Wrap(err, "delete guild")
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Pending choices live outside the game transaction; a failure here only
	// leaves entries that expire on their own.
	if err := s.pending.DeleteGuild(ctx, guildID); err != nil {
		log.Printf("game: clear pending choices for guild %s: %v", guildID, err)
	}
	return nil
}
