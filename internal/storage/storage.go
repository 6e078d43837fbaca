// Package storage defines the transactional store the game engine runs on.
// All cross-entity invariants are enforced by reading inside an open Tx and
// relying on the implementation's isolation; no game state is cached between
// operations.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when creating an entity that already exists
var ErrAlreadyExists = errors.New("already exists")

// Store opens transactions against the underlying database
type Store interface {
	Begin(ctx context.Context) (Tx, error)
	Close() error
}

// Tx is one storage transaction. Exactly one of Commit or Rollback must be
// called; afterwards the Tx is spent.
type Tx interface {
	Commit() error
	Rollback() error

	// Guilds
	CreateGuild(ctx context.Context, guild *entities.Guild) error
	GetGuild(ctx context.Context, guildID string) (*entities.Guild, error)
	UpdateGuildConfig(ctx context.Context, guildID string, cfg entities.GuildConfig) error
	// DeleteGuild cascades to players, creatures, regions, free creatures and
	// events owned by the guild.
	DeleteGuild(ctx context.Context, guildID string) error
	ListGuildIDs(ctx context.Context) ([]string, error)

	// Players
	CreatePlayer(ctx context.Context, player *entities.Player) error
	GetPlayer(ctx context.Context, guildID, playerID string) (*entities.Player, error)
	UpdatePlayer(ctx context.Context, player *entities.Player) error
	DeletePlayer(ctx context.Context, guildID, playerID string) error

	// Creatures
	CreateCreature(ctx context.Context, creature *entities.Creature) error
	GetCreature(ctx context.Context, guildID, creatureID string) (*entities.Creature, error)
	UpdateCreature(ctx context.Context, creature *entities.Creature) error
	DeleteCreaturesByOwner(ctx context.Context, guildID, ownerID string) error

	// Regions
	CreateRegion(ctx context.Context, region *entities.Region) error
	GetRegion(ctx context.Context, guildID, regionID string) (*entities.Region, error)
	UpdateRegion(ctx context.Context, region *entities.Region) error
	ListRegions(ctx context.Context, guildID string) ([]*entities.Region, error)

	// Free creatures
	PutFreeCreature(ctx context.Context, fc *entities.FreeCreature) error
	GetFreeCreature(ctx context.Context, guildID, channelID, messageID string) (*entities.FreeCreature, error)
	UpdateFreeCreature(ctx context.Context, fc *entities.FreeCreature) error
	DeleteFreeCreature(ctx context.Context, guildID, channelID, messageID string) error

	// Events
	AppendEvents(ctx context.Context, evts []*events.Event) error
	MaxEventSeq(ctx context.Context, guildID string) (int64, error)
	UnresolvedEvents(ctx context.Context, guildID string) ([]*events.Event, error)
	MarkEventResolved(ctx context.Context, guildID string, seq int64) error
	EventsInWindow(ctx context.Context, guildID string, from, to time.Time, types []events.Type) ([]*events.Event, error)
}
