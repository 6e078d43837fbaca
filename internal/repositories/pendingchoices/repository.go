// Package pendingchoices stores suspended commands awaiting a player answer.
// The store is intentionally outside the game transaction: a pending choice is
// written after the attempt rolled back, and losing one only costs the player
// a re-issued command.
package pendingchoices

import (
	"context"
	"errors"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=mockpendingchoices -source=repository.go

// ErrNotFound is returned when a player has no pending choice
var ErrNotFound = errors.New("pending choice not found")

// Repository stores at most one pending choice per (guild, player). Put
// overwrites any existing entry.
type Repository interface {
	Put(ctx context.Context, choice *entities.PendingChoice) error
	Get(ctx context.Context, guildID, playerID string) (*entities.PendingChoice, error)
	Delete(ctx context.Context, guildID, playerID string) error

	// DeleteGuild drops every pending choice in the guild
	DeleteGuild(ctx context.Context, guildID string) error
}
