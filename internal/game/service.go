// Package game implements the rules engine: nested transaction scopes, the
// resource ledger, the play pipeline with interactive choices, free-creature
// rewards and due-event resolution.
package game

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/thornmere/menagerie-bot-discord/internal/clock"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/notify"
	"github.com/thornmere/menagerie-bot-discord/internal/repositories/pendingchoices"
	"github.com/thornmere/menagerie-bot-discord/internal/shuffle"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
	"github.com/thornmere/menagerie-bot-discord/internal/uuid"
)

// defaultStaleGrace is how long a due event waits on an unresolved parent
// before being resolved anyway
const defaultStaleGrace = 10 * time.Minute

// Service is the rules engine for every guild
type Service struct {
	store    storage.Store
	pending  pendingchoices.Repository
	notifier notify.Notifier

	uuidGenerator uuid.Generator
	shuffler      shuffle.Shuffler
	clock         clock.Clock

	staleGrace time.Duration
}

// ServiceConfig holds the service dependencies
type ServiceConfig struct {
	Store          storage.Store
	PendingChoices pendingchoices.Repository
	Notifier       notify.Notifier

	UUIDGenerator uuid.Generator
	Shuffler      shuffle.Shuffler
	Clock         clock.Clock

	// StaleGrace overrides the default wait on unresolved parents
	StaleGrace time.Duration
}

// NewService creates a new game service
func NewService(cfg *ServiceConfig) *Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Store == nil {
		panic("store is required")
	}

	svc := &Service{
		store:         cfg.Store,
		pending:       cfg.PendingChoices,
		notifier:      cfg.Notifier,
		uuidGenerator: cfg.UUIDGenerator,
		shuffler:      cfg.Shuffler,
		clock:         cfg.Clock,
		staleGrace:    cfg.StaleGrace,
	}

	if svc.pending == nil {
		svc.pending = pendingchoices.NewInMemoryRepository()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.shuffler == nil {
		svc.shuffler = shuffle.NewRandomShuffler()
	}
	if svc.clock == nil {
		svc.clock = clock.Real{}
	}
	if svc.staleGrace == 0 {
		svc.staleGrace = defaultStaleGrace
	}

	return svc
}

// runScope executes fn inside a root transaction scope for the guild. On
// success every buffered event is appended and the transaction committed as
// one unit; on any error the whole transaction rolls back. The resolver is
// notified after a commit that produced events.
func (s *Service) runScope(ctx context.Context, guildID string, fn func(sc *Scope) error) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return apperrors.Wrap(err, "begin transaction")
	}

	sc := newRootScope(tx, guildID)
	if err := fn(sc); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("game: rollback for guild %s: %v", guildID, rbErr)
		}
		return err
	}

	evts := sc.Events()
	sort.Slice(evts, func(i, j int) bool { return evts[i].Seq < evts[j].Seq })

	if len(evts) > 0 {
		if err := tx.AppendEvents(ctx, evts); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("game: rollback for guild %s: %v", guildID, rbErr)
			}
			return apperrors.Wrap(err, "append events")
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(err, "commit transaction")
	}

	if len(evts) > 0 && s.notifier != nil {
		if err := s.notifier.Notify(ctx); err != nil {
			log.Printf("game: notify resolver: %v", err)
		}
	}
	return nil
}

// EventsInWindow returns the guild's events scheduled inside [from, to],
// optionally filtered by type.
func (s *Service) EventsInWindow(ctx context.Context, guildID string, from, to time.Time, types []events.Type) ([]*events.Event, error) {
	var result []*events.Event
	err := s.runScope(ctx, guildID, func(sc *Scope) error {
		evts, err := sc.Tx().EventsInWindow(ctx, guildID, from, to, types)
		if err != nil {
			return apperrors.Wrap(err, "query events")
		}
		result = evts
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GuildIDs lists every guild known to the store
func (s *Service) GuildIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.runScope(ctx, "", func(sc *Scope) error {
		var err error
		ids, err = sc.Tx().ListGuildIDs(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ReportChannel returns the guild's configured report channel, which may be
// empty when reporting is disabled.
func (s *Service) ReportChannel(ctx context.Context, guildID string) (string, error) {
	guild, err := s.GetGuild(ctx, guildID)
	if err != nil {
		return "", err
	}
	return guild.Config.ReportChannelID, nil
}
