// Package resolver runs the background loop that turns due timer events into
// state changes. One loop serves every guild; guilds are isolated so one
// failing guild never blocks the rest.
package resolver

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/thornmere/menagerie-bot-discord/internal/clock"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/notify"
)

const (
	defaultInterval = 30 * time.Second
	defaultMaxDepth = 3
)

// Game is the slice of the game service the loop needs
type Game interface {
	GuildIDs(ctx context.Context) ([]string, error)
	ResolveDueEvents(ctx context.Context, guildID string, now time.Time) ([]*events.Event, error)
}

// Reporter receives the resolved-event forest of each guild pass. Reporting
// is best effort; implementations log their own failures.
type Reporter interface {
	ReportResolved(ctx context.Context, guildID string, forest []*Tree)
}

// Config holds the loop dependencies
type Config struct {
	Game     Game
	Reporter Reporter
	Waker    notify.Waker
	Clock    clock.Clock

	// Interval is the fallback tick when no wake-up arrives
	Interval time.Duration

	// MaxDepth bounds the reported forest depth
	MaxDepth int
}

// Loop drives periodic resolution passes
type Loop struct {
	game     Game
	reporter Reporter
	waker    notify.Waker
	clock    clock.Clock
	interval time.Duration
	maxDepth int

	// passMu makes passes non-reentrant; an overlapping trigger is dropped
	// rather than queued
	passMu sync.Mutex
}

// New creates a resolver loop
func New(cfg *Config) *Loop {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Game == nil {
		panic("game is required")
	}

	l := &Loop{
		game:     cfg.Game,
		reporter: cfg.Reporter,
		waker:    cfg.Waker,
		clock:    cfg.Clock,
		interval: cfg.Interval,
		maxDepth: cfg.MaxDepth,
	}
	if l.clock == nil {
		l.clock = clock.Real{}
	}
	if l.interval == 0 {
		l.interval = defaultInterval
	}
	if l.maxDepth == 0 {
		l.maxDepth = defaultMaxDepth
	}
	return l
}

// Run blocks until ctx is done, triggering a pass on every tick and on every
// wake-up from committed events.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	var wake <-chan struct{}
	if l.waker != nil {
		wake = l.waker.Wake()
	}

	// Catch up on anything that came due while we were down
	l.Pass(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Pass(ctx)
		case <-wake:
			l.Pass(ctx)
		}
	}
}

// Pass resolves due events across all guilds once. If a pass is already in
// flight the trigger is dropped; the running pass or the next tick covers it.
func (l *Loop) Pass(ctx context.Context) {
	if !l.passMu.TryLock() {
		return
	}
	defer l.passMu.Unlock()

	guildIDs, err := l.game.GuildIDs(ctx)
	if err != nil {
		log.Printf("resolver: list guilds: %v", err)
		return
	}

	now := l.clock.Now()
	for _, guildID := range guildIDs {
		resolved, err := l.game.ResolveDueEvents(ctx, guildID, now)
		if err != nil {
			log.Printf("resolver: guild %s: %v", guildID, err)
			continue
		}
		if len(resolved) == 0 || l.reporter == nil {
			continue
		}
		forest := BuildForest(resolved, l.maxDepth)
		if len(forest) > 0 {
			l.reporter.ReportResolved(ctx, guildID, forest)
		}
	}
}
