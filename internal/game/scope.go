package game

import (
	"context"

	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/storage"
)

// Scope is one level of a nested transaction. The root scope owns the
// underlying storage transaction; child scopes share it and only contribute
// event buffering. On the root's commit every buffered event from the whole
// tree is persisted in one append before COMMIT, so either the entire command
// lands or none of it does.
type Scope struct {
	root     *Scope
	parent   *Scope
	children []*Scope

	tx      storage.Tx
	guildID string

	// events directly buffered in this scope; children keep their own
	events []*events.Event

	// last is the current causal parent candidate for this scope. AddEvent
	// walks self-then-ancestors for the nearest non-nil last, which is how
	// sub-events of a high-level action end up parented to that action's
	// event without the ability code tracking it.
	last *events.Event

	// root-only: next sequence number, 0 until the first AddEvent
	nextSeq int64
}

func newRootScope(tx storage.Tx, guildID string) *Scope {
	sc := &Scope{tx: tx, guildID: guildID}
	sc.root = sc
	return sc
}

// child opens a nested scope sharing the root's transaction
func (s *Scope) child() *Scope {
	c := &Scope{
		root:    s.root,
		parent:  s,
		tx:      s.root.tx,
		guildID: s.root.guildID,
	}
	s.children = append(s.children, c)
	return c
}

// Tx exposes the shared storage transaction
func (s *Scope) Tx() storage.Tx {
	return s.root.tx
}

// GuildID is the guild this transaction operates on
func (s *Scope) GuildID() string {
	return s.root.guildID
}

// AddEvent buffers an event, assigning its guild-wide sequence number and,
// when the event has no explicit parent, its causal parent from the enclosing
// scope chain. Sequence numbers account for events already buffered but not
// yet persisted.
func (s *Scope) AddEvent(ctx context.Context, e *events.Event) error {
	root := s.root
	if root.nextSeq == 0 {
		max, err := root.tx.MaxEventSeq(ctx, root.guildID)
		if err != nil {
			return apperrors.Wrap(err, "read max event sequence")
		}
		root.nextSeq = max + 1
	}
	e.GuildID = root.guildID
	e.Seq = root.nextSeq
	root.nextSeq++

	if e.ParentSeq == 0 {
		for sc := s; sc != nil; sc = sc.parent {
			if sc.last != nil {
				e.ParentSeq = sc.last.Seq
				break
			}
		}
	}

	s.events = append(s.events, e)
	s.last = e
	return nil
}

// SetCausalParent pins the scope's causal parent to an existing event, so
// events added while resolving it are recorded as its children.
func (s *Scope) SetCausalParent(e *events.Event) {
	s.last = e
}

// Events returns every event buffered in this scope and its children
func (s *Scope) Events() []*events.Event {
	out := append([]*events.Event(nil), s.events...)
	for _, c := range s.children {
		out = append(out, c.Events()...)
	}
	return out
}
