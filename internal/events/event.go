// Package events defines the append-only, causally-linked event journal
// entries the engine records and the resolver loop consumes.
package events

import (
	"strings"
	"time"
)

// Type identifies the kind of a game event.
type Type string

// Play events.
const (
	// TypeCreaturePlayed records a creature sent to a region on a quest.
	TypeCreaturePlayed Type = "creature.played"
	// TypeCampaignPlayed records a creature committed to the campaign track.
	TypeCampaignPlayed Type = "campaign.played"
)

// Ledger events.
const (
	// TypeResourcePaid records resources deducted from a player.
	TypeResourcePaid Type = "resource.paid"
	// TypeResourceGained records resources granted to a player.
	TypeResourceGained Type = "resource.gained"
	// TypeCardsDrawn summarizes one draw operation, including empty draws.
	TypeCardsDrawn Type = "cards.drawn"
)

// Recharge events. The order/magic/card recharges are the perpetual per-player
// timers; resolving one re-arms the next. Creature and region recharges are
// one-shot timers armed when a creature is played.
const (
	TypeOrderRecharge    Type = "recharge.order"
	TypeMagicRecharge    Type = "recharge.magic"
	TypeCardRecharge     Type = "recharge.card"
	TypeCreatureRecharge Type = "recharge.creature"
	TypeRegionRecharge   Type = "recharge.region"
)

// Membership events.
const (
	TypePlayerJoined Type = "player.joined"
	TypePlayerLeft   Type = "player.left"
)

// Free-creature events. The unprotected/expired timers are raised once when
// the reward is rolled and are never re-armed.
const (
	TypeFreeCreatureRolled      Type = "freecreature.rolled"
	TypeFreeCreatureUnprotected Type = "freecreature.unprotected"
	TypeFreeCreatureExpired     Type = "freecreature.expired"
	TypeFreeCreatureClaimed     Type = "freecreature.claimed"
)

// IsValid reports whether the event type is usable.
func (t Type) IsValid() bool {
	return strings.TrimSpace(string(t)) != ""
}

// Recurring reports whether the type is one of the perpetual per-player
// timers. These are excluded from resolved-event reports.
func (t Type) Recurring() bool {
	switch t {
	case TypeOrderRecharge, TypeMagicRecharge, TypeCardRecharge:
		return true
	}
	return false
}

// Event is one entry in a guild's append-only journal. Events are immutable
// once recorded except for the Resolved flag, which the resolver loop flips
// exactly once.
type Event struct {
	// GuildID is the guild this event belongs to.
	GuildID string
	// Seq is the event sequence number within the guild (starts at 1).
	// Assigned by the transaction scope on AddEvent.
	Seq int64
	// ParentSeq is the causal parent's sequence number, 0 for root events.
	// Parenthood is causal, not a scheduling dependency.
	ParentSeq int64
	// Type identifies the kind of event.
	Type Type
	// At is the scheduled timestamp; future for timers, now for facts.
	At time.Time
	// PlayerID is the acting or affected player, empty for guild-level events.
	PlayerID string
	// Payload holds type-specific data as JSON.
	Payload []byte
	// Resolved marks the event as consumed by the resolver loop.
	Resolved bool
}
