// Package catalog holds the closed, statically enumerated creature and region
// type catalogs. Each entry maps a stable integer id to a struct of capability
// functions; nil price funcs mark an action as categorically disallowed, while
// a price func returning an empty list means the action is free.
package catalog

import (
	"context"
	"fmt"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
)

// Category classifies creatures and constrains which regions accept them
type Category string

const (
	CategoryBeast     Category = "beast"
	CategorySpirit    Category = "spirit"
	CategoryConstruct Category = "construct"
)

// HandCard pairs a creature instance id with its display name, for building
// choice option lists.
type HandCard struct {
	CreatureID string
	Name       string
}

// EffectContext is the surface the game engine hands to effect handlers. All
// mutations go through the enclosing transaction scope; a handler must never
// assume side effects of a previous, rolled-back attempt.
type EffectContext interface {
	// PlayerID is the acting player
	PlayerID() string

	// Gain grants resources to the acting player
	Gain(ctx context.Context, gains []entities.ResourceAmount) error

	// Pay deducts resources from the acting player
	Pay(ctx context.Context, prices []entities.ResourceAmount) error

	// Draw draws up to n cards for the acting player
	Draw(ctx context.Context, n int) error

	// HandCards enumerates the acting player's hand
	HandCards(ctx context.Context) ([]HandCard, error)

	// DiscardFromHand moves a hand card to the discard pile
	DiscardFromHand(ctx context.Context, creatureID string) error

	// NextSelection consumes the next queued answer for the given choice. With
	// an empty queue it fails with a needs-choice condition that unwinds the
	// whole transaction.
	NextSelection(choice entities.Choice) (int, error)
}

// PriceFunc returns the resource price of an action. A nil PriceFunc on a
// catalog entry means the action is disallowed for that type.
type PriceFunc func() []entities.ResourceAmount

// EffectFunc applies a quest effect after all prices were paid
type EffectFunc func(ctx context.Context, ec EffectContext) error

// CampaignEffectFunc applies a campaign effect and returns the strength the
// creature contributes to the campaign tally
type CampaignEffectFunc func(ctx context.Context, ec EffectContext) (int, error)

// Creature is an immutable catalog creature type
type Creature struct {
	ID       int
	Name     string
	Text     string
	Category Category

	QuestPrice    PriceFunc
	CampaignPrice PriceFunc

	QuestEffect    EffectFunc
	CampaignEffect CampaignEffectFunc

	// ClaimPrice is what a claimant pays for this creature as a free reward
	ClaimPrice []entities.ResourceAmount

	// Rollable marks the creature as eligible for free-creature rolls
	Rollable bool
}

// Region is an immutable catalog region type
type Region struct {
	ID   int
	Name string
	Text string

	// Accepts lists the creature categories the region admits; empty = any
	Accepts []Category

	QuestPrice  PriceFunc
	QuestEffect EffectFunc
}

// AcceptsCategory reports whether the region admits the creature category
func (r *Region) AcceptsCategory(cat Category) bool {
	if len(r.Accepts) == 0 {
		return true
	}
	for _, c := range r.Accepts {
		if c == cat {
			return true
		}
	}
	return false
}

var (
	creatureByID map[int]*Creature
	regionByID   map[int]*Region
)

func init() {
	creatureByID = make(map[int]*Creature, len(creatures))
	for i, c := range creatures {
		if c.ID != i+1 {
			panic(fmt.Sprintf("catalog: creature %q has id %d, want dense id %d", c.Name, c.ID, i+1))
		}
		if _, dup := creatureByID[c.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate creature id %d", c.ID))
		}
		creatureByID[c.ID] = c
	}

	regionByID = make(map[int]*Region, len(regions))
	for i, r := range regions {
		if r.ID != i+1 {
			panic(fmt.Sprintf("catalog: region %q has id %d, want dense id %d", r.Name, r.ID, i+1))
		}
		if _, dup := regionByID[r.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate region id %d", r.ID))
		}
		regionByID[r.ID] = r
	}
}

// GetCreature retrieves a catalog creature by id
func GetCreature(id int) (*Creature, bool) {
	c, ok := creatureByID[id]
	return c, ok
}

// GetRegion retrieves a catalog region by id
func GetRegion(id int) (*Region, bool) {
	r, ok := regionByID[id]
	return r, ok
}

// RollableCreatures returns the ids of creatures eligible for free rolls
func RollableCreatures() []int {
	var ids []int
	for _, c := range creatures {
		if c.Rollable {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// StartingDeck returns the catalog ids a new player's deck is built from
func StartingDeck() []int {
	return append([]int(nil), startingDeck...)
}

// StartingRegions returns the catalog ids seeded into a new guild
func StartingRegions() []int {
	var ids []int
	for _, r := range regions {
		ids = append(ids, r.ID)
	}
	return ids
}
