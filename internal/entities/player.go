package entities

import "time"

// PlayedCreature is a creature resting in the played zone until it recharges
type PlayedCreature struct {
	CreatureID  string    `json:"creature_id"`
	RechargesAt time.Time `json:"recharges_at"`
}

// CampaignEntry is a creature committed to the campaign track together with
// the strength it contributed
type CampaignEntry struct {
	CreatureID string `json:"creature_id"`
	Strength   int    `json:"strength"`
}

// Player holds a guild member's resources and card zones. A creature instance
// appears in exactly one zone at a time.
type Player struct {
	GuildID string `json:"guild_id"`
	ID      string `json:"id"`

	Resources map[Resource]int `json:"resources"`

	Deck     []string         `json:"deck"`
	Hand     []string         `json:"hand"`
	Discard  []string         `json:"discard"`
	Played   []PlayedCreature `json:"played"`
	Campaign []CampaignEntry  `json:"campaign"`
}

// Resource returns the player's balance for a resource kind
func (p *Player) Resource(res Resource) int {
	if p.Resources == nil {
		return 0
	}
	return p.Resources[res]
}

// AddResource adjusts a balance by delta. Callers are responsible for not
// driving a balance negative; the ledger enforces that before calling.
func (p *Player) AddResource(res Resource, delta int) {
	if p.Resources == nil {
		p.Resources = make(map[Resource]int)
	}
	p.Resources[res] += delta
}

// InHand reports whether the creature instance is in the player's hand
func (p *Player) InHand(creatureID string) bool {
	for _, id := range p.Hand {
		if id == creatureID {
			return true
		}
	}
	return false
}

// RemoveFromHand removes a creature instance from the hand, reporting whether
// it was present
func (p *Player) RemoveFromHand(creatureID string) bool {
	for i, id := range p.Hand {
		if id == creatureID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveFromPlayed removes a creature instance from the played zone, reporting
// whether it was present
func (p *Player) RemoveFromPlayed(creatureID string) bool {
	for i, pc := range p.Played {
		if pc.CreatureID == creatureID {
			p.Played = append(p.Played[:i], p.Played[i+1:]...)
			return true
		}
	}
	return false
}

// CampaignStrength returns the accumulated campaign score
func (p *Player) CampaignStrength() int {
	total := 0
	for _, entry := range p.Campaign {
		total += entry.Strength
	}
	return total
}
