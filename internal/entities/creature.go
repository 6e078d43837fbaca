package entities

// CreatureLocation is the single zone a creature instance currently occupies
type CreatureLocation string

const (
	LocationDeck     CreatureLocation = "deck"
	LocationHand     CreatureLocation = "hand"
	LocationDiscard  CreatureLocation = "discard"
	LocationPlayed   CreatureLocation = "played"
	LocationCampaign CreatureLocation = "campaign"
)

// Creature is a guild-scoped instance of a catalog creature owned by a player
type Creature struct {
	GuildID  string           `json:"guild_id"`
	ID       string           `json:"id"`
	BaseID   int              `json:"base_id"`
	OwnerID  string           `json:"owner_id"`
	Location CreatureLocation `json:"location"`
}
