package entities

import "time"

// FreeCreature is a time-windowed claimable reward. It is keyed by the Discord
// message that offered it rather than by a sequence id, and is retained after
// a claim for history.
type FreeCreature struct {
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`

	BaseID   int    `json:"base_id"`
	RollerID string `json:"roller_id"`

	// Only the roller may claim before ProtectedUntil; nobody after ExpiresAt
	ProtectedUntil time.Time `json:"protected_until"`
	ExpiresAt      time.Time `json:"expires_at"`

	ClaimedBy string    `json:"claimed_by,omitempty"`
	RolledAt  time.Time `json:"rolled_at"`
}

// Claimed reports whether the reward has already been taken
func (f *FreeCreature) Claimed() bool {
	return f.ClaimedBy != ""
}
