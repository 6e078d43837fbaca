package entities

import "time"

// GuildConfig holds the per-guild tunables for capacities, recharge intervals
// and the channel resolved-event reports are posted to
type GuildConfig struct {
	HandCapacity int `json:"hand_capacity"`

	// Perpetual per-player timer intervals
	OrderRechargeInterval time.Duration `json:"order_recharge_interval"`
	MagicRechargeInterval time.Duration `json:"magic_recharge_interval"`
	CardRechargeInterval  time.Duration `json:"card_recharge_interval"`

	// One-shot recharge durations applied when a creature is played
	CreatureRecharge time.Duration `json:"creature_recharge"`
	RegionRecharge   time.Duration `json:"region_recharge"`

	// Free-creature claim windows
	FreeCreatureProtection time.Duration `json:"free_creature_protection"`
	FreeCreatureExpiry     time.Duration `json:"free_creature_expiry"`

	// ReportChannelID is the Discord channel resolved events are reported to
	ReportChannelID string `json:"report_channel_id"`
}

// DefaultGuildConfig returns the settings a freshly created guild starts with
func DefaultGuildConfig() GuildConfig {
	return GuildConfig{
		HandCapacity:           5,
		OrderRechargeInterval:  4 * time.Hour,
		MagicRechargeInterval:  6 * time.Hour,
		CardRechargeInterval:   8 * time.Hour,
		CreatureRecharge:       12 * time.Hour,
		RegionRecharge:         24 * time.Hour,
		FreeCreatureProtection: 30 * time.Minute,
		FreeCreatureExpiry:     6 * time.Hour,
	}
}

// Guild is one isolated game instance, keyed by Discord guild ID. All other
// entities are owned by a guild and removed when it is deleted.
type Guild struct {
	ID        string      `json:"id"`
	Config    GuildConfig `json:"config"`
	CreatedAt time.Time   `json:"created_at"`
}
