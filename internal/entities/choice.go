package entities

import "time"

// Choice describes a selection an ability needs from the acting player: a
// prompt and the option labels enumerated at the moment the choice was raised.
// The raw answer is an index into Options; on replay the ability re-enumerates
// its option source and maps the index back to a concrete selection.
type Choice struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// PendingCommand captures the original command so it can be re-invoked from
// the beginning once the missing answer arrives. It is plain data rather than
// a captured closure so suspended commands survive a process restart.
type PendingCommand struct {
	// Name is one of the play command names (see game package constants)
	Name       string `json:"name"`
	CreatureID string `json:"creature_id"`
	RegionID   string `json:"region_id,omitempty"`
}

// PendingChoice is the single suspended command a player may have per guild.
// Creating a new one overwrites an unanswered prior one.
type PendingChoice struct {
	GuildID  string `json:"guild_id"`
	PlayerID string `json:"player_id"`

	Command PendingCommand `json:"command"`

	// Answers already collected, consumed FIFO on replay
	Answers []int `json:"answers"`

	Choice    Choice    `json:"choice"`
	CreatedAt time.Time `json:"created_at"`
}
