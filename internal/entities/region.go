package entities

import "time"

// Region is a guild-scoped instance of a catalog region. A region is either
// free or occupied by a single creature until its recharge resolves.
type Region struct {
	GuildID string `json:"guild_id"`
	ID      string `json:"id"`
	BaseID  int    `json:"base_id"`

	OccupiedBy    string    `json:"occupied_by,omitempty"`
	OccupiedUntil time.Time `json:"occupied_until,omitempty"`
}

// Occupied reports whether a creature currently holds the region. Occupancy is
// cleared by the region recharge event, not by the timestamp passing.
func (r *Region) Occupied() bool {
	return r.OccupiedBy != ""
}
