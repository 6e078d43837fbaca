package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// New builds an event with a marshaled payload. Seq and ParentSeq are
// assigned later by the transaction scope the event is added to.
func New(guildID string, typ Type, at time.Time, playerID string, payload any) (*Event, error) {
	e := &Event{
		GuildID:  guildID,
		Type:     typ,
		At:       at.UTC(),
		PlayerID: playerID,
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", typ, err)
		}
		e.Payload = data
	}
	return e, nil
}
