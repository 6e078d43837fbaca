package events

import (
	"encoding/json"
	"fmt"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
)

// PaidPayload is the payload of a resource.paid event.
type PaidPayload struct {
	Amounts []entities.ResourceAmount `json:"amounts"`
}

// GainedPayload is the payload of a resource.gained event.
type GainedPayload struct {
	Amounts []entities.ResourceAmount `json:"amounts"`
}

// DrawnPayload summarizes one draw operation.
type DrawnPayload struct {
	Count       int      `json:"count"`
	CreatureIDs []string `json:"creature_ids,omitempty"`
	Reshuffled  bool     `json:"reshuffled,omitempty"`
	HandFull    bool     `json:"hand_full,omitempty"`
}

// PlayedPayload is the payload of a creature.played event.
type PlayedPayload struct {
	CreatureID string `json:"creature_id"`
	BaseID     int    `json:"base_id"`
	RegionID   string `json:"region_id"`
}

// CampaignPlayedPayload is the payload of a campaign.played event.
type CampaignPlayedPayload struct {
	CreatureID string `json:"creature_id"`
	BaseID     int    `json:"base_id"`
	Strength   int    `json:"strength"`
}

// CreatureRechargePayload names the played creature a recharge returns.
type CreatureRechargePayload struct {
	CreatureID string `json:"creature_id"`
}

// RegionRechargePayload names the region a recharge frees.
type RegionRechargePayload struct {
	RegionID string `json:"region_id"`
}

// FreeCreaturePayload identifies a rolled reward. It is shared by the rolled,
// unprotected and expired events.
type FreeCreaturePayload struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	BaseID    int    `json:"base_id"`
	RollerID  string `json:"roller_id"`
}

// ClaimedPayload is the payload of a freecreature.claimed event.
type ClaimedPayload struct {
	ChannelID  string `json:"channel_id"`
	MessageID  string `json:"message_id"`
	BaseID     int    `json:"base_id"`
	ClaimantID string `json:"claimant_id"`
	CreatureID string `json:"creature_id"`
}

// decoders maps each payload-carrying type to its decode function. Types
// without an entry carry no payload.
var decoders = map[Type]func([]byte) (any, error){
	TypeResourcePaid:            decodeInto[PaidPayload],
	TypeResourceGained:          decodeInto[GainedPayload],
	TypeCardsDrawn:              decodeInto[DrawnPayload],
	TypeCreaturePlayed:          decodeInto[PlayedPayload],
	TypeCampaignPlayed:          decodeInto[CampaignPlayedPayload],
	TypeCreatureRecharge:        decodeInto[CreatureRechargePayload],
	TypeRegionRecharge:          decodeInto[RegionRechargePayload],
	TypeFreeCreatureRolled:      decodeInto[FreeCreaturePayload],
	TypeFreeCreatureUnprotected: decodeInto[FreeCreaturePayload],
	TypeFreeCreatureExpired:     decodeInto[FreeCreaturePayload],
	TypeFreeCreatureClaimed:     decodeInto[ClaimedPayload],
}

func decodeInto[T any](data []byte) (any, error) {
	var payload T
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Decode returns the typed payload of an event, or nil for payload-free types.
func Decode(e *Event) (any, error) {
	decode, ok := decoders[e.Type]
	if !ok {
		return nil, nil
	}
	if len(e.Payload) == 0 {
		return nil, fmt.Errorf("event %s/%d: missing %s payload", e.GuildID, e.Seq, e.Type)
	}
	payload, err := decode(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("event %s/%d: decode %s payload: %w", e.GuildID, e.Seq, e.Type, err)
	}
	return payload, nil
}
