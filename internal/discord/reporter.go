// Package discord adapts engine output to Discord. The reporter posts each
// guild's resolved-event forest to the guild's configured report channel.
package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/thornmere/menagerie-bot-discord/internal/catalog"
	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	"github.com/thornmere/menagerie-bot-discord/internal/events"
	"github.com/thornmere/menagerie-bot-discord/internal/resolver"
)

// ChannelResolver supplies the report channel for a guild, empty when
// reporting is disabled
type ChannelResolver interface {
	ReportChannel(ctx context.Context, guildID string) (string, error)
}

// ReporterConfig holds the reporter dependencies
type ReporterConfig struct {
	Session  *discordgo.Session
	Channels ChannelResolver
}

// Reporter posts resolved-event reports to Discord
type Reporter struct {
	session  *discordgo.Session
	channels ChannelResolver
}

// NewReporter creates a new reporter
func NewReporter(cfg *ReporterConfig) *Reporter {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Session == nil {
		panic("discord session is required")
	}
	if cfg.Channels == nil {
		panic("channel resolver is required")
	}
	return &Reporter{
		session:  cfg.Session,
		channels: cfg.Channels,
	}
}

// ReportResolved formats the forest and posts it. Failures are logged; the
// resolver never waits on Discord.
func (r *Reporter) ReportResolved(ctx context.Context, guildID string, forest []*resolver.Tree) {
	channelID, err := r.channels.ReportChannel(ctx, guildID)
	if err != nil {
		log.Printf("discord: report channel for guild %s: %v", guildID, err)
		return
	}
	if channelID == "" {
		return
	}

	var b strings.Builder
	for _, tree := range forest {
		writeTree(&b, tree, 0)
	}
	if b.Len() == 0 {
		return
	}

	if _, err := r.session.ChannelMessageSend(channelID, b.String()); err != nil {
		log.Printf("discord: post report to channel %s: %v", channelID, err)
	}
}

func writeTree(b *strings.Builder, tree *resolver.Tree, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if depth > 0 {
		b.WriteString("└ ")
	}
	b.WriteString(describe(tree.Event))
	b.WriteString("\n")
	for _, child := range tree.Children {
		writeTree(b, child, depth+1)
	}
}

// describe renders one event as a report line
func describe(e *events.Event) string {
	payload, err := events.Decode(e)
	if err != nil {
		return fmt.Sprintf("%s (seq %d)", e.Type, e.Seq)
	}

	switch p := payload.(type) {
	case *events.PlayedPayload:
		return fmt.Sprintf("<@%s> sent %s on a quest", e.PlayerID, creatureName(p.BaseID))
	case *events.CampaignPlayedPayload:
		return fmt.Sprintf("<@%s> committed %s to the campaign (+%d strength)", e.PlayerID, creatureName(p.BaseID), p.Strength)
	case *events.PaidPayload:
		return fmt.Sprintf("<@%s> paid %s", e.PlayerID, amounts(p.Amounts))
	case *events.GainedPayload:
		return fmt.Sprintf("<@%s> gained %s", e.PlayerID, amounts(p.Amounts))
	case *events.DrawnPayload:
		if p.Count == 0 {
			return fmt.Sprintf("<@%s> drew no cards (hand full)", e.PlayerID)
		}
		return fmt.Sprintf("<@%s> drew %d card(s)", e.PlayerID, p.Count)
	case *events.CreatureRechargePayload:
		return fmt.Sprintf("a creature of <@%s> recovered from its quest", e.PlayerID)
	case *events.RegionRechargePayload:
		return "a region is open again"
	case *events.FreeCreaturePayload:
		switch e.Type {
		case events.TypeFreeCreatureRolled:
			return fmt.Sprintf("<@%s> found a wild %s", e.PlayerID, creatureName(p.BaseID))
		case events.TypeFreeCreatureUnprotected:
			return fmt.Sprintf("the wild %s is now up for grabs", creatureName(p.BaseID))
		case events.TypeFreeCreatureExpired:
			return fmt.Sprintf("the wild %s wandered off", creatureName(p.BaseID))
		}
	case *events.ClaimedPayload:
		return fmt.Sprintf("<@%s> claimed the wild %s", p.ClaimantID, creatureName(p.BaseID))
	}

	switch e.Type {
	case events.TypePlayerJoined:
		return fmt.Sprintf("<@%s> joined the menagerie", e.PlayerID)
	case events.TypePlayerLeft:
		return fmt.Sprintf("<@%s> left the menagerie", e.PlayerID)
	}
	return fmt.Sprintf("%s (seq %d)", e.Type, e.Seq)
}

func creatureName(baseID int) string {
	if base, ok := catalog.GetCreature(baseID); ok {
		return base.Name
	}
	return fmt.Sprintf("creature #%d", baseID)
}

func amounts(list []entities.ResourceAmount) string {
	parts := make([]string, 0, len(list))
	for _, entry := range list {
		parts = append(parts, fmt.Sprintf("%d %s", entry.Amount, entry.Resource))
	}
	return strings.Join(parts, ", ")
}
