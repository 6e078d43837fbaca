package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/thornmere/menagerie-bot-discord/internal/catalog"
	"github.com/thornmere/menagerie-bot-discord/internal/game"
)

func (h *Handler) handleSetup(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if _, err := h.gameService.CreateGuild(ctx, i.GuildID); err != nil {
		return err
	}
	return h.respond(s, i, "The menagerie is open! Join with /menagerie join")
}

func (h *Handler) handleJoin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	player, err := h.gameService.JoinGuild(ctx, i.GuildID, playerID(i))
	if err != nil {
		return err
	}
	return h.respond(s, i, fmt.Sprintf("<@%s> joined with %d cards in hand. Check it with /menagerie hand",
		player.ID, len(player.Hand)))
}

func (h *Handler) handleLeave(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := h.gameService.LeaveGuild(ctx, i.GuildID, playerID(i)); err != nil {
		return err
	}
	return h.respond(s, i, fmt.Sprintf("<@%s> left the menagerie", playerID(i)))
}

func (h *Handler) handleHand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	hand, err := h.gameService.GetHand(ctx, i.GuildID, playerID(i))
	if err != nil {
		return err
	}
	if len(hand) == 0 {
		return h.respondEphemeral(s, i, "Your hand is empty")
	}

	var b strings.Builder
	b.WriteString("Your hand:\n")
	for _, creature := range hand {
		name := fmt.Sprintf("creature #%d", creature.BaseID)
		if base, ok := catalog.GetCreature(creature.BaseID); ok {
			name = base.Name
		}
		fmt.Fprintf(&b, "- %s (`%s`)\n", name, creature.ID)
	}
	return h.respondEphemeral(s, i, b.String())
}

func (h *Handler) handleResources(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	resources, err := h.gameService.GetResources(ctx, i.GuildID, playerID(i))
	if err != nil {
		return err
	}
	return h.respondEphemeral(s, i, "You have "+formatAmounts(resources))
}

func (h *Handler) handleRegions(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	regions, err := h.gameService.ListRegions(ctx, i.GuildID)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Regions:\n")
	for _, region := range regions {
		name := fmt.Sprintf("region #%d", region.BaseID)
		if base, ok := catalog.GetRegion(region.BaseID); ok {
			name = base.Name
		}
		status := "open"
		if region.Occupied() {
			status = fmt.Sprintf("occupied until <t:%d>", region.OccupiedUntil.Unix())
		}
		fmt.Fprintf(&b, "- %s (`%s`) — %s\n", name, region.ID, status)
	}
	return h.respondEphemeral(s, i, b.String())
}

func (h *Handler) handlePlay(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	result, err := h.gameService.PlayCreatureToRegion(ctx, &game.PlayRegionInput{
		GuildID:    i.GuildID,
		PlayerID:   playerID(i),
		CreatureID: opts["creature"].StringValue(),
		RegionID:   opts["region"].StringValue(),
	})
	if err != nil {
		return err
	}

	name := fmt.Sprintf("creature #%d", result.Creature.BaseID)
	if base, ok := catalog.GetCreature(result.Creature.BaseID); ok {
		name = base.Name
	}
	return h.respond(s, i, fmt.Sprintf("<@%s> sent %s on a quest; it returns <t:%d:R>",
		playerID(i), name, result.RechargesAt.Unix()))
}

func (h *Handler) handleCampaign(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	result, err := h.gameService.PlayCreatureToCampaign(ctx, &game.PlayCampaignInput{
		GuildID:    i.GuildID,
		PlayerID:   playerID(i),
		CreatureID: opts["creature"].StringValue(),
	})
	if err != nil {
		return err
	}

	name := fmt.Sprintf("creature #%d", result.Creature.BaseID)
	if base, ok := catalog.GetCreature(result.Creature.BaseID); ok {
		name = base.Name
	}
	return h.respond(s, i, fmt.Sprintf("<@%s> committed %s to the campaign: +%d strength (total %d)",
		playerID(i), name, result.Strength, result.Total))
}

func (h *Handler) handleDraw(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	count := 1
	if opt, ok := opts["count"]; ok {
		count = int(opt.IntValue())
	}

	result, err := h.gameService.DrawCards(ctx, i.GuildID, playerID(i), count)
	if err != nil {
		return err
	}
	if result.HandFull && len(result.Drawn) == 0 {
		return h.respondEphemeral(s, i, "Your hand is full")
	}
	return h.respond(s, i, fmt.Sprintf("<@%s> drew %d card(s)", playerID(i), len(result.Drawn)))
}

func (h *Handler) handleChoose(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	answer := int(opts["option"].IntValue())
	if err := h.gameService.ResumeChoice(ctx, i.GuildID, playerID(i), answer); err != nil {
		return err
	}
	return h.respond(s, i, fmt.Sprintf("<@%s> made their choice; the play went through", playerID(i)))
}

func (h *Handler) handleCancel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := h.gameService.CancelChoice(ctx, i.GuildID, playerID(i)); err != nil {
		return err
	}
	return h.respondEphemeral(s, i, "Pending choice abandoned")
}

// handleRoll responds first so the reward can be keyed by the response
// message, then rolls and fills the message in.
func (h *Handler) handleRoll(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := h.respond(s, i, "Rolling for a wild creature..."); err != nil {
		return err
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return err
	}

	fc, err := h.gameService.RollFreeCreature(ctx, &game.RollFreeCreatureInput{
		GuildID:   i.GuildID,
		RollerID:  playerID(i),
		ChannelID: msg.ChannelID,
		MessageID: msg.ID,
	})
	if err != nil {
		if _, editErr := s.ChannelMessageEdit(msg.ChannelID, msg.ID, "The roll failed: "+err.Error()); editErr != nil {
			log.Printf("discord: edit roll message: %v", editErr)
		}
		return nil
	}

	name := fmt.Sprintf("creature #%d", fc.BaseID)
	if base, ok := catalog.GetCreature(fc.BaseID); ok {
		name = base.Name
	}
	content := fmt.Sprintf("A wild %s appeared! <@%s> may claim it until <t:%d:R>; afterwards anyone can, until <t:%d:R>.\nClaim with /menagerie claim message:%s",
		name, fc.RollerID, fc.ProtectedUntil.Unix(), fc.ExpiresAt.Unix(), msg.ID)
	if _, err := s.ChannelMessageEdit(msg.ChannelID, msg.ID, content); err != nil {
		log.Printf("discord: edit roll message: %v", err)
	}
	return nil
}

func (h *Handler) handleClaim(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	creature, err := h.gameService.ClaimFreeCreature(ctx, i.GuildID, i.ChannelID, opts["message"].StringValue(), playerID(i))
	if err != nil {
		return err
	}

	name := fmt.Sprintf("creature #%d", creature.BaseID)
	if base, ok := catalog.GetCreature(creature.BaseID); ok {
		name = base.Name
	}
	return h.respond(s, i, fmt.Sprintf("<@%s> claimed the wild %s; it joins their discard pile", playerID(i), name))
}
