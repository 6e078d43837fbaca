// Package discord wires slash commands to the game service. Every command is
// one engine transaction; rule violations come back as ephemeral messages.
package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/thornmere/menagerie-bot-discord/internal/entities"
	apperrors "github.com/thornmere/menagerie-bot-discord/internal/errors"
	"github.com/thornmere/menagerie-bot-discord/internal/game"
)

// Handler handles all Discord interactions
type Handler struct {
	gameService *game.Service
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	GameService *game.Service
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.GameService == nil {
		panic("game service is required")
	}
	return &Handler{gameService: cfg.GameService}
}

// HandleInteraction routes an interaction to the matching subcommand handler
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != "menagerie" || len(data.Options) == 0 {
		return
	}

	ctx := context.Background()
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	var err error
	switch sub.Name {
	case "setup":
		err = h.handleSetup(ctx, s, i)
	case "join":
		err = h.handleJoin(ctx, s, i)
	case "leave":
		err = h.handleLeave(ctx, s, i)
	case "hand":
		err = h.handleHand(ctx, s, i)
	case "resources":
		err = h.handleResources(ctx, s, i)
	case "regions":
		err = h.handleRegions(ctx, s, i)
	case "play":
		err = h.handlePlay(ctx, s, i, opts)
	case "campaign":
		err = h.handleCampaign(ctx, s, i, opts)
	case "draw":
		err = h.handleDraw(ctx, s, i, opts)
	case "choose":
		err = h.handleChoose(ctx, s, i, opts)
	case "cancel":
		err = h.handleCancel(ctx, s, i)
	case "roll":
		err = h.handleRoll(ctx, s, i)
	case "claim":
		err = h.handleClaim(ctx, s, i, opts)
	default:
		return
	}

	if err != nil {
		h.respondError(s, i, err)
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "menagerie",
			Description: "Menagerie card game commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "setup",
					Description: "Set up the game for this server",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "join",
					Description: "Join the game",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "leave",
					Description: "Leave the game",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "hand",
					Description: "Show your hand",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "resources",
					Description: "Show your resources",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "regions",
					Description: "Show the server's regions",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "play",
					Description: "Send a creature from your hand on a quest",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "creature",
							Description: "Creature id from your hand",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "region",
							Description: "Region id to quest in",
							Required:    true,
						},
					},
				},
				{
					Name:        "campaign",
					Description: "Commit a creature from your hand to the campaign",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "creature",
							Description: "Creature id from your hand",
							Required:    true,
						},
					},
				},
				{
					Name:        "draw",
					Description: "Draw cards",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "count",
							Description: "How many cards (default 1)",
							Required:    false,
						},
					},
				},
				{
					Name:        "choose",
					Description: "Answer your pending choice",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "option",
							Description: "Option number from the prompt",
							Required:    true,
						},
					},
				},
				{
					Name:        "cancel",
					Description: "Abandon your pending choice",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "roll",
					Description: "Roll for a wild creature anyone can claim",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "claim",
					Description: "Claim a rolled wild creature",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "message",
							Description: "Message id of the roll",
							Required:    true,
						},
					},
				},
			},
		},
	}

	for _, cmd := range commands {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd); err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
	}
	return nil
}

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func playerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// respond sends a visible reply
func (h *Handler) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// respondEphemeral sends a reply only the invoker sees
func (h *Handler) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondError translates engine errors into user-facing messages. A missing
// choice answer is not an error to the player; it is the prompt itself.
func (h *Handler) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	if needs, ok := game.AsNeedsChoice(err); ok {
		var b strings.Builder
		b.WriteString(needs.Choice.Prompt)
		b.WriteString("\n")
		for n, option := range needs.Choice.Options {
			fmt.Fprintf(&b, "%d. %s\n", n, option)
		}
		b.WriteString("Answer with /menagerie choose")
		if respErr := h.respondEphemeral(s, i, b.String()); respErr != nil {
			log.Printf("discord: respond with choice prompt: %v", respErr)
		}
		return
	}

	var content string
	switch {
	case apperrors.IsRuleViolation(err), apperrors.IsNotFound(err),
		apperrors.IsInvalidArgument(err), apperrors.IsAlreadyExists(err):
		content = err.Error()
	default:
		log.Printf("discord: command failed: %v", err)
		content = "something went wrong, try again later"
	}
	if respErr := h.respondEphemeral(s, i, content); respErr != nil {
		log.Printf("discord: respond with error: %v", respErr)
	}
}

func formatAmounts(resources map[entities.Resource]int) string {
	return fmt.Sprintf("order %d, magic %d",
		resources[entities.ResourceOrder], resources[entities.ResourceMagic])
}
