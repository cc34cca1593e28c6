package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	championColor = 0xF1C40F
	archiveColor  = 0x58ACEC
)

// embedSender is the part of *discordgo.Session the announcer needs.
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordAnnouncer posts tournament results to a Discord channel through the
// REST API. It never opens a gateway connection.
type DiscordAnnouncer struct {
	session   embedSender
	channelID string
	logger    *slog.Logger
}

func NewDiscordAnnouncer(botToken, channelID string, logger *slog.Logger) (*DiscordAnnouncer, error) {
	if botToken == "" || channelID == "" {
		return nil, errors.New("discord bot token and channel id are required")
	}
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &DiscordAnnouncer{session: session, channelID: channelID, logger: logger}, nil
}

func (a *DiscordAnnouncer) AnnounceChampion(ctx context.Context, stageName, championName string) error {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s: champion decided", stageName),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Champion 🏆", Value: championName, Inline: false},
		},
		Color:     championColor,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return a.send(ctx, embed)
}

func (a *DiscordAnnouncer) AnnounceArchived(ctx context.Context, tournamentName, championName string) error {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s added to the hall of champions", tournamentName),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tournament", Value: tournamentName, Inline: true},
			{Name: "Champion", Value: championName, Inline: true},
		},
		Color:     archiveColor,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return a.send(ctx, embed)
}

func (a *DiscordAnnouncer) send(ctx context.Context, embed *discordgo.MessageEmbed) error {
	if _, err := a.session.ChannelMessageSendEmbed(a.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		a.logger.Warn("discord announcement failed", "title", embed.Title, "error", err)
		return fmt.Errorf("discord announcement failed: %w", err)
	}
	a.logger.Info("discord announcement sent", "title", embed.Title)
	return nil
}
