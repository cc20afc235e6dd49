package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Discord notification embed colors
const (
	ColorGrowth    = 0x36B535 // Green
	ColorFeedError = 0xFF4545 // Red
)

// DiscordProvider implements the Provider interface for Discord alerts sent
// to a single configured channel.
type DiscordProvider struct {
	botToken  string
	channelID string
	session   *discordgo.Session

	mu sync.RWMutex
}

func NewDiscordProvider(botToken, channelID string) *DiscordProvider {
	return &DiscordProvider{
		botToken:  botToken,
		channelID: channelID,
	}
}

func (d *DiscordProvider) Name() string {
	return "discord"
}

func (d *DiscordProvider) IsConfigured() bool {
	return d.botToken != "" && d.channelID != ""
}

func (d *DiscordProvider) Connect(ctx context.Context) error {
	if !d.IsConfigured() {
		return fmt.Errorf("discord not configured: missing bot token or channel ID")
	}

	session, err := discordgo.New("Bot " + d.botToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	d.mu.Lock()
	d.session = session
	d.mu.Unlock()

	slog.Info("Discord notification provider connected", "channelID", d.channelID)
	return nil
}

func (d *DiscordProvider) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session != nil {
		if err := d.session.Close(); err != nil {
			return err
		}
		d.session = nil
	}
	return nil
}

func (d *DiscordProvider) Send(ctx context.Context, notification Notification) error {
	d.mu.RLock()
	session := d.session
	d.mu.RUnlock()

	if session == nil {
		return fmt.Errorf("discord not connected")
	}

	embed := &discordgo.MessageEmbed{
		Title:       notification.Title,
		Description: notification.Message,
		Color:       notification.Color,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	_, err := session.ChannelMessageSendEmbed(d.channelID, embed)
	if err != nil {
		return fmt.Errorf("failed to send Discord message: %w", err)
	}
	return nil
}
