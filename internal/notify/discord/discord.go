// Package discord implements the notify Adapter over the Discord REST API.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// session abstracts the discordgo.Session methods we use, enabling test mocks.
type session interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Adapter posts digests to one Discord channel.
type Adapter struct {
	sess      session
	channelID string
}

// New creates a Discord Adapter from a bot token and a channel id. Sending
// plain messages needs no Gateway connection, so the session is never opened.
func New(botToken, channelID string) (*Adapter, error) {
	if botToken == "" {
		return nil, fmt.Errorf("discord: bot token is required")
	}
	if channelID == "" {
		return nil, fmt.Errorf("discord: channel id is required")
	}
	s, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	return &Adapter{sess: s, channelID: channelID}, nil
}

// NewWithSession injects a mock session for tests.
func NewWithSession(s session, channelID string) *Adapter {
	return &Adapter{sess: s, channelID: channelID}
}

func (a *Adapter) Name() string { return "discord" }

// Send posts text to the configured channel.
func (a *Adapter) Send(ctx context.Context, text string) error {
	_, err := a.sess.ChannelMessageSend(a.channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord: send message: %w", err)
	}
	return nil
}
