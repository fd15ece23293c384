// Package slack implements the notify Adapter over the Slack Web API.
package slack

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// client abstracts the Slack API methods we use, enabling test mocks.
type client interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Adapter posts digests to one Slack channel.
type Adapter struct {
	client    client
	channelID string
}

// New creates a Slack Adapter from a bot token and a channel id.
func New(botToken, channelID string) (*Adapter, error) {
	if botToken == "" {
		return nil, fmt.Errorf("slack: bot token is required")
	}
	if channelID == "" {
		return nil, fmt.Errorf("slack: channel id is required")
	}
	return &Adapter{client: slackapi.New(botToken), channelID: channelID}, nil
}

// NewWithClient injects a mock client for tests.
func NewWithClient(c client, channelID string) *Adapter {
	return &Adapter{client: c, channelID: channelID}
}

func (a *Adapter) Name() string { return "slack" }

// Send posts text to the configured channel.
func (a *Adapter) Send(ctx context.Context, text string) error {
	_, _, err := a.client.PostMessageContext(ctx, a.channelID,
		slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack: post message: %w", err)
	}
	return nil
}
