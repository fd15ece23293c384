package slack

import (
	"context"
	"errors"
	"testing"

	slackapi "github.com/slack-go/slack"
)

type mockClient struct {
	channels []string
	fail     bool
}

func (m *mockClient) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.fail {
		return "", "", errors.New("rate limited")
	}
	m.channels = append(m.channels, channelID)
	return channelID, "123.456", nil
}

func TestNew_Validation(t *testing.T) {
	if _, err := New("", "C123"); err == nil {
		t.Error("New with empty token should fail")
	}
	if _, err := New("xoxb-token", ""); err == nil {
		t.Error("New with empty channel should fail")
	}
	if _, err := New("xoxb-token", "C123"); err != nil {
		t.Errorf("New: %v", err)
	}
}

func TestSend(t *testing.T) {
	m := &mockClient{}
	a := NewWithClient(m, "C123")

	if err := a.Send(context.Background(), "digest"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(m.channels) != 1 || m.channels[0] != "C123" {
		t.Errorf("posted to %v, want [C123]", m.channels)
	}
}

func TestSend_Error(t *testing.T) {
	a := NewWithClient(&mockClient{fail: true}, "C123")
	if err := a.Send(context.Background(), "digest"); err == nil {
		t.Error("Send should surface the API error")
	}
}
