// Package notify fans completion digests out to chat adapters. Digests are a
// courtesy surface: a failed send is logged and never fails the job that
// produced it.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Adapter posts one text message to a chat destination.
type Adapter interface {
	Name() string
	Send(ctx context.Context, text string) error
}

// Notifier broadcasts to a set of adapters.
type Notifier struct {
	adapters []Adapter
	log      zerolog.Logger
}

// New creates a Notifier over the given adapters.
func New(log zerolog.Logger, adapters ...Adapter) *Notifier {
	return &Notifier{adapters: adapters, log: log}
}

// Enabled reports whether any adapter is configured.
func (n *Notifier) Enabled() bool {
	return len(n.adapters) > 0
}

// Broadcast sends text to every adapter, logging failures and carrying on.
func (n *Notifier) Broadcast(ctx context.Context, text string) {
	for _, a := range n.adapters {
		if err := a.Send(ctx, text); err != nil {
			n.log.Warn().Str("adapter", a.Name()).Err(err).Msg("digest send failed")
			continue
		}
		n.log.Debug().Str("adapter", a.Name()).Msg("digest sent")
	}
}
