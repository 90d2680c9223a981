package notifier

import (
	"context"
	"errors"
)

// ErrDeliveryFailure wraps transport-level send failures so callers can
// classify them without knowing the channel.
var ErrDeliveryFailure = errors.New("notification delivery failure")

// Notifier delivers a message to a chat. Delivery is at most once: the
// caller records the message as sent before calling, so implementations
// must not retry past their own transport budget.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// Multi fans a notification out to several channels. The first channel is
// the primary; failures on secondary channels are collected but do not mask
// a primary success.
type Multi struct {
	channels []Notifier
}

// NewMulti builds a fan-out notifier
func NewMulti(channels ...Notifier) *Multi {
	return &Multi{channels: channels}
}

// Notify sends to every channel and joins any errors
func (m *Multi) Notify(ctx context.Context, chatID int64, text string) error {
	var errs []error
	for _, ch := range m.channels {
		if err := ch.Notify(ctx, chatID, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
