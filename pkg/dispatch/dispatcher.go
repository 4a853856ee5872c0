package dispatch

import (
	"context"
	"log/slog"

	"github.com/notifykit/notifier/pkg/logger"
)

// Dispatcher wraps a Sender with the administrative enable flag and
// recipient preconditions. It never panics and never propagates transport
// faults beyond its error return; the pipeline converts errors into failed
// outcome events.
type Dispatcher struct {
	sender  Sender
	enabled bool
	log     *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets the logger for delivery diagnostics.
func WithDispatcherLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher creates a Dispatcher. A nil sender behaves as
// DisabledSender.
func NewDispatcher(sender Sender, enabled bool, opts ...DispatcherOption) *Dispatcher {
	if sender == nil {
		sender = DisabledSender{}
	}
	d := &Dispatcher{
		sender:  sender,
		enabled: enabled,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch attempts one delivery. It returns ErrNoRecipient without
// touching the sender when no recipient is resolvable, ErrDeliveryDisabled
// when delivery is administratively off, and the sender's error otherwise.
// A nil return means the channel accepted the notification.
func (d *Dispatcher) Dispatch(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}
	if !d.enabled {
		return ErrDeliveryDisabled
	}

	if err := d.sender.Send(ctx, params); err != nil {
		d.log.LogAttrs(ctx, slog.LevelError, "notification delivery failed",
			slog.String("recipient", params.To),
			logger.Error(err),
		)
		return err
	}
	return nil
}
