package outcome

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/notifykit/notifier/pkg/logger"
	"github.com/notifykit/notifier/pkg/messaging"
)

// Publisher emits outcome events through the messaging abstraction.
// Publication is best-effort: a failed publish is logged and reported as
// false, never propagated - the delivery result stays authoritative whether
// or not the audit event made it out.
type Publisher struct {
	pub   messaging.Publisher
	log   *slog.Logger
	newID func() string
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithPublisherLogger sets the logger for publish diagnostics.
func WithPublisherLogger(log *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if log != nil {
			p.log = log
		}
	}
}

// WithIDGenerator overrides the notification id source. Intended for tests.
func WithIDGenerator(gen func() string) PublisherOption {
	return func(p *Publisher) {
		if gen != nil {
			p.newID = gen
		}
	}
}

// NewPublisher creates an outcome publisher on top of pub.
func NewPublisher(pub messaging.Publisher, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		pub:   pub,
		log:   slog.Default(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sent publishes a notification.sent event for a successful delivery and
// reports whether the publish itself succeeded.
func (p *Publisher) Sent(ctx context.Context, d Delivery) bool {
	return p.publish(ctx, TopicSent, Event{
		Kind:              KindSent,
		NotificationID:    p.newID(),
		OriginalEventType: d.OriginalEventType,
		Channel:           d.Channel,
		RecipientEmail:    d.RecipientEmail,
		Subject:           d.Subject,
		AttemptNumber:     1,
		TraceID:           d.TraceID,
		SpanID:            d.SpanID,
	})
}

// Failed publishes a notification.failed event carrying the failure reason
// and reports whether the publish itself succeeded.
func (p *Publisher) Failed(ctx context.Context, d Delivery, errorMessage string) bool {
	return p.publish(ctx, TopicFailed, Event{
		Kind:              KindFailed,
		NotificationID:    p.newID(),
		OriginalEventType: d.OriginalEventType,
		Channel:           d.Channel,
		RecipientEmail:    d.RecipientEmail,
		Subject:           d.Subject,
		ErrorMessage:      errorMessage,
		AttemptNumber:     1,
		TraceID:           d.TraceID,
		SpanID:            d.SpanID,
	})
}

func (p *Publisher) publish(ctx context.Context, topic string, event Event) bool {
	err := p.pub.Publish(ctx, topic, event, messaging.WithCorrelationID(event.TraceID))
	if err != nil {
		// Audit is best-effort; the gap is accepted.
		p.log.LogAttrs(ctx, slog.LevelError, "failed to publish outcome event",
			logger.Topic(topic),
			logger.NotificationID(event.NotificationID),
			logger.EventType(event.OriginalEventType),
			logger.Error(err),
		)
		return false
	}

	p.log.LogAttrs(ctx, slog.LevelDebug, "outcome event published",
		logger.Topic(topic),
		logger.NotificationID(event.NotificationID),
	)
	return true
}
