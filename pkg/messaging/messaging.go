package messaging

import (
	"context"
)

// Handler processes one inbound message. topic is the subscription topic
// the message was delivered on. A non-nil error triggers the transport's
// redelivery mechanism; nil acknowledges the message.
type Handler func(ctx context.Context, topic string, payload []byte) error

// Publisher sends a payload to a topic. Implementations wrap the payload in
// the outbound Envelope before handing it to the transport.
type Publisher interface {
	Publish(ctx context.Context, topic string, data any, opts ...PublishOption) error
}

// Subscriber consumes messages from a set of topics. Not every provider
// implements it: in sidecar mode inbound delivery arrives over HTTP push
// instead.
type Subscriber interface {
	Subscribe(ctx context.Context, topics []string, handler Handler) error
}

// Provider is one interchangeable messaging transport. The provider is
// selected once at process start and kept for the process lifetime.
type Provider interface {
	Publisher

	// Name returns the provider identifier for logs and diagnostics.
	Name() string

	// Close releases all transport resources. Safe to call even when no
	// resource was ever created, and safe to call more than once.
	Close(ctx context.Context) error
}

// AsSubscriber reports whether the provider supports direct consumption.
func AsSubscriber(p Provider) (Subscriber, bool) {
	s, ok := p.(Subscriber)
	return s, ok
}

// publishOptions collects per-publish settings.
type publishOptions struct {
	correlationID string
	contentType   string
}

// PublishOption configures a single publish call.
type PublishOption func(*publishOptions)

// WithCorrelationID attaches a cross-service correlation id to the outbound
// envelope. When set it also becomes the envelope id, coupling idempotency
// keys to the message identity.
func WithCorrelationID(id string) PublishOption {
	return func(o *publishOptions) {
		o.correlationID = id
	}
}

// WithContentType overrides the payload content type (default
// application/json).
func WithContentType(ct string) PublishOption {
	return func(o *publishOptions) {
		if ct != "" {
			o.contentType = ct
		}
	}
}

func applyPublishOptions(opts []PublishOption) publishOptions {
	options := publishOptions{contentType: "application/json"}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
