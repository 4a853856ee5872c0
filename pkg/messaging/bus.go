package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"

	"github.com/notifykit/notifier/pkg/logger"
)

// BusProvider publishes to named queues or topics on a managed service bus.
// One sender per topic is cached to avoid reconnect overhead; Close
// disposes every cached sender plus the client.
type BusProvider struct {
	source string
	log    *slog.Logger

	mu      sync.Mutex
	client  *azservicebus.Client
	senders map[string]*azservicebus.Sender
	closed  bool
}

// NewBusProvider creates a managed-bus provider.
func NewBusProvider(cfg Config, log *slog.Logger) (*BusProvider, error) {
	if cfg.BusConnectionString == "" {
		return nil, fmt.Errorf("%w: BusConnectionString is required", ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	client, err := azservicebus.NewClientFromConnectionString(cfg.BusConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &BusProvider{
		source:  cfg.ServiceName,
		log:     log,
		client:  client,
		senders: make(map[string]*azservicebus.Sender),
	}, nil
}

// Name implements Provider.
func (p *BusProvider) Name() string { return string(KindBus) }

// sender returns a cached sender for the topic, creating one on first use.
func (p *BusProvider) sender(topic string) (*azservicebus.Sender, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if s, ok := p.senders[topic]; ok {
		return s, nil
	}

	s, err := p.client.NewSender(topic, nil)
	if err != nil {
		return nil, fmt.Errorf("create sender for %q: %w", topic, err)
	}
	p.senders[topic] = s
	return s, nil
}

// Publish sends the enveloped payload to the named queue or topic with the
// correlation id and application properties attached.
func (p *BusProvider) Publish(ctx context.Context, topic string, data any, opts ...PublishOption) error {
	env := NewEnvelope(topic, p.source, data, applyPublishOptions(opts))

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%w: marshal envelope: %w", ErrPublishFailed, err)
	}

	s, err := p.sender(topic)
	if err != nil {
		p.log.LogAttrs(ctx, slog.LevelError, "bus sender creation failed",
			logger.Topic(topic),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	msg := &azservicebus.Message{
		MessageID:   &env.ID,
		Body:        body,
		ContentType: &env.ContentType,
		ApplicationProperties: map[string]any{
			"eventType": topic,
			"source":    p.source,
		},
	}
	if env.CorrelationID != "" {
		msg.CorrelationID = &env.CorrelationID
	}

	if err := s.SendMessage(ctx, msg, nil); err != nil {
		p.log.LogAttrs(ctx, slog.LevelError, "bus publish failed",
			logger.Topic(topic),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// Close disposes all cached senders and the client. Safe to call more than
// once.
func (p *BusProvider) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var firstErr error
	for topic, s := range p.senders {
		if err := s.Close(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close sender for %q: %w", topic, err)
		}
	}
	p.senders = nil

	if err := p.client.Close(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
