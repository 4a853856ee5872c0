package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/notifykit/notifier/pkg/logger"
)

// BrokerProvider publishes and consumes through a direct connection to a
// topic-exchange broker. The connection and channel are created lazily on
// first use and reused for the process lifetime; a failed publish drops the
// cached connection so the next attempt reconnects.
type BrokerProvider struct {
	url      string
	exchange string
	queue    string
	source   string
	log      *slog.Logger

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

// NewBrokerProvider creates a broker-backed provider. No connection is
// opened until the first publish or subscribe.
func NewBrokerProvider(cfg Config, log *slog.Logger) (*BrokerProvider, error) {
	if cfg.BrokerURL == "" {
		return nil, fmt.Errorf("%w: BrokerURL is required", ErrInvalidConfig)
	}
	if cfg.BrokerExchange == "" {
		return nil, fmt.Errorf("%w: BrokerExchange is required", ErrInvalidConfig)
	}
	if cfg.BrokerQueue == "" {
		return nil, fmt.Errorf("%w: BrokerQueue is required", ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	return &BrokerProvider{
		url:      cfg.BrokerURL,
		exchange: cfg.BrokerExchange,
		queue:    cfg.BrokerQueue,
		source:   cfg.ServiceName,
		log:      log,
	}, nil
}

// Name implements Provider.
func (p *BrokerProvider) Name() string { return string(KindBroker) }

// channel returns the cached channel, dialing and declaring the durable
// topic exchange on first use. Callers hold no lock; initialization happens
// exactly once per connection regardless of concurrent callers.
func (p *BrokerProvider) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if p.ch != nil {
		return p.ch, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p.conn = conn
	p.ch = ch
	return ch, nil
}

// drop discards the cached connection after a connection-level error so the
// next publish attempt reconnects.
func (p *BrokerProvider) drop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Publish sends the enveloped payload to the topic exchange with the
// persistence flag set and the correlation id attached as message metadata.
func (p *BrokerProvider) Publish(ctx context.Context, topic string, data any, opts ...PublishOption) error {
	env := NewEnvelope(topic, p.source, data, applyPublishOptions(opts))

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%w: marshal envelope: %w", ErrPublishFailed, err)
	}

	ch, err := p.channel()
	if err != nil {
		p.log.LogAttrs(ctx, slog.LevelError, "broker connection failed",
			logger.Topic(topic),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	err = ch.PublishWithContext(ctx, p.exchange, topic, false, false, amqp.Publishing{
		ContentType:   env.ContentType,
		DeliveryMode:  amqp.Persistent,
		MessageId:     env.ID,
		CorrelationId: env.CorrelationID,
		Timestamp:     time.Now(),
		Body:          body,
	})
	if err != nil {
		p.log.LogAttrs(ctx, slog.LevelError, "broker publish failed, dropping cached connection",
			logger.Topic(topic),
			logger.Error(err),
		)
		p.drop()
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// Subscribe declares a durable queue for this service, binds it to every
// topic of interest, and consumes with a prefetch of one so a single
// message is in flight at a time. Messages are acknowledged only on handler
// success; handler failure negatively acknowledges with requeue, making the
// message immediately eligible for redelivery.
//
// Subscribe blocks until ctx is cancelled or the delivery channel closes.
func (p *BrokerProvider) Subscribe(ctx context.Context, topics []string, handler Handler) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set prefetch: %w", err)
	}

	q, err := ch.QueueDeclare(p.queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	for _, topic := range topics {
		if err := ch.QueueBind(q.Name, topic, p.exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue to %q: %w", topic, err)
		}
	}

	deliveries, err := ch.Consume(q.Name, p.source, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	p.log.LogAttrs(ctx, slog.LevelInfo, "broker consumer started",
		slog.String("queue", q.Name),
		slog.Any("topics", topics),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			p.handleDelivery(ctx, d, handler)
		}
	}
}

// handleDelivery invokes the handler for one message. Producers on this
// transport don't embed the event type in the body, so the routing key is
// attached as the message's type field before handling.
func (p *BrokerProvider) handleDelivery(ctx context.Context, d amqp.Delivery, handler Handler) {
	body := attachType(d.Body, d.RoutingKey)

	if err := handler(ctx, d.RoutingKey, body); err != nil {
		p.log.LogAttrs(ctx, slog.LevelWarn, "handler failed, requeueing message",
			logger.Topic(d.RoutingKey),
			logger.Error(err),
		)
		if nackErr := d.Nack(false, true); nackErr != nil {
			p.log.LogAttrs(ctx, slog.LevelError, "failed to nack message",
				logger.Topic(d.RoutingKey),
				logger.Error(nackErr),
			)
		}
		return
	}

	if ackErr := d.Ack(false); ackErr != nil {
		p.log.LogAttrs(ctx, slog.LevelError, "failed to ack message",
			logger.Topic(d.RoutingKey),
			logger.Error(ackErr),
		)
	}
}

// attachType sets the type field on a JSON object body to the routing key
// when the producer omitted it. Non-object bodies are returned unchanged.
func attachType(body []byte, routingKey string) []byte {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return body
	}
	if _, ok := payload["type"]; ok {
		return body
	}

	payload["type"] = routingKey
	patched, err := json.Marshal(payload)
	if err != nil {
		return body
	}
	return patched
}

// Close shuts the channel and connection down. Safe to call with no
// connection ever opened, and safe to call more than once.
func (p *BrokerProvider) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.conn = nil
			return err
		}
		p.conn = nil
	}
	return nil
}
