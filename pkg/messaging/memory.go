package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

// PublishedMessage records one publish observed by the MemoryProvider.
type PublishedMessage struct {
	Topic    string
	Envelope Envelope
}

type memorySubscription struct {
	topics  []string
	handler Handler
}

// MemoryProvider is an in-process transport used by tests and local
// development. Published envelopes are recorded for inspection and
// dispatched synchronously to matching subscribers. All methods are safe
// for concurrent use.
type MemoryProvider struct {
	mu        sync.RWMutex
	published []PublishedMessage
	subs      []memorySubscription
	closed    bool
}

// NewMemoryProvider creates an in-process provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

// Name implements Provider.
func (p *MemoryProvider) Name() string { return string(KindMemory) }

// Publish records the enveloped payload and synchronously invokes every
// subscriber bound to the topic. Subscriber errors are swallowed: the
// in-process bus has no redelivery mechanism.
func (p *MemoryProvider) Publish(ctx context.Context, topic string, data any, opts ...PublishOption) error {
	env := NewEnvelope(topic, "memory", data, applyPublishOptions(opts))

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%w: marshal envelope: %w", ErrPublishFailed, err)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.published = append(p.published, PublishedMessage{Topic: topic, Envelope: env})
	subs := slices.Clone(p.subs)
	p.mu.Unlock()

	for _, sub := range subs {
		if slices.Contains(sub.topics, topic) {
			_ = sub.handler(ctx, topic, body)
		}
	}
	return nil
}

// Subscribe registers the handler for the given topics and blocks until ctx
// is cancelled, mirroring the blocking consume loop of the broker variant.
func (p *MemoryProvider) Subscribe(ctx context.Context, topics []string, handler Handler) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.subs = append(p.subs, memorySubscription{topics: topics, handler: handler})
	p.mu.Unlock()

	<-ctx.Done()
	return ctx.Err()
}

// Published returns a copy of all recorded publishes.
func (p *MemoryProvider) Published() []PublishedMessage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.published)
}

// PublishedTo returns the recorded publishes for one topic.
func (p *MemoryProvider) PublishedTo(topic string) []PublishedMessage {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []PublishedMessage
	for _, m := range p.published {
		if m.Topic == topic {
			out = append(out, m)
		}
	}
	return out
}

// SubscriberCount returns the number of registered subscriptions.
func (p *MemoryProvider) SubscriberCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs)
}

// Reset clears all recorded publishes.
func (p *MemoryProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = nil
}

// Close marks the provider closed. Further publishes fail with ErrClosed.
func (p *MemoryProvider) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
