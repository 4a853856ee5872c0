package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/notifykit/notifier/pkg/dispatch"
	"github.com/notifykit/notifier/pkg/envelope"
	"github.com/notifykit/notifier/pkg/logger"
	"github.com/notifykit/notifier/pkg/outcome"
	"github.com/notifykit/notifier/pkg/templates"
)

// Processor runs the notification pipeline for one inbound event:
// normalize, resolve and render a template, dispatch delivery, publish the
// outcome. It holds no cross-event state and is safe for concurrent use;
// the messaging provider behind the outcome publisher is the only shared
// resource.
type Processor struct {
	normalizer *envelope.Normalizer
	registry   *templates.Registry
	dispatcher *dispatch.Dispatcher
	outcomes   *outcome.Publisher
	channel    templates.Channel
	log        *slog.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithProcessorLogger sets the pipeline logger.
func WithProcessorLogger(log *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		if log != nil {
			p.log = log
		}
	}
}

// WithChannel overrides the delivery channel used for template resolution.
// Defaults to email, the only channel with a wired sender.
func WithChannel(ch templates.Channel) ProcessorOption {
	return func(p *Processor) {
		if ch.Valid() {
			p.channel = ch
		}
	}
}

// NewProcessor creates a Processor over the given collaborators.
func NewProcessor(
	normalizer *envelope.Normalizer,
	registry *templates.Registry,
	dispatcher *dispatch.Dispatcher,
	outcomes *outcome.Publisher,
	opts ...ProcessorOption,
) *Processor {
	p := &Processor{
		normalizer: normalizer,
		registry:   registry,
		dispatcher: dispatcher,
		outcomes:   outcomes,
		channel:    templates.ChannelEmail,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the pipeline for one raw inbound payload delivered on topic.
//
// A payload with no derivable event type is skipped: logged, dropped, and
// reported as success to the caller, since redelivering a permanently
// malformed message cannot help. Expected delivery failures (transport
// errors, missing recipient, delivery disabled) complete the pipeline
// normally with a failed outcome event. Only genuinely unexpected faults
// return an error, which the transport layer converts into redelivery.
func (p *Processor) Process(ctx context.Context, raw []byte, topic string) error {
	env, err := p.normalizer.Normalize(raw, topic)
	if err != nil {
		if errors.Is(err, envelope.ErrNoEventType) {
			// Skip, not a failure: nothing is published for this event.
			return nil
		}
		return err
	}

	rendered := p.render(env)

	delivery := outcome.Delivery{
		OriginalEventType: env.EventType,
		Channel:           string(p.channel),
		RecipientEmail:    env.UserEmail,
		Subject:           rendered.Subject,
		TraceID:           env.TraceID,
		SpanID:            env.SpanID,
	}

	dispatchErr := p.dispatcher.Dispatch(ctx, dispatch.SendParams{
		To:      env.UserEmail,
		Subject: rendered.Subject,
		Body:    rendered.Body,
		Metadata: map[string]string{
			"event_type": env.EventType,
			"trace_id":   env.TraceID,
		},
	})

	if dispatchErr != nil {
		p.outcomes.Failed(ctx, delivery, failureMessage(dispatchErr))
		p.log.LogAttrs(ctx, slog.LevelWarn, "notification not delivered",
			logger.EventType(env.EventType),
			logger.UserID(env.UserID),
			logger.TraceID(env.TraceID),
			logger.Error(dispatchErr),
		)
		return nil
	}

	p.outcomes.Sent(ctx, delivery)
	p.log.LogAttrs(ctx, slog.LevelInfo, "notification dispatched",
		logger.EventType(env.EventType),
		logger.UserID(env.UserID),
		logger.Channel(string(p.channel)),
		logger.TraceID(env.TraceID),
	)
	return nil
}

// render resolves the template for the event and renders it with the
// overlaid variable set, falling back to the basic notification when no
// template matches. Rendering always produces a result.
func (p *Processor) render(env *envelope.Envelope) templates.Rendered {
	tmpl, ok := p.registry.Resolve(env.EventType, p.channel)
	if !ok {
		return templates.Fallback(env.EventType, env.Data)
	}
	return templates.Render(tmpl, BuildVariables(env))
}

// failureMessage maps dispatch errors to the distinguishable failure
// reasons recorded in outcome events.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, dispatch.ErrNoRecipient):
		return "no recipient address resolved"
	case errors.Is(err, dispatch.ErrDeliveryDisabled):
		return "delivery disabled"
	default:
		return err.Error()
	}
}
