package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/notifykit/notifier/pkg/logger"
	"github.com/notifykit/notifier/pkg/messaging"
	"github.com/notifykit/notifier/pkg/pipeline"
)

// Consumer bridges a messaging Subscriber to the pipeline for broker mode.
// A pipeline panic is converted into a handler error so the transport nacks
// and redelivers instead of the consume loop dying.
type Consumer struct {
	sub  messaging.Subscriber
	proc *pipeline.Processor
	log  *slog.Logger
}

// NewConsumer creates a Consumer over the given subscriber.
func NewConsumer(sub messaging.Subscriber, proc *pipeline.Processor, log *slog.Logger) *Consumer {
	if log == nil {
		log = slog.Default()
	}
	return &Consumer{sub: sub, proc: proc, log: log}
}

// Run subscribes to the dispatcher's topic list and blocks until ctx is
// cancelled or the subscription fails.
func (c *Consumer) Run(ctx context.Context) error {
	return c.sub.Subscribe(ctx, Topics, c.handle)
}

func (c *Consumer) handle(ctx context.Context, topic string, payload []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing event: %v", r)
			c.log.LogAttrs(ctx, slog.LevelError, "pipeline panicked",
				logger.Topic(topic),
				logger.Error(err),
			)
		}
	}()
	return c.proc.Process(ctx, payload, topic)
}
