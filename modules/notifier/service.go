package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/notifykit/notifier/pkg/config"
	"github.com/notifykit/notifier/pkg/dispatch"
	"github.com/notifykit/notifier/pkg/envelope"
	"github.com/notifykit/notifier/pkg/httpserver"
	"github.com/notifykit/notifier/pkg/logger"
	"github.com/notifykit/notifier/pkg/messaging"
	"github.com/notifykit/notifier/pkg/outcome"
	"github.com/notifykit/notifier/pkg/pipeline"
	"github.com/notifykit/notifier/pkg/templates"
)

// Config holds the service-level settings not owned by a component package.
type Config struct {
	// ShutdownTimeout bounds the messaging provider close on shutdown.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Service wires the notification pipeline to its transport and delivery
// collaborators and runs the inbound surfaces.
type Service struct {
	cfg        Config
	httpCfg    httpserver.Config
	provider   messaging.Provider
	proc       *pipeline.Processor
	pubsubName string
	log        *slog.Logger
}

// New builds the service from environment configuration: transport
// provider, template catalog, delivery sender, and the processing pipeline.
func New(log *slog.Logger) (*Service, error) {
	if log == nil {
		log = slog.Default()
	}

	var svcCfg Config
	if err := config.Load(&svcCfg); err != nil {
		return nil, fmt.Errorf("load service config: %w", err)
	}
	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return nil, fmt.Errorf("load http config: %w", err)
	}
	var msgCfg messaging.Config
	if err := config.Load(&msgCfg); err != nil {
		return nil, fmt.Errorf("load messaging config: %w", err)
	}
	var dspCfg dispatch.Config
	if err := config.Load(&dspCfg); err != nil {
		return nil, fmt.Errorf("load dispatch config: %w", err)
	}

	provider, err := messaging.Resolve(msgCfg, log)
	if err != nil {
		return nil, fmt.Errorf("resolve messaging provider: %w", err)
	}

	registry := templates.NewRegistry()
	if err := templates.LoadDefaultCatalog(registry); err != nil {
		return nil, fmt.Errorf("load template catalog: %w", err)
	}

	sender, err := dispatch.NewSender(dspCfg)
	if err != nil {
		return nil, fmt.Errorf("construct delivery sender: %w", err)
	}

	proc := pipeline.NewProcessor(
		envelope.NewNormalizer(envelope.WithNormalizerLogger(log)),
		registry,
		dispatch.NewDispatcher(sender, dspCfg.Enabled, dispatch.WithDispatcherLogger(log)),
		outcome.NewPublisher(provider, outcome.WithPublisherLogger(log)),
		pipeline.WithProcessorLogger(log),
	)

	return &Service{
		cfg:        svcCfg,
		httpCfg:    httpCfg,
		provider:   provider,
		proc:       proc,
		pubsubName: msgCfg.SidecarPubsubName,
		log:        log,
	}, nil
}

// Processor exposes the wired pipeline, mainly for tests.
func (s *Service) Processor() *pipeline.Processor {
	return s.proc
}

// Run starts the inbound surfaces and blocks until ctx is cancelled or one
// of them fails. The HTTP surface always runs; the broker consumer runs
// only when the selected provider supports direct consumption. Shutdown
// closes the messaging provider after both surfaces stop.
func (s *Service) Run(ctx context.Context) error {
	s.log.LogAttrs(ctx, slog.LevelInfo, "starting notification dispatcher",
		logger.Provider(s.provider.Name()),
	)

	g, ctx := errgroup.WithContext(ctx)

	srv := httpserver.NewFromConfig(s.httpCfg, httpserver.WithLogger(s.log))
	g.Go(func() error {
		return srv.Run(ctx, Router(s.proc, s.pubsubName, s.log))
	})

	if sub, ok := messaging.AsSubscriber(s.provider); ok {
		consumer := NewConsumer(sub, s.proc, s.log)
		g.Go(func() error {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	err := g.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if closeErr := s.provider.Close(closeCtx); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}
