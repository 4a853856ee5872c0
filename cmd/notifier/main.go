package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/notifykit/notifier/modules/notifier"
	"github.com/notifykit/notifier/pkg/config"
	"github.com/notifykit/notifier/pkg/logger"
)

func main() {
	var logCfg logger.Config
	if err := config.Load(&logCfg); err != nil {
		slog.Error("failed to load logger config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.NewFromConfig(logCfg, logger.WithService("notifier"))
	logger.SetAsDefault(log)

	svc, err := notifier.New(log)
	if err != nil {
		log.Error("failed to build service", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Run(ctx); err != nil {
		log.Error("service stopped with error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("service stopped")
}
