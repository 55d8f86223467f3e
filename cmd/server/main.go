package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/occupation-insights/internal/config"
	"github.com/honeycarbs/occupation-insights/internal/mcp"
	"github.com/honeycarbs/occupation-insights/pkg/logging"
	"github.com/honeycarbs/occupation-insights/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	res, cleanup, err := mcp.InitializeResources(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}

	srv := mcp.NewServer(logger, cfg, res)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = shutdown.Graceful(
			context.Background(),
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			10*time.Second,
			logger,
			srv,
			shutdown.StopFunc(func(context.Context) error {
				cleanup()
				return nil
			}),
		)
	}()

	logger.Info("server initialized and starting",
		"backend", cfg.Backend.BaseURL,
		"dataset", cfg.Results.DatasetPath,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server exited with error", "err", err)
		cleanup()
		os.Exit(1)
	}

	<-stopped
	logger.Info("server stopped")
}
