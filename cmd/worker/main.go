// The worker binary runs the refund reconciliation loop on its own, for
// deployments that keep it off the API instances.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"takeout/config"
	"takeout/infrastructure/persistence/mysql"
	"takeout/pkg/logger"
	"takeout/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Worker startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Worker.Enabled {
		logger.Info("Reconciliation worker is disabled by config; exiting")
		return nil
	}

	db, err := mysql.Connect(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	w, err := worker.NewReconciliationWorker(mysql.NewOrderRepository(db), cfg.Worker.PollInterval)
	if err != nil {
		return fmt.Errorf("failed to create reconciliation worker: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Reconciliation worker started",
		zap.Duration("poll_interval", cfg.Worker.PollInterval))

	if err := w.Run(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("reconciliation worker exited with error: %w", err)
	}

	logger.Info("Reconciliation worker stopped")
	return nil
}
