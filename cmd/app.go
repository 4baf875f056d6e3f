// Package cmd assembles the application: configuration, logging, the
// persistence stack, the lifecycle engine and the HTTP server.
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"takeout/api"
	"takeout/api/health"
	orderctl "takeout/api/order"
	reportctl "takeout/api/report"
	orderapp "takeout/application/order"
	reportapp "takeout/application/report"
	"takeout/config"
	"takeout/domain/address"
	"takeout/domain/cart"
	"takeout/domain/notify"
	"takeout/domain/order"
	"takeout/domain/payment"
	"takeout/domain/shared"
	"takeout/domain/user"
	infranotify "takeout/infrastructure/notify"
	infrapayment "takeout/infrastructure/payment"
	"takeout/infrastructure/persistence/memory"
	"takeout/infrastructure/persistence/mysql"
	"takeout/infrastructure/persistence/retry"
	"takeout/pkg/logger"
	"takeout/worker"
)

// App is the assembled application.
type App struct {
	config *config.Config
	router *api.Router
	sqlDB  *sql.DB

	orders   order.Repository
	notifier notify.Notifier
	closers  []func()
}

// NewApp wires the application from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{config: cfg}

	var (
		orders    order.Repository
		items     order.LineItemRepository
		carts     cart.Repository
		addresses address.Provider
		users     user.Repository
		uow       shared.UnitOfWork
	)

	switch cfg.Database.Type {
	case "mysql":
		db, err := mysql.Connect(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		app.sqlDB = sqlDB

		orders = mysql.NewOrderRepository(db)
		items = mysql.NewOrderItemRepository(db)
		carts = mysql.NewCartRepository(db)
		addresses = mysql.NewAddressRepository(db)
		users = mysql.NewUserRepository(db)

		u := mysql.NewUnitOfWork(db)
		u.SetRetryConfig(retry.FromAppConfig(cfg))
		uow = u
	case "memory":
		orders = memory.NewOrderRepository()
		items = memory.NewOrderItemRepository()
		carts = memory.NewCartRepository()
		addresses = memory.NewAddressRepository()
		users = memory.NewUserRepository()
		uow = memory.NewUnitOfWork()
		logger.Warn("Running on the in-memory store; data will not survive a restart")
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.Database.Type)
	}
	app.orders = orders

	var notifier notify.Notifier
	if cfg.AMQP.URL != "" {
		n, err := infranotify.NewAMQPNotifier(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to broker: %w", err)
		}
		app.closers = append(app.closers, n.Close)
		notifier = n
	} else {
		notifier = infranotify.NewLogNotifier()
	}
	app.notifier = notifier

	var initiator payment.Initiator = infrapayment.NewMockGateway()

	orderService := orderapp.NewService(orders, items, carts, addresses, users, initiator, notifier, uow)
	reportService := reportapp.NewService(orders, users)

	healthController := health.NewController(cfg, app.sqlDB)
	userOrderController := orderctl.NewUserController(orderService)
	adminController := orderctl.NewAdminController(orderService)
	reportController := reportctl.NewController(reportService)

	router := api.NewRouter(cfg, healthController, userOrderController, adminController, reportController)
	router.SetupRoutes()
	app.router = router

	return app, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully. The
// reconciliation worker runs alongside the server when enabled.
func (a *App) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if a.config.Worker.Enabled {
		w, err := worker.NewReconciliationWorker(a.orders, a.config.Worker.PollInterval)
		if err != nil {
			return fmt.Errorf("failed to create reconciliation worker: %w", err)
		}
		go func() {
			if err := w.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("Reconciliation worker exited", zap.Error(err))
			}
		}()
	}

	server := &http.Server{
		Addr:         ":" + a.config.Server.Port,
		Handler:      a.router.GetEngine(),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("port", a.config.Server.Port),
			zap.String("env", a.config.App.Env))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	for _, closeFn := range a.closers {
		closeFn()
	}

	logger.Info("Server stopped")
	return nil
}
