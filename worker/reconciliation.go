// Package worker holds the refund reconciliation worker. Refund
// execution is external to this system; the worker's job is to keep the
// outstanding obligations visible until the external process clears them.
package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"takeout/domain/order"
	"takeout/pkg/logger"
)

// ReconciliationWorker periodically counts orders still flagged for
// refund and surfaces the backlog in the log.
type ReconciliationWorker struct {
	orders       order.Repository
	pollInterval time.Duration
}

// NewReconciliationWorker creates the worker.
func NewReconciliationWorker(orders order.Repository, pollInterval time.Duration) (*ReconciliationWorker, error) {
	if orders == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if pollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	return &ReconciliationWorker{
		orders:       orders,
		pollInterval: pollInterval,
	}, nil
}

// Run polls until the context is cancelled.
func (w *ReconciliationWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.poll(ctx); err != nil {
				logger.Error("Refund reconciliation poll failed", zap.Error(err))
			}
		}
	}
}

func (w *ReconciliationWorker) poll(ctx context.Context) error {
	pending, err := w.orders.CountRefundPending(ctx)
	if err != nil {
		return err
	}
	if pending > 0 {
		logger.Warn("Refund obligations outstanding", zap.Int64("count", pending))
	}
	return nil
}
