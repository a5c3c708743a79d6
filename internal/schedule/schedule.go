// Package schedule runs the archive pipeline on a recurring cron
// schedule until the context is cancelled.
package schedule

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/PhilCANDIDO/logs-archiver/internal/logging"
)

// Run registers job under the given standard cron expression and blocks
// until ctx is cancelled, then waits for an in-flight job to finish.
func Run(ctx context.Context, expr string, log logging.Logger, job func(context.Context)) error {
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", expr, err)
	}

	c := cron.New()
	if _, err := c.AddFunc(expr, func() {
		log.Info("scheduled run starting", "schedule", expr)
		job(ctx)
	}); err != nil {
		return fmt.Errorf("registering schedule: %w", err)
	}

	c.Start()
	log.Info("scheduler started", "schedule", expr)

	<-ctx.Done()

	// Stop returns a context that completes once running jobs drain.
	<-c.Stop().Done()
	log.Info("scheduler stopped")
	return nil
}
