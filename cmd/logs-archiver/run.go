package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/PhilCANDIDO/logs-archiver/internal/config"
	"github.com/PhilCANDIDO/logs-archiver/internal/logging"
	"github.com/PhilCANDIDO/logs-archiver/internal/mailbox"
	"github.com/PhilCANDIDO/logs-archiver/internal/runner"
	"github.com/PhilCANDIDO/logs-archiver/internal/schedule"
	"github.com/PhilCANDIDO/logs-archiver/internal/watcher"
)

func run(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(logging.Options{
		Dir:      cfg.LogPath,
		Disabled: cfg.NoLog,
		Verbose:  cfg.Verbose,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	if pruned, err := logging.PruneRunLogs(cfg.LogPath, cfg.LogRetention, time.Now()); err != nil {
		log.Warn("pruning old run logs", "error", err)
	} else if pruned > 0 {
		log.Debug("pruned old run logs", "count", pruned)
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r := runner.New(cfg, log, nil, nil)

	switch {
	case cfg.CronSchedule != "":
		// A failed scheduled pass is logged and the scheduler keeps
		// running; the next tick retries from scratch.
		return schedule.Run(ctx, cfg.CronSchedule, log, func(ctx context.Context) {
			_ = runOnce(ctx, r, log)
		})

	case cfg.Watch.Enabled:
		return runWatch(ctx, cfg, r, log)

	default:
		return runOnce(ctx, r, log)
	}
}

// runOnce executes one pipeline pass and prints the summary. Per-file
// failures are already accounted inside the run and do not change the
// exit code; a run-level failure (the pipeline could not complete) is
// returned so one-shot invocations exit non-zero.
func runOnce(ctx context.Context, r *runner.Runner, log logging.Logger) error {
	run, err := r.Run(ctx)
	if run != nil {
		fmt.Print(run.Summary())
	}
	if err != nil {
		log.Error("run aborted", "error", err)
		return err
	}
	return nil
}

// runWatch blocks, re-running the pipeline each time the watcher posts
// a trigger, until the context is cancelled.
func runWatch(ctx context.Context, cfg *config.Config, r *runner.Runner, log logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mb := mailbox.New[watcher.Trigger]()
	w := watcher.New(cfg.Watch, cfg.SrcPath, log, mb)

	var watchErr error
	go func() {
		if err := w.Start(ctx); err != nil {
			watchErr = err
			log.Error("watcher stopped", "error", err)
			cancel()
		}
	}()

	log.Info("watching", "path", cfg.SrcPath, "mode", cfg.Watch.Mode)

	for {
		trig, ok := mb.Take(ctx)
		if !ok {
			log.Info("shutting down")
			return watchErr
		}
		log.Debug("triggered", "at", trig.At)
		// Watch mode stays up across failed passes; the next trigger
		// re-runs the pipeline from scratch.
		_ = runOnce(ctx, r, log)
	}
}
