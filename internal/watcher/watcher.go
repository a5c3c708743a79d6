// Package watcher observes the source root and posts a trigger whenever
// its contents change, so a long-running archiver can react to new log
// partitions without a schedule.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/PhilCANDIDO/logs-archiver/internal/config"
	"github.com/PhilCANDIDO/logs-archiver/internal/fsprobe"
	"github.com/PhilCANDIDO/logs-archiver/internal/logging"
	"github.com/PhilCANDIDO/logs-archiver/internal/mailbox"
)

// Trigger is posted to the mailbox when the source tree changed.
type Trigger struct {
	At time.Time
}

// Watcher posts triggers for one source directory.
type Watcher struct {
	dir      string
	mode     string
	interval time.Duration
	debounce time.Duration

	log logging.Logger
	mb  *mailbox.Mailbox[Trigger]
}

// New creates a watcher from the watch configuration.
func New(cfg config.WatchConfig, dir string, log logging.Logger, mb *mailbox.Mailbox[Trigger]) *Watcher {
	return &Watcher{
		dir:      dir,
		mode:     cfg.Mode,
		interval: cfg.PollInterval,
		debounce: cfg.DebounceWindow,
		log:      log,
		mb:       mb,
	}
}

// Start chooses the watching strategy based on configuration and blocks
// until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	switch w.mode {
	case "fsnotify":
		return w.startFsNotify(ctx)

	case "poll":
		w.startPolling(ctx)
		return nil

	case "auto":
		res := fsprobe.Probe(w.dir)
		if res.FsnotifySupported {
			return w.startFsNotify(ctx)
		}
		w.log.Warn("fsnotify disabled, polling instead", "reason", res.Reason)
		w.startPolling(ctx)
		return nil

	default:
		return fmt.Errorf("unknown watch mode %q", w.mode)
	}
}
