// Package runner drives one archive-and-retire pass: discovery, per-file
// compression, the retention sweep, and the run accounting. The dry-run
// flag threads through every mutating step so a run can be previewed
// with the identical selection logic.
package runner

import (
	"context"
	"time"

	"github.com/PhilCANDIDO/logs-archiver/internal/archive"
	"github.com/PhilCANDIDO/logs-archiver/internal/config"
	"github.com/PhilCANDIDO/logs-archiver/internal/fs"
	"github.com/PhilCANDIDO/logs-archiver/internal/logging"
	"github.com/PhilCANDIDO/logs-archiver/internal/pattern"
	"github.com/PhilCANDIDO/logs-archiver/internal/selector"
	"github.com/PhilCANDIDO/logs-archiver/internal/stats"
	"github.com/PhilCANDIDO/logs-archiver/internal/sweep"
)

// Runner executes the pipeline for a fixed configuration. Safe to call
// Run repeatedly; each pass recomputes its work set from the filesystem.
type Runner struct {
	cfg   *config.Config
	log   logging.Logger
	fs    fs.FS
	clock selector.Clock
}

// New creates a runner. A nil filesystem selects the default OS
// implementation; a nil clock selects time.Now.
func New(cfg *config.Config, log logging.Logger, filesystem fs.FS, clock selector.Clock) *Runner {
	if filesystem == nil {
		filesystem = fs.New()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Runner{cfg: cfg, log: log, fs: filesystem, clock: clock}
}

// Run performs one full pass and returns its accounting. Per-file
// failures are counted, logged and skipped; only a failure to scan the
// source tree is returned as an error.
func (r *Runner) Run(ctx context.Context) (*stats.Run, error) {
	run := &stats.Run{
		SrcPath:       r.cfg.SrcPath,
		SrcPattern:    r.cfg.SrcPattern,
		DstPath:       r.cfg.DstPath,
		Retention:     r.cfg.Retention,
		CompressLevel: r.cfg.CompressLevel,
		DryRun:        r.cfg.DryRun,
		Started:       r.clock(),
	}
	defer func() { run.Finished = r.clock() }()

	tmpl, err := pattern.Parse(r.cfg.SrcPattern)
	if err != nil {
		return run, err
	}

	pred := selector.Cutoff(r.cfg.Retention, r.clock)

	files, err := selector.EligibleFiles(r.cfg.SrcPath, tmpl, pred)
	if err != nil {
		return run, err
	}

	if len(files) == 0 {
		// Nothing eligible; skip the sweep too so retention actions
		// are never taken vacuously.
		r.log.Info("no eligible files", "path", r.cfg.SrcPath, "pattern", r.cfg.SrcPattern)
		return run, nil
	}

	r.log.Info("archiving", "eligible", len(files), "retention", r.cfg.Retention, "dryRun", r.cfg.DryRun)

	arch := archive.New(r.cfg.SrcPath, r.cfg.DstPath, r.cfg.CompressLevel, r.cfg.DryRun, r.fs, r.log)

	for _, f := range files {
		if ctx.Err() != nil {
			return run, ctx.Err()
		}

		res, err := arch.Archive(ctx, f)
		if err != nil {
			// One bad file must not stop archival of the remaining set.
			r.log.Error("archive failed", "source", f.Path, "error", err)
			run.AddFailure()
			continue
		}
		run.AddArchive(res.BytesBefore, res.BytesAfter)
	}

	sw := sweep.New(r.cfg.SrcPath, r.cfg.DstPath, r.cfg.DryRun, r.fs, r.log)
	out, err := sw.Sweep(ctx, tmpl, pred)
	if err != nil {
		return run, err
	}
	run.Deleted = out.Deleted
	run.DeleteFailed = out.Failed
	run.SkippedNoArtifact = out.SkippedNoArtifact
	run.PrunedDirs = out.PrunedDirs

	return run, nil
}
