// Package sweep deletes source files whose archive artifact exists and
// prunes the directories that empty out as a result. A file is only
// ever deleted against a fresh filesystem check of its artifact, never
// against cached state from an earlier step, so a sweep can be re-run
// or run standalone after an archive-only invocation.
package sweep

import (
	"context"

	"github.com/PhilCANDIDO/logs-archiver/internal/fs"
	"github.com/PhilCANDIDO/logs-archiver/internal/logging"
	"github.com/PhilCANDIDO/logs-archiver/internal/pattern"
	"github.com/PhilCANDIDO/logs-archiver/internal/selector"
)

// Outcome summarizes one sweep pass.
type Outcome struct {
	Deleted           int
	Failed            int
	SkippedNoArtifact int
	PrunedDirs        int
}

// Sweeper removes archived source files past the retention cutoff.
type Sweeper struct {
	srcRoot string
	dstRoot string
	dryRun  bool
	fs      fs.FS
	log     logging.Logger
}

// New creates a sweeper. A nil filesystem selects the default OS
// implementation.
func New(srcRoot, dstRoot string, dryRun bool, filesystem fs.FS, log logging.Logger) *Sweeper {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Sweeper{
		srcRoot: srcRoot,
		dstRoot: dstRoot,
		dryRun:  dryRun,
		fs:      filesystem,
		log:     log,
	}
}

// Sweep re-scans the source tree for files at or past the cutoff and
// deletes each one whose artifact currently exists on disk. Files whose
// artifact is absent (or empty, which a complete gzip artifact never
// is) are left in place and surfaced as warnings. Afterwards,
// directories left empty under the source root are pruned deepest-first.
func (s *Sweeper) Sweep(ctx context.Context, tmpl *pattern.Template, pred selector.Predicate) (Outcome, error) {
	files, err := selector.EligibleFiles(s.srcRoot, tmpl, pred)
	if err != nil {
		return Outcome{}, err
	}

	var out Outcome

	// removed tracks paths deleted (or, in dry-run mode, paths that
	// would be deleted) so directory pruning can preview correctly.
	removed := make(map[string]bool)

	for _, f := range files {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}

		artifact := pattern.DestinationFor(s.srcRoot, s.dstRoot, f.Path)

		st, err := s.fs.Stat(artifact)
		if err != nil || st.Size == 0 {
			s.log.Warn("keeping source, artifact missing", "source", f.Path, "artifact", artifact)
			out.SkippedNoArtifact++
			continue
		}

		if s.dryRun {
			s.log.Info("would delete", "source", f.Path)
			removed[f.Path] = true
			out.Deleted++
			continue
		}

		if err := s.fs.Remove(f.Path); err != nil {
			s.log.Error("delete failed", "source", f.Path, "error", err)
			out.Failed++
			continue
		}

		s.log.Debug("deleted", "source", f.Path)
		removed[f.Path] = true
		out.Deleted++
	}

	pruned, err := s.pruneEmptyDirs(removed)
	if err != nil {
		s.log.Error("pruning empty directories", "error", err)
	}
	out.PrunedDirs = pruned

	return out, nil
}
