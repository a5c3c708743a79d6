// Package archive compresses source files into the destination tree
// with an atomic temp-then-rename discipline. A file at the final
// artifact path is always complete and valid; failures never leave a
// partial artifact visible there.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PhilCANDIDO/logs-archiver/internal/fs"
	"github.com/PhilCANDIDO/logs-archiver/internal/logging"
	"github.com/PhilCANDIDO/logs-archiver/internal/pattern"
	"github.com/PhilCANDIDO/logs-archiver/internal/selector"
)

// Result reports the measured (or, in dry-run mode, estimated) sizes of
// one archived file.
type Result struct {
	Source      string
	Artifact    string
	BytesBefore int64
	BytesAfter  int64
	Estimated   bool
}

// Archiver compresses files from the source tree into the destination
// tree, mirroring the directory structure.
type Archiver struct {
	srcRoot string
	dstRoot string
	level   int
	dryRun  bool
	fs      fs.FS
	log     logging.Logger
}

// New creates an archiver. A nil filesystem selects the default OS
// implementation.
func New(srcRoot, dstRoot string, level int, dryRun bool, filesystem fs.FS, log logging.Logger) *Archiver {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Archiver{
		srcRoot: srcRoot,
		dstRoot: dstRoot,
		level:   level,
		dryRun:  dryRun,
		fs:      filesystem,
		log:     log,
	}
}

// estimatedReduction is the assumed gzip reduction for dry-run size
// figures. Plain-text logs typically shrink by about 85%. Dry-run
// output always labels these numbers as estimates.
const estimatedReduction = 0.85

// Archive compresses one source file into its artifact path.
//
// Steps, each independently fallible: ensure the destination's parent
// directory exists, compress into a temporary file colocated with the
// final destination, rename the temporary onto the final path, stat the
// artifact for its size. In dry-run mode nothing on disk changes and
// the returned sizes are estimates.
func (a *Archiver) Archive(ctx context.Context, src selector.File) (Result, error) {
	dst := pattern.DestinationFor(a.srcRoot, a.dstRoot, src.Path)

	if a.dryRun {
		after := int64(float64(src.Size) * (1 - estimatedReduction))
		a.log.Info("would compress", "source", src.Path, "artifact", dst)
		return Result{
			Source:      src.Path,
			Artifact:    dst,
			BytesBefore: src.Size,
			BytesAfter:  after,
			Estimated:   true,
		}, nil
	}

	if err := a.fs.MkdirAll(filepath.Dir(dst)); err != nil {
		return Result{}, fmt.Errorf("creating artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return Result{}, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := a.compress(ctx, src.Path, tmpPath); err != nil {
		_ = a.fs.Remove(tmpPath)
		return Result{}, err
	}

	if err := a.fs.Rename(ctx, tmpPath, dst); err != nil {
		_ = a.fs.Remove(tmpPath)
		return Result{}, fmt.Errorf("finalizing artifact: %w", err)
	}

	st, err := a.fs.Stat(dst)
	if err != nil {
		return Result{}, fmt.Errorf("stat artifact: %w", err)
	}

	a.log.Debug("compressed", "source", src.Path, "artifact", dst,
		"before", src.Size, "after", st.Size)

	return Result{
		Source:      src.Path,
		Artifact:    dst,
		BytesBefore: src.Size,
		BytesAfter:  st.Size,
	}, nil
}

// Ratio returns the compression ratio of one result in percent, guarded
// against a zero-length source.
func (r Result) Ratio() float64 {
	if r.BytesBefore == 0 {
		return 0
	}
	return float64(r.BytesBefore-r.BytesAfter) / float64(r.BytesBefore) * 100
}
