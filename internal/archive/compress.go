package archive

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/PhilCANDIDO/logs-archiver/internal/fs"
)

// implements compression with retry and source-change detection.
// If the source file is rotated or rewritten mid-compression the
// attempt is aborted, so the artifact never mixes bytes from two
// generations of the file; the next run picks the file up again.

func (a *Archiver) compress(ctx context.Context, src, tmpPath string) error {
	orig, err := a.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	return fs.Retry(ctx, "compress", func() error {
		now, err := a.fs.Stat(src)
		if err != nil {
			return err
		}

		if sourceChanged(orig, now) {
			return fmt.Errorf("source changed during compression")
		}

		return a.compressOnce(src, tmpPath)
	})
}

func sourceChanged(orig, now fs.FileInfo) bool {
	if now.Inode != 0 && orig.Inode != 0 && now.Inode != orig.Inode {
		return true
	}
	if now.MTime.After(orig.MTime) {
		return true
	}
	if now.Size != orig.Size {
		return true
	}
	return false
}

// compressOnce writes a full gzip stream of src into tmpPath,
// truncating any previous attempt, and syncs before returning.
func (a *Archiver) compressOnce(src, tmpPath string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	gz, err := gzip.NewWriterLevel(out, a.level)
	if err != nil {
		return fmt.Errorf("gzip level %d: %w", a.level, err)
	}

	if _, err := io.Copy(gz, in); err != nil {
		_ = gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	return out.Sync()
}
