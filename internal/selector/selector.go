// Package selector turns a retention window into an age predicate and
// enumerates the source files that satisfy it.
package selector

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/PhilCANDIDO/logs-archiver/internal/pattern"
)

// Clock supplies the reference time for age comparisons. Injectable so
// tests can use synthetic timestamps instead of touching file metadata.
type Clock func() time.Time

// Predicate decides whether a file with the given modification time is
// eligible for archiving under the current retention window.
type Predicate func(mtime time.Time) bool

// File is a discovered source file.
type File struct {
	Path  string
	Size  int64
	MTime time.Time
}

// AgeDays returns the whole-day age of mtime relative to now, truncated
// toward zero. A file modified later today has age 0; so does a file
// with a modification time in the future.
func AgeDays(now, mtime time.Time) int {
	if mtime.After(now) {
		return 0
	}
	return int(now.Sub(mtime) / (24 * time.Hour))
}

// Cutoff maps a retention window in days to an age predicate.
//
// retention 0 accepts every file. retention 1 accepts files strictly
// older than 0 whole days, i.e. yesterday and earlier. retention N > 1
// accepts files older than N-1 whole days. The 1 case is kept separate
// from the general formula on purpose: folding it in would make 0 and 1
// behave identically, and they must not.
func Cutoff(retentionDays int, clock Clock) Predicate {
	if clock == nil {
		clock = time.Now
	}
	return func(mtime time.Time) bool {
		age := AgeDays(clock(), mtime)
		switch {
		case retentionDays == 0:
			return true
		case retentionDays == 1:
			return age > 0
		default:
			return age > retentionDays-1
		}
	}
}

// EligibleFiles walks root and returns every regular file whose
// root-relative path matches the template's wildcard expression and
// whose modification time satisfies pred. Enumeration order follows the
// walk and carries no guarantee; downstream steps do not depend on it.
func EligibleFiles(root string, tmpl *pattern.Template, pred Predicate) ([]File, error) {
	glob := filepath.ToSlash(tmpl.Wildcard())

	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		ok, err := filepath.Match(glob, filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("matching %q against %q: %w", rel, glob, err)
		}
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// File vanished between listing and stat; not a failure.
			return nil
		}
		if !pred(info.ModTime()) {
			return nil
		}

		files = append(files, File{Path: path, Size: info.Size(), MTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	return files, nil
}
