package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PruneRunLogs removes run-log files in dir older than retentionDays
// whole days. Files that do not carry the run-log naming scheme are
// left alone. Returns the number of files removed.
func PruneRunLogs(dir string, retentionDays int, now time.Time) (int, error) {
	if dir == "" || retentionDays <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := now.AddDate(0, 0, -retentionDays)

	var removed int
	var errs error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		removed++
	}
	return removed, errs
}
