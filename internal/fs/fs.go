// Package fs defines the filesystem abstraction used by logs-archiver.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	Inode uint64
}

type FS interface {
	Stat(path string) (FileInfo, error)
	Rename(ctx context.Context, oldPath, newPath string) error
	MkdirAll(path string) error
	Remove(path string) error
	ReadDirNames(path string) ([]string, error)
}
