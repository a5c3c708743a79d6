package fs

import (
	"context"
	"os"
)

// wraps os.Rename with retry logic.
// It provides a resilient, atomic rename operation for artifact finalization.

func renameWithRetry(ctx context.Context, oldPath, newPath string) error {
	return Retry(ctx, "rename", func() error {
		return os.Rename(oldPath, newPath)
	})
}
