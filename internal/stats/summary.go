package stats

import (
	"fmt"
	"strings"
	"time"
)

// Summary renders the end-of-run report. Simulated runs carry an
// explicit label and their size figures are marked as estimates, so a
// reader can never mistake them for measurements.
func (r *Run) Summary() string {
	var b strings.Builder

	title := "Archive run summary"
	if r.DryRun {
		title = "Archive run summary (DRY RUN - no files were modified)"
	}
	fmt.Fprintln(&b, title)
	fmt.Fprintln(&b, strings.Repeat("-", len(title)))

	fmt.Fprintf(&b, "Source path:       %s\n", r.SrcPath)
	fmt.Fprintf(&b, "Source pattern:    %s\n", r.SrcPattern)
	fmt.Fprintf(&b, "Destination path:  %s\n", r.DstPath)
	fmt.Fprintf(&b, "Retention:         %d day(s)\n", r.Retention)
	fmt.Fprintf(&b, "Compression level: %d\n", r.CompressLevel)

	suffix := ""
	if r.DryRun {
		suffix = " (estimated)"
	}

	fmt.Fprintf(&b, "Files archived:    %d\n", r.Processed)
	fmt.Fprintf(&b, "Files failed:      %d\n", r.Failed)
	fmt.Fprintf(&b, "Files deleted:     %d\n", r.Deleted)
	if r.DeleteFailed > 0 {
		fmt.Fprintf(&b, "Delete failures:   %d\n", r.DeleteFailed)
	}
	if r.SkippedNoArtifact > 0 {
		fmt.Fprintf(&b, "Kept (no artifact): %d\n", r.SkippedNoArtifact)
	}
	if r.PrunedDirs > 0 {
		fmt.Fprintf(&b, "Directories pruned: %d\n", r.PrunedDirs)
	}
	fmt.Fprintf(&b, "Bytes before:      %s%s\n", formatBytes(r.BytesBefore), suffix)
	fmt.Fprintf(&b, "Bytes after:       %s%s\n", formatBytes(r.BytesAfter), suffix)
	fmt.Fprintf(&b, "Compression:       %.1f%%%s\n", r.Ratio(), suffix)
	fmt.Fprintf(&b, "Elapsed:           %s\n", r.Duration().Round(time.Millisecond))

	return b.String()
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
