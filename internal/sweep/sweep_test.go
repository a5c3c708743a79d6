package sweep

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PhilCANDIDO/logs-archiver/internal/logging"
	"github.com/PhilCANDIDO/logs-archiver/internal/pattern"
	"github.com/PhilCANDIDO/logs-archiver/internal/selector"
)

var now = time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

func writeAged(t *testing.T, path string, mtime time.Time, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func mustTemplate(t *testing.T, raw string) *pattern.Template {
	t.Helper()
	tmpl, err := pattern.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return tmpl
}

func TestSweepDeletesOnlyArchived(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	old := now.AddDate(0, 0, -10)

	archived := filepath.Join(src, "2026", "08", "10", "a.log")
	orphan := filepath.Join(src, "2026", "08", "10", "b.log")
	writeAged(t, archived, old, "a\n")
	writeAged(t, orphan, old, "b\n")

	// Artifact exists for a.log only.
	writeAged(t, pattern.DestinationFor(src, dst, archived), old, "gz-bytes")

	s := New(src, dst, false, nil, logging.Nop{})
	out, err := s.Sweep(context.Background(), mustTemplate(t, "%Y/%m/%d/*.log"), selector.Cutoff(7, fixedClock))
	if err != nil {
		t.Fatal(err)
	}

	if out.Deleted != 1 {
		t.Errorf("deleted = %d, want 1", out.Deleted)
	}
	if out.SkippedNoArtifact != 1 {
		t.Errorf("skipped = %d, want 1", out.SkippedNoArtifact)
	}

	if _, err := os.Stat(archived); !os.IsNotExist(err) {
		t.Error("archived source should be deleted")
	}
	if _, err := os.Stat(orphan); err != nil {
		t.Errorf("orphan source must survive: %v", err)
	}
}

func TestSweepTreatsEmptyArtifactAsMissing(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	old := now.AddDate(0, 0, -10)
	file := filepath.Join(src, "2026", "08", "10", "a.log")
	writeAged(t, file, old, "a\n")

	// A zero-byte artifact can never be a complete gzip stream.
	writeAged(t, pattern.DestinationFor(src, dst, file), old, "")

	s := New(src, dst, false, nil, logging.Nop{})
	out, err := s.Sweep(context.Background(), mustTemplate(t, "%Y/%m/%d/*.log"), selector.Cutoff(7, fixedClock))
	if err != nil {
		t.Fatal(err)
	}

	if out.Deleted != 0 || out.SkippedNoArtifact != 1 {
		t.Errorf("got %+v, want 0 deleted and 1 skipped", out)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("source must survive an empty artifact: %v", err)
	}
}

func TestSweepIgnoresRecentFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	fresh := filepath.Join(src, "2026", "08", "19", "a.log")
	writeAged(t, fresh, now.AddDate(0, 0, -1), "a\n")
	writeAged(t, pattern.DestinationFor(src, dst, fresh), now, "gz-bytes")

	s := New(src, dst, false, nil, logging.Nop{})
	out, err := s.Sweep(context.Background(), mustTemplate(t, "%Y/%m/%d/*.log"), selector.Cutoff(7, fixedClock))
	if err != nil {
		t.Fatal(err)
	}

	if out.Deleted != 0 {
		t.Errorf("deleted = %d, want 0", out.Deleted)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("recent file must survive even when archived: %v", err)
	}
}

func TestSweepPrunesEmptyDirsBottomUp(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	old := now.AddDate(0, 0, -10)
	a := filepath.Join(src, "2026", "08", "10", "a.log")
	b := filepath.Join(src, "2026", "08", "11", "b.log")
	keep := filepath.Join(src, "2026", "08", "19", "c.log")
	writeAged(t, a, old, "a\n")
	writeAged(t, b, old, "b\n")
	writeAged(t, keep, now.AddDate(0, 0, -1), "c\n")

	writeAged(t, pattern.DestinationFor(src, dst, a), old, "gz")
	writeAged(t, pattern.DestinationFor(src, dst, b), old, "gz")

	s := New(src, dst, false, nil, logging.Nop{})
	out, err := s.Sweep(context.Background(), mustTemplate(t, "%Y/%m/%d/*.log"), selector.Cutoff(7, fixedClock))
	if err != nil {
		t.Fatal(err)
	}

	if out.Deleted != 2 {
		t.Fatalf("deleted = %d, want 2", out.Deleted)
	}

	// Day dirs 10 and 11 empty out and go; 08 and 2026 still hold the
	// kept branch; the root itself is never removed.
	for _, gone := range []string{
		filepath.Join(src, "2026", "08", "10"),
		filepath.Join(src, "2026", "08", "11"),
	} {
		if _, err := os.Stat(gone); !os.IsNotExist(err) {
			t.Errorf("dir %s should be pruned", gone)
		}
	}
	for _, stay := range []string{
		src,
		filepath.Join(src, "2026"),
		filepath.Join(src, "2026", "08"),
		filepath.Join(src, "2026", "08", "19"),
	} {
		if _, err := os.Stat(stay); err != nil {
			t.Errorf("dir %s should survive: %v", stay, err)
		}
	}
	if out.PrunedDirs != 2 {
		t.Errorf("pruned dirs = %d, want 2", out.PrunedDirs)
	}
}

func TestSweepPrunesWholeEmptiedBranch(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	old := now.AddDate(0, 0, -10)
	only := filepath.Join(src, "2025", "12", "31", "a.log")
	writeAged(t, only, old, "a\n")
	writeAged(t, pattern.DestinationFor(src, dst, only), old, "gz")

	s := New(src, dst, false, nil, logging.Nop{})
	out, err := s.Sweep(context.Background(), mustTemplate(t, "%Y/%m/%d/*.log"), selector.Cutoff(7, fixedClock))
	if err != nil {
		t.Fatal(err)
	}

	// Deepest-first processing lets the whole 2025/12/31 chain
	// collapse in one pass.
	if out.PrunedDirs != 3 {
		t.Errorf("pruned dirs = %d, want 3", out.PrunedDirs)
	}
	if _, err := os.Stat(filepath.Join(src, "2025")); !os.IsNotExist(err) {
		t.Error("emptied year dir should be pruned")
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source root must never be removed: %v", err)
	}
}

func TestSweepDryRun(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	old := now.AddDate(0, 0, -10)
	file := filepath.Join(src, "2026", "08", "10", "a.log")
	writeAged(t, file, old, "a\n")
	writeAged(t, pattern.DestinationFor(src, dst, file), old, "gz")

	s := New(src, dst, true, nil, logging.Nop{})
	out, err := s.Sweep(context.Background(), mustTemplate(t, "%Y/%m/%d/*.log"), selector.Cutoff(7, fixedClock))
	if err != nil {
		t.Fatal(err)
	}

	// Same selection as a real run, zero mutation.
	if out.Deleted != 1 {
		t.Errorf("would-delete = %d, want 1", out.Deleted)
	}
	if out.PrunedDirs != 3 {
		t.Errorf("would-prune = %d, want 3", out.PrunedDirs)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("dry run deleted a file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(src, "2026", "08", "10")); err != nil {
		t.Errorf("dry run removed a directory: %v", err)
	}
}
