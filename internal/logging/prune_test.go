package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var now = time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

func writeLogAged(t *testing.T, dir, name string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("log\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestPruneRunLogs(t *testing.T) {
	dir := t.TempDir()

	writeLogAged(t, dir, "logs-archiver_20260810-030000.log", now.AddDate(0, 0, -10))
	writeLogAged(t, dir, "logs-archiver_20260818-030000.log", now.AddDate(0, 0, -2))
	// Unrelated files must survive regardless of age.
	writeLogAged(t, dir, "application.log", now.AddDate(0, 0, -30))

	removed, err := PruneRunLogs(dir, 5, now)
	if err != nil {
		t.Fatalf("PruneRunLogs(): %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	if _, err := os.Stat(filepath.Join(dir, "logs-archiver_20260810-030000.log")); !os.IsNotExist(err) {
		t.Error("old run log should be removed")
	}
	for _, keep := range []string{"logs-archiver_20260818-030000.log", "application.log"} {
		if _, err := os.Stat(filepath.Join(dir, keep)); err != nil {
			t.Errorf("%s should survive: %v", keep, err)
		}
	}
}

func TestPruneRunLogsDisabled(t *testing.T) {
	dir := t.TempDir()
	writeLogAged(t, dir, "logs-archiver_20260101-000000.log", now.AddDate(0, 0, -200))

	removed, err := PruneRunLogs(dir, 0, now)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 0 {
		t.Errorf("retention 0 must not prune, removed %d", removed)
	}

	if removed, err := PruneRunLogs("", 5, now); err != nil || removed != 0 {
		t.Errorf("empty dir must be a no-op, got %d, %v", removed, err)
	}
}

func TestPruneRunLogsMissingDir(t *testing.T) {
	removed, err := PruneRunLogs(filepath.Join(t.TempDir(), "nope"), 5, now)
	if err != nil {
		t.Fatalf("missing dir must not error: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestNewWritesRunLog(t *testing.T) {
	dir := t.TempDir()

	log, closeLog, err := New(Options{Dir: dir, Clock: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("New(): %v", err)
	}
	log.Info("hello", "k", "v")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dir, "logs-archiver_20260820-120000.log")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("run log not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("run log is empty")
	}
}

func TestNewConsoleOnly(t *testing.T) {
	log, closeLog, err := New(Options{Disabled: true, Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	log.Info("console only")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}
}
