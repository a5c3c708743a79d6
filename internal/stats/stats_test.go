package stats

import (
	"strings"
	"testing"
	"time"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name   string
		before int64
		after  int64
		want   float64
	}{
		{"typical", 1000, 150, 85},
		{"nothing processed", 0, 0, 0},
		{"incompressible", 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Run{BytesBefore: tt.before, BytesAfter: tt.after}
			if got := r.Ratio(); got != tt.want {
				t.Errorf("Ratio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccumulation(t *testing.T) {
	var r Run
	r.AddArchive(100, 20)
	r.AddArchive(300, 60)
	r.AddFailure()

	if r.Processed != 2 || r.Failed != 1 {
		t.Errorf("processed/failed = %d/%d, want 2/1", r.Processed, r.Failed)
	}
	if r.BytesBefore != 400 || r.BytesAfter != 80 {
		t.Errorf("bytes = %d/%d, want 400/80", r.BytesBefore, r.BytesAfter)
	}
	if r.Ratio() != 80 {
		t.Errorf("ratio = %v, want 80", r.Ratio())
	}
}

func TestSummaryLabelsDryRun(t *testing.T) {
	started := time.Date(2026, time.August, 20, 3, 0, 0, 0, time.UTC)
	r := Run{
		SrcPath:       "/var/log/hosts",
		SrcPattern:    "%Y/%m/%d/*.log",
		DstPath:       "/archive/hosts",
		Retention:     7,
		CompressLevel: 9,
		DryRun:        true,
		Processed:     3,
		BytesBefore:   3000,
		BytesAfter:    450,
		Started:       started,
		Finished:      started.Add(2 * time.Second),
	}

	out := r.Summary()
	if !strings.Contains(out, "DRY RUN") {
		t.Error("dry-run summary missing the simulation label")
	}
	if !strings.Contains(out, "(estimated)") {
		t.Error("dry-run sizes must be marked as estimates")
	}
	if !strings.Contains(out, "/var/log/hosts") {
		t.Error("summary missing configuration echo")
	}

	r.DryRun = false
	out = r.Summary()
	if strings.Contains(out, "estimated") {
		t.Error("real-run summary must not mention estimates")
	}
}
