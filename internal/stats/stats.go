// Package stats accumulates per-run counters and renders the final
// report. It is pure aggregation: no I/O happens here beyond rendering
// into a string.
package stats

import "time"

// Run holds the counters for one invocation. A single accumulator is
// passed by reference into each processing step; it lives only for the
// duration of the run.
type Run struct {
	SrcPath       string
	SrcPattern    string
	DstPath       string
	Retention     int
	CompressLevel int
	DryRun        bool

	Processed int
	Failed    int

	Deleted           int
	DeleteFailed      int
	SkippedNoArtifact int
	PrunedDirs        int

	BytesBefore int64
	BytesAfter  int64

	Started  time.Time
	Finished time.Time
}

// AddArchive records one successfully archived file.
func (r *Run) AddArchive(before, after int64) {
	r.Processed++
	r.BytesBefore += before
	r.BytesAfter += after
}

// AddFailure records one file that could not be archived.
func (r *Run) AddFailure() {
	r.Failed++
}

// Ratio returns the overall compression ratio in percent, guarded
// against a zero byte total.
func (r *Run) Ratio() float64 {
	if r.BytesBefore == 0 {
		return 0
	}
	return float64(r.BytesBefore-r.BytesAfter) / float64(r.BytesBefore) * 100
}

// Duration returns the wall-clock time of the run.
func (r *Run) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}
