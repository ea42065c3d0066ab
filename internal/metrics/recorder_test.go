package metrics

import (
	"time"
)

// testRecorder counts calls; other packages keep their own copies since test
// helpers are not exported across packages.
type testRecorder struct {
	durations   int
	directories map[DirectoryResult]int
	entries     map[EntryKind]int
	outcomes    map[RunOutcome]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		directories: map[DirectoryResult]int{},
		entries:     map[EntryKind]int{},
		outcomes:    map[RunOutcome]int{},
	}
}

func (t *testRecorder) ObserveExpansionDuration(time.Duration) { t.durations++ }
func (t *testRecorder) IncDirectory(r DirectoryResult)         { t.directories[r]++ }
func (t *testRecorder) AddEntries(k EntryKind, n int)          { t.entries[k] += n }
func (t *testRecorder) IncRunOutcome(o RunOutcome)             { t.outcomes[o]++ }

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = newTestRecorder()
)
