package metrics

import "time"

// DirectoryResult labels the outcome of resolving one directory reference.
type DirectoryResult string

const (
	DirectoryExpanded  DirectoryResult = "expanded"
	DirectoryUnmatched DirectoryResult = "unmatched"
)

// EntryKind labels generated navigation entries.
type EntryKind string

const (
	EntryPage      EntryKind = "page"
	EntryDirectory EntryKind = "directory"
)

// RunOutcome labels the final status of one pipeline run.
type RunOutcome string

const (
	OutcomeSuccess RunOutcome = "success"
	OutcomeFailed  RunOutcome = "failed"
)

// Recorder defines observability hooks for expansion metrics.
type Recorder interface {
	ObserveExpansionDuration(d time.Duration)
	IncDirectory(result DirectoryResult)
	AddEntries(kind EntryKind, n int)
	IncRunOutcome(outcome RunOutcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveExpansionDuration(time.Duration) {}
func (NoopRecorder) IncDirectory(DirectoryResult)           {}
func (NoopRecorder) AddEntries(EntryKind, int)              {}
func (NoopRecorder) IncRunOutcome(RunOutcome)               {}
