package metrics

import "time"

// ResultLabel enumerates per-file extraction outcomes for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// OutcomeLabel enumerates final run outcomes.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for an indexing run. Implementations
// must be safe for concurrent use; extraction workers report in parallel.
type Recorder interface {
	ObserveExtractDuration(d time.Duration, result ResultLabel)
	AddIndexed(files, states int)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome OutcomeLabel)
	SetRevisionPresent(present bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveExtractDuration(time.Duration, ResultLabel) {}
func (NoopRecorder) AddIndexed(int, int)                               {}
func (NoopRecorder) ObserveRunDuration(time.Duration)                  {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)                        {}
func (NoopRecorder) SetRevisionPresent(bool)                           {}
