package metrics

import "time"

// BuildOutcome enumerates final build states for counters.
type BuildOutcome string

const (
	BuildSuccess BuildOutcome = "success"
	BuildFailed  BuildOutcome = "failed"
	BuildSkipped BuildOutcome = "skipped"
)

// ValidationOutcome enumerates validation results.
type ValidationOutcome string

const (
	ValidationValid    ValidationOutcome = "valid"
	ValidationWarnings ValidationOutcome = "warnings"
	ValidationInvalid  ValidationOutcome = "invalid"
)

// Recorder defines observability hooks for builds.
type Recorder interface {
	IncValidation(outcome ValidationOutcome)
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcome)
	IncEmittedFile(target string)
	SetConfigIssues(severity string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncValidation(ValidationOutcome)            {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome)               {}
func (NoopRecorder) IncEmittedFile(string)                      {}
func (NoopRecorder) SetConfigIssues(string, int)                {}
