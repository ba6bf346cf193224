package ports

import "time"

// Document outcomes reported to metrics.
const (
	OutcomeParsed = "parsed"
	OutcomeCached = "cached"
	OutcomeFailed = "failed"
)

// Build outcomes reported to metrics.
const (
	BuildSuccess  = "success"
	BuildWarning  = "warning"
	BuildFailed   = "failed"
	BuildCanceled = "canceled"
)

// MetricsRecorder receives build measurements. Implementations must be safe for
// concurrent use.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type MetricsRecorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncDocument(outcome string)
	IncCacheLookup(hit bool)
	IncDiagnostic(severity string)
	IncBuildOutcome(outcome string)
	// Export writes the collected measurements to path in the text exposition format.
	Export(path string) error
}
