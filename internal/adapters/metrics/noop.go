package metrics

import (
	"time"

	"go.trai.ch/tome/internal/core/ports"
)

var _ ports.MetricsRecorder = NoopRecorder{}

// NoopRecorder is a MetricsRecorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncDocument(string)                         {}
func (NoopRecorder) IncCacheLookup(bool)                        {}
func (NoopRecorder) IncDiagnostic(string)                       {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
func (NoopRecorder) Export(string) error                        { return nil }
