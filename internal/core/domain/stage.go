package domain

import "go.trai.ch/zerr"

// BuildStage is a step of a build invocation.
type BuildStage int

const (
	// StageIdle is the state before a build starts.
	StageIdle BuildStage = iota
	// StageDiscovering walks the source tree.
	StageDiscovering
	// StageGraphBuilding constructs the dependency graph.
	StageGraphBuilding
	// StageProcessing parses and renders documents in parallel.
	StageProcessing
	// StageValidating cross-checks the document set.
	StageValidating
	// StageFinishing writes indices and assets.
	StageFinishing
	// StageDone marks a completed build.
	StageDone
)

// String returns the stage name.
func (s BuildStage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageDiscovering:
		return "discovering"
	case StageGraphBuilding:
		return "graph-building"
	case StageProcessing:
		return "processing"
	case StageValidating:
		return "validating"
	case StageFinishing:
		return "finishing"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// StageMachine tracks the stage of one build. Stages only move forward one step at a time.
type StageMachine struct {
	current BuildStage
}

// Current returns the current stage.
func (m *StageMachine) Current() BuildStage {
	return m.current
}

// Advance moves the machine to the next stage.
func (m *StageMachine) Advance(to BuildStage) error {
	if to != m.current+1 {
		return zerr.With(zerr.With(zerr.Wrap(ErrInvalidStageTransition, "stage machine"),
			"from", m.current.String()), "to", to.String())
	}
	m.current = to
	return nil
}
