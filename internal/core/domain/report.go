package domain

import (
	"fmt"
	"time"
)

// Severity distinguishes warnings from errors.
type Severity string

const (
	// SeverityWarning marks an advisory finding.
	SeverityWarning Severity = "warning"
	// SeverityError marks a recoverable failure.
	SeverityError Severity = "error"
)

// DiagnosticKind classifies a diagnostic.
type DiagnosticKind string

// Warning kinds.
const (
	KindMissingToctreeRef    DiagnosticKind = "missing_toctree_ref"
	KindOrphanedDocument     DiagnosticKind = "orphaned_document"
	KindBrokenCrossReference DiagnosticKind = "broken_cross_reference"
	KindMissingFile          DiagnosticKind = "missing_file"
	KindUnusedLabel          DiagnosticKind = "unused_label"
	KindDuplicateLabel       DiagnosticKind = "duplicate_label"
	KindEmptyToctree         DiagnosticKind = "empty_toctree"
	KindOther                DiagnosticKind = "other"
)

// Error kinds.
const (
	KindParseError    DiagnosticKind = "parse_error"
	KindFileNotFound  DiagnosticKind = "file_not_found"
	KindTemplateError DiagnosticKind = "template_error"
	KindSyntaxError   DiagnosticKind = "syntax_error"
)

// Diagnostic is a warning or error attached to a file and optionally a line.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Kind     DiagnosticKind `json:"kind"`
	File     string         `json:"file"`
	Line     int            `json:"line,omitempty"`
	Message  string         `json:"message"`
}

// NewWarning creates a warning diagnostic. A line of 0 means no line information.
func NewWarning(kind DiagnosticKind, file string, line int, msg string) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Kind: kind, File: file, Line: line, Message: msg}
}

// NewError creates an error diagnostic. A line of 0 means no line information.
func NewError(kind DiagnosticKind, file string, line int, msg string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Kind: kind, File: file, Line: line, Message: msg}
}

// String formats the diagnostic as "file:line: WARNING: message".
func (d Diagnostic) String() string {
	label := "WARNING"
	if d.Severity == SeverityError {
		label = "ERROR"
	}
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, label, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.File, label, d.Message)
}

// BuildReport summarizes one build invocation.
type BuildReport struct {
	BuildID        string        `json:"build_id"`
	FilesProcessed int           `json:"files_processed"`
	FilesSkipped   int           `json:"files_skipped"`
	BuildTime      time.Duration `json:"build_time"`
	OutputSizeMB   float64       `json:"output_size_mb"`
	CacheHits      int           `json:"cache_hits"`
	Warnings       []Diagnostic  `json:"warnings"`
	Errors         []Diagnostic  `json:"errors"`
}

// HasWarnings reports whether the build produced warnings.
func (r *BuildReport) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// HasErrors reports whether the build produced error reports.
func (r *BuildReport) HasErrors() bool {
	return len(r.Errors) > 0
}

// Site is the complete output of the processing stage handed to finishing steps.
type Site struct {
	SourceDir string
	OutputDir string
	Documents []*Document
	Config    Config
}
