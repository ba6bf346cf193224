// Package telemetry holds telemetry adapters that need no external backend.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
)

var _ ports.Telemetry = (*Noop)(nil)

// Noop is a ports.Telemetry that records nothing.
type Noop struct{}

// NewNoop creates a new Noop telemetry.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns ctx unchanged and a vertex that discards everything.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close does nothing.
func (n *Noop) Close() error {
	return nil
}

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer               { return io.Discard }
func (noopVertex) Log(_ domain.LogLevel, _ string) {}
func (noopVertex) Complete(_ error)                {}
func (noopVertex) Cached()                         {}
