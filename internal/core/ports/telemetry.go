package ports

import (
	"context"
	"io"

	"go.trai.ch/tome/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of a build as a tree of vertices.
type Telemetry interface {
	// Record starts a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and ends the recording session.
	Close() error
}

// Vertex is a unit of work reported to telemetry.
type Vertex interface {
	// Stdout returns a writer for output attached to the vertex.
	Stdout() io.Writer
	// Log records a message associated with the vertex.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished, successfully when err is nil.
	Complete(err error)
	// Cached marks the vertex as served from the cache.
	Cached()
}
