package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of change reported by a Watcher.
type WatchOp uint8

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// WatchEvent is a single change below the watched source tree.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher reports changes below a source tree.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches root recursively until ctx is done or Stop is called.
	Start(ctx context.Context, root string) error
	// Stop releases the watcher.
	Stop() error
	// Events yields changes until the watcher stops.
	Events() iter.Seq[WatchEvent]
}

// WatcherFactory creates watchers on demand.
type WatcherFactory interface {
	NewWatcher() (Watcher, error)
}
