package watcher

import (
	"slices"
	"sync"
	"time"

	"go.trai.ch/tome/internal/core/domain"
)

// DefaultDebounceWindow is the quiet period after the last change before a rebuild starts.
const DefaultDebounceWindow = 200 * time.Millisecond

// Debouncer coalesces rapid file system events into one batch of changed paths.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[domain.InternedString]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a debouncer calling callback with the sorted, deduplicated
// paths once window passed without a new Add.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[domain.InternedString]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records a changed path and restarts the window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[domain.NewInternedString(path)] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	paths := d.drainLocked()
	d.timer = nil
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		go d.callback(paths)
	}
}

// Flush runs the callback synchronously with the pending paths, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Already fired, fire delivers the batch.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	paths := d.drainLocked()
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

func (d *Debouncer) drainLocked() []string {
	if len(d.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p.String())
	}
	clear(d.pending)
	slices.Sort(paths)
	return paths
}
