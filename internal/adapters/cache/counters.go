package cache

import "sync/atomic"

// Counters tracks cache lookups. It is safe for concurrent use.
type Counters struct {
	hits   atomic.Uint64
	misses atomic.Uint64
}

// Hit records a successful lookup.
func (c *Counters) Hit() {
	c.hits.Add(1)
}

// Miss records a failed lookup.
func (c *Counters) Miss() {
	c.misses.Add(1)
}

// Hits returns the number of recorded hits.
func (c *Counters) Hits() uint64 {
	return c.hits.Load()
}

// Misses returns the number of recorded misses.
func (c *Counters) Misses() uint64 {
	return c.misses.Load()
}

// Ratio returns hits / (hits + misses), or 0 when nothing was recorded.
func (c *Counters) Ratio() float64 {
	hits := c.hits.Load()
	total := hits + c.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Reset zeroes both counters.
func (c *Counters) Reset() {
	c.hits.Store(0)
	c.misses.Store(0)
}
