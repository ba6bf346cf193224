// Package cache implements the incremental build cache: rendered documents kept
// in memory, keyed by source path, validated against content fingerprints and
// mirrored to disk so later invocations can reuse them.
package cache

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DocumentCache = (*BuildCache)(nil)

const bytesPerMB = 1024 * 1024

// Options configures a BuildCache.
type Options struct {
	// Dir holds one JSON file per cached document.
	Dir string
	// LockPath is the advisory lock guarding Dir. Defaults to Dir + ".lock".
	LockPath string
	// BudgetBytes bounds the estimated size of all entries.
	BudgetBytes int64
	// Expiration is the freshness window of an entry.
	Expiration time.Duration
	// Clock defaults to the real clock.
	Clock         clockwork.Clock
	Fingerprinter ports.Fingerprinter
	Logger        ports.Logger
}

// BuildCache is the default DocumentCache.
type BuildCache struct {
	entries     *shardedMap
	counters    Counters
	size        atomic.Int64
	seq         atomic.Uint64
	evictions   atomic.Uint64
	admission   sync.Mutex
	budget      int64
	expiration  time.Duration
	clock       clockwork.Clock
	fingerprint ports.Fingerprinter
	logger      ports.Logger
	persister   *persister
	lock        *DirLock
	closeOnce   sync.Once
	closeErr    error
}

// New opens the cache in opts.Dir, taking its lock in shared mode and loading
// every entry that is still fresh and matches its source file.
func New(opts Options) (*BuildCache, error) {
	if opts.Fingerprinter == nil {
		return nil, zerr.New("cache requires a fingerprinter")
	}
	if opts.BudgetBytes <= 0 {
		opts.BudgetBytes = int64(domain.DefaultMaxCacheSizeMB) * bytesPerMB
	}
	if opts.Expiration <= 0 {
		opts.Expiration = domain.DefaultCacheExpiration
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.LockPath == "" {
		opts.LockPath = opts.Dir + ".lock"
	}

	lock, err := AcquireSharedDirLock(opts.LockPath)
	if err != nil {
		return nil, err
	}

	disk := newDiskStore(opts.Dir)
	c := &BuildCache{
		entries:     newShardedMap(),
		budget:      opts.BudgetBytes,
		expiration:  opts.Expiration,
		clock:       opts.Clock,
		fingerprint: opts.Fingerprinter,
		logger:      opts.Logger,
		persister:   newPersister(disk, opts.Logger),
		lock:        lock,
	}

	c.load(disk)
	return c, nil
}

// load fills the cache from disk. An unreadable cache directory is reset and
// the cache starts empty.
func (c *BuildCache) load(disk *diskStore) {
	files, err := disk.readAll()
	if err != nil {
		c.warn("discarding unreadable cache directory: " + err.Error())
		if err := disk.reset(); err != nil {
			c.warn("failed to reset cache directory: " + err.Error())
		}
		return
	}

	now := c.clock.Now()
	valid := make([]loaded, 0, len(files))
	for _, f := range files {
		if f.err != nil {
			c.warn("discarding corrupt cache entry: " + f.err.Error())
			_ = disk.removeFile(f.path)
			continue
		}
		if c.stale(f.artifact, now) {
			_ = disk.removeFile(f.path)
			continue
		}
		valid = append(valid, f)
	}

	slices.SortFunc(valid, func(a, b loaded) int {
		return a.artifact.CachedAt.Compare(b.artifact.CachedAt)
	})

	for _, f := range valid {
		artifact := f.artifact
		if artifact.SizeBytes <= 0 {
			artifact.SizeBytes = domain.EstimateSize(artifact.Document)
		}
		if artifact.SizeBytes > c.budget {
			_ = disk.removeFile(f.path)
			continue
		}
		c.entries.set(artifact.Document.SourcePath, &entry{artifact: artifact, seq: c.seq.Add(1)})
		c.size.Add(artifact.SizeBytes)
	}

	if over := c.size.Load() - c.budget; over > 0 {
		c.admission.Lock()
		c.evictLocked(over, "")
		c.admission.Unlock()
	}
}

// stale reports whether a persisted artifact may no longer be served.
func (c *BuildCache) stale(artifact *domain.CachedArtifact, now time.Time) bool {
	if artifact.Expired(now, c.expiration) {
		return true
	}
	id, err := c.fingerprint.Fingerprint(artifact.Document.SourcePath)
	if err != nil {
		return true
	}
	return id != artifact.IdentityHash
}

// Lookup returns a copy of the cached document for path when its fingerprint
// still matches the file on disk and it has not expired.
func (c *BuildCache) Lookup(path string) (*domain.Document, error) {
	id, fpErr := c.fingerprint.Fingerprint(path)

	e, ok := c.entries.get(path)
	if !ok {
		c.counters.Miss()
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheMiss, "lookup"), "path", path)
	}

	if fpErr != nil || e.artifact.IdentityHash != id || e.artifact.Expired(c.clock.Now(), c.expiration) {
		c.remove(path, e)
		c.counters.Miss()
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheMiss, "stale entry"), "path", path)
	}

	doc, ok := c.entries.touch(path, e)
	if !ok {
		c.counters.Miss()
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheMiss, "entry replaced"), "path", path)
	}
	c.counters.Hit()
	return doc, nil
}

// Store fingerprints path and caches a copy of doc under that identity.
func (c *BuildCache) Store(path string, doc *domain.Document) error {
	id, err := c.fingerprint.Fingerprint(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return c.StoreIdentified(path, doc, id)
}

// StoreIdentified caches a copy of doc under path for the source version id,
// evicting the least used entries when the budget would be exceeded. The disk
// copy is written asynchronously.
func (c *BuildCache) StoreIdentified(path string, doc *domain.Document, id domain.SourceIdentity) error {
	clone := doc.Clone()
	if clone.SourcePath == "" {
		clone.SourcePath = path
	}
	size := domain.EstimateSize(clone)
	if size > c.budget {
		c.warn("document exceeds the cache budget and is not cached: " + path)
		return nil
	}

	artifact := &domain.CachedArtifact{
		Document:     clone,
		IdentityHash: id,
		CachedAt:     c.clock.Now(),
		SizeBytes:    size,
	}
	data, err := encodeArtifact(artifact)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	c.admission.Lock()
	projected := c.size.Load() + size
	if prev, ok := c.entries.get(path); ok {
		projected -= prev.artifact.SizeBytes
	}
	if projected > c.budget {
		c.evictLocked(projected-c.budget, path)
	}
	if prev := c.entries.set(path, &entry{artifact: artifact, seq: c.seq.Add(1)}); prev != nil {
		c.size.Add(-prev.artifact.SizeBytes)
	}
	c.size.Add(size)
	c.admission.Unlock()

	c.persister.write(path, data)
	return nil
}

// evictLocked removes entries by ascending access count, oldest first among
// equals, until need bytes are freed. keep is never evicted.
// The caller must hold the admission mutex.
func (c *BuildCache) evictLocked(need int64, keep string) {
	candidates := c.entries.snapshot()
	slices.SortFunc(candidates, func(a, b candidate) int {
		if n := cmp.Compare(a.accessCount, b.accessCount); n != 0 {
			return n
		}
		return cmp.Compare(a.entry.seq, b.entry.seq)
	})

	var freed int64
	for _, cand := range candidates {
		if freed >= need {
			return
		}
		if cand.key == keep {
			continue
		}
		if c.entries.deleteIf(cand.key, cand.entry) {
			c.size.Add(-cand.size)
			freed += cand.size
			c.evictions.Add(1)
			c.persister.delete(cand.key)
		}
	}
}

func (c *BuildCache) remove(path string, e *entry) {
	if c.entries.deleteIf(path, e) {
		c.size.Add(-e.artifact.SizeBytes)
		c.persister.delete(path)
	}
}

// Invalidate removes the entry for path from memory and disk.
func (c *BuildCache) Invalidate(path string) error {
	if e, ok := c.entries.delete(path); ok {
		c.size.Add(-e.artifact.SizeBytes)
	}
	c.persister.delete(path)
	return nil
}

// Clear removes every entry from memory and disk and resets the counters. It
// needs the directory lock exclusively and fails with domain.ErrCacheLocked
// while another process shares the cache.
func (c *BuildCache) Clear() error {
	return c.lock.WithExclusive(func() error {
		c.admission.Lock()
		c.entries.clear()
		c.size.Store(0)
		c.admission.Unlock()
		c.counters.Reset()
		c.persister.clear()
		c.persister.flush()
		return nil
	})
}

// Flush blocks until all queued disk writes are applied.
func (c *BuildCache) Flush() {
	c.persister.flush()
}

// Close persists the access counts of entries read since they were written,
// flushes pending writes, stops the persister and releases the lock.
func (c *BuildCache) Close() error {
	c.closeOnce.Do(func() {
		for _, artifact := range c.entries.takeTouched() {
			data, err := encodeArtifact(artifact)
			if err != nil {
				c.warn("failed to encode cache entry: " + err.Error())
				continue
			}
			c.persister.write(artifact.Document.SourcePath, data)
		}
		c.persister.close()
		c.closeErr = c.lock.Release()
	})
	return c.closeErr
}

// HitCount returns the number of lookups served from the cache.
func (c *BuildCache) HitCount() uint64 {
	return c.counters.Hits()
}

// MissCount returns the number of lookups that found no fresh entry.
func (c *BuildCache) MissCount() uint64 {
	return c.counters.Misses()
}

// HitRatio returns hits / (hits + misses), or 0 without lookups.
func (c *BuildCache) HitRatio() float64 {
	return c.counters.Ratio()
}

// SizeMB returns the estimated size of all entries in megabytes.
func (c *BuildCache) SizeMB() float64 {
	return float64(c.size.Load()) / bytesPerMB
}

// SizeBytes returns the estimated size of all entries in bytes.
func (c *BuildCache) SizeBytes() int64 {
	return c.size.Load()
}

// Len returns the number of cached documents.
func (c *BuildCache) Len() int {
	return c.entries.len()
}

// Evictions returns the number of entries removed to respect the budget.
func (c *BuildCache) Evictions() uint64 {
	return c.evictions.Load()
}

func (c *BuildCache) warn(msg string) {
	if c.logger != nil {
		c.logger.Warn(msg)
	}
}
