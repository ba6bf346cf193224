package ports

import "go.trai.ch/tome/internal/core/domain"

// DocumentCache stores rendered documents keyed by source path.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type DocumentCache interface {
	// Lookup returns a copy of the cached document for path, or an error wrapping
	// domain.ErrCacheMiss when no fresh entry exists.
	Lookup(path string) (*domain.Document, error)
	// Store caches doc under the current fingerprint of path.
	Store(path string, doc *domain.Document) error
	// StoreIdentified caches doc under path for the source version id, which the
	// caller derived from the exact bytes doc was parsed from.
	StoreIdentified(path string, doc *domain.Document, id domain.SourceIdentity) error
	// Invalidate removes the entry for path.
	Invalidate(path string) error
	// Clear removes all entries and resets the counters.
	Clear() error
	// Flush blocks until every pending disk write has completed.
	Flush()
	// HitCount returns the number of successful lookups.
	HitCount() uint64
	// MissCount returns the number of failed lookups.
	MissCount() uint64
	// HitRatio returns hits / (hits + misses), or 0 without lookups.
	HitRatio() float64
	// SizeMB returns the estimated size of all entries in megabytes.
	SizeMB() float64
	// Close flushes pending writes and releases the cache directory.
	Close() error
}

// CacheFactory opens the document cache of an output directory.
type CacheFactory interface {
	Open(outputDir string, cfg domain.Config) (DocumentCache, error)
}
