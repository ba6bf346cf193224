package cache

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tome/internal/core/domain"
)

const shardCount = 32

// entry is one cached artifact plus its insertion sequence, used to break
// eviction ties between artifacts with the same access count.
type entry struct {
	artifact *domain.CachedArtifact
	seq      uint64
	// touched is set when AccessCount changed after the disk copy was queued.
	touched bool
}

type shard struct {
	mu    sync.RWMutex
	items map[string]*entry
}

// shardedMap partitions entries by the xxhash of their key so concurrent
// workers touching different documents rarely contend on the same lock.
type shardedMap struct {
	shards [shardCount]*shard
}

func newShardedMap() *shardedMap {
	m := &shardedMap{}
	for i := range m.shards {
		m.shards[i] = &shard{items: make(map[string]*entry)}
	}
	return m
}

func (m *shardedMap) shardFor(key string) *shard {
	return m.shards[xxhash.Sum64String(key)%shardCount]
}

func (m *shardedMap) get(key string) (*entry, bool) {
	s := m.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[key]
	return e, ok
}

// touch increments the access count of e and returns a copy of its document.
// It reports false when key no longer maps to e.
func (m *shardedMap) touch(key string, e *entry) (*domain.Document, bool) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items[key] != e {
		return nil, false
	}
	e.artifact.AccessCount++
	e.touched = true
	return e.artifact.Document.Clone(), true
}

// takeTouched returns copies of the artifacts whose access count changed since
// they were persisted and clears their touched flag.
func (m *shardedMap) takeTouched() []*domain.CachedArtifact {
	var out []*domain.CachedArtifact
	for _, s := range m.shards {
		s.mu.Lock()
		for _, e := range s.items {
			if !e.touched {
				continue
			}
			artifact := *e.artifact
			out = append(out, &artifact)
			e.touched = false
		}
		s.mu.Unlock()
	}
	return out
}

// set stores e under key and returns the entry it replaced, if any.
func (m *shardedMap) set(key string, e *entry) *entry {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.items[key]
	s.items[key] = e
	return prev
}

// deleteIf removes key only while it still maps to e.
func (m *shardedMap) deleteIf(key string, e *entry) bool {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items[key] != e {
		return false
	}
	delete(s.items, key)
	return true
}

func (m *shardedMap) delete(key string) (*entry, bool) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	return e, ok
}

// candidate is a point-in-time view of an entry used to rank evictions.
type candidate struct {
	key         string
	entry       *entry
	accessCount uint64
	size        int64
}

func (m *shardedMap) snapshot() []candidate {
	var out []candidate
	for _, s := range m.shards {
		s.mu.RLock()
		for key, e := range s.items {
			out = append(out, candidate{
				key:         key,
				entry:       e,
				accessCount: e.artifact.AccessCount,
				size:        e.artifact.SizeBytes,
			})
		}
		s.mu.RUnlock()
	}
	return out
}

func (m *shardedMap) len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}
	return n
}

func (m *shardedMap) clear() {
	for _, s := range m.shards {
		s.mu.Lock()
		clear(s.items)
		s.mu.Unlock()
	}
}
