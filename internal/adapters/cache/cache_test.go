package cache_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tome/internal/adapters/cache"
	"go.trai.ch/tome/internal/adapters/fs"
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	root     string
	cacheDir string
	clock    *clockwork.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	return &fixture{
		root:     root,
		cacheDir: filepath.Join(root, "_build", domain.CacheDirName),
		clock:    clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func (f *fixture) open(t *testing.T, budget int64) *cache.BuildCache {
	t.Helper()
	c, err := cache.New(cache.Options{
		Dir:           f.cacheDir,
		BudgetBytes:   budget,
		Expiration:    domain.DefaultCacheExpiration,
		Clock:         f.clock,
		Fingerprinter: fs.NewFingerprinter(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func (f *fixture) source(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func document(path, html string) *domain.Document {
	return &domain.Document{
		SourcePath: path,
		OutputPath: domain.OutputName(filepath.Base(path)),
		Name:       domain.DocName(filepath.Base(path)),
		Title:      "Title",
		HTML:       html,
		Directives: []domain.Directive{{Name: "toctree", Content: "guide", Line: 3}},
	}
}

func TestBuildCache_StoreThenLookup(t *testing.T) {
	f := newFixture(t)
	c := f.open(t, 0)
	path := f.source(t, "index.rst", "Index\n=====\n")
	doc := document(path, "<h1>Index</h1>")

	require.NoError(t, c.Store(path, doc))

	got, err := c.Lookup(path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.NotSame(t, doc, got)
	assert.Equal(t, uint64(1), c.HitCount())
	assert.Equal(t, uint64(0), c.MissCount())
	assert.InDelta(t, 1.0, c.HitRatio(), 0.0001)
}

func TestBuildCache_LookupReturnsCopy(t *testing.T) {
	f := newFixture(t)
	c := f.open(t, 0)
	path := f.source(t, "index.rst", "Index")
	require.NoError(t, c.Store(path, document(path, "<p>a</p>")))

	first, err := c.Lookup(path)
	require.NoError(t, err)
	first.HTML = "mutated"
	first.Directives[0].Content = "mutated"

	second, err := c.Lookup(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>a</p>", second.HTML)
	assert.Equal(t, "guide", second.Directives[0].Content)
}

func TestBuildCache_MissWithoutEntry(t *testing.T) {
	f := newFixture(t)
	c := f.open(t, 0)
	path := f.source(t, "index.rst", "Index")

	_, err := c.Lookup(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
	assert.Equal(t, uint64(1), c.MissCount())
	assert.InDelta(t, 0.0, c.HitRatio(), 0.0001)
}

func TestBuildCache_ContentChangeIsMiss(t *testing.T) {
	f := newFixture(t)
	c := f.open(t, 0)
	path := f.source(t, "index.rst", "Index")
	require.NoError(t, c.Store(path, document(path, "<p>old</p>")))

	f.source(t, "index.rst", "Changed index")
	later := time.Now().Add(5 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	_, err := c.Lookup(path)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, uint64(0), c.HitCount())
	assert.Equal(t, uint64(1), c.MissCount())
}

func TestBuildCache_DeletedSourceIsMiss(t *testing.T) {
	f := newFixture(t)
	c := f.open(t, 0)
	path := f.source(t, "index.rst", "Index")
	require.NoError(t, c.Store(path, document(path, "<p>x</p>")))
	require.NoError(t, os.Remove(path))

	_, err := c.Lookup(path)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
	assert.Equal(t, 0, c.Len())
}

func TestBuildCache_ExpiredEntryIsMiss(t *testing.T) {
	f := newFixture(t)
	c := f.open(t, 0)
	path := f.source(t, "index.rst", "Index")
	require.NoError(t, c.Store(path, document(path, "<p>x</p>")))

	f.clock.Advance(23 * time.Hour)
	_, err := c.Lookup(path)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Hour)
	_, err = c.Lookup(path)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, uint64(1), c.HitCount())
	assert.Equal(t, uint64(1), c.MissCount())
}

func TestBuildCache_EvictionKeepsBudget(t *testing.T) {
	f := newFixture(t)
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = f.source(t, fmt.Sprintf("doc%d.rst", i), "content")
	}
	size := domain.EstimateSize(document(paths[0], "<p>body</p>"))
	budget := 2*size + size/2
	c := f.open(t, budget)

	for _, p := range paths {
		require.NoError(t, c.Store(p, document(p, "<p>body</p>")))
		assert.LessOrEqual(t, c.SizeBytes(), budget)
	}

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, uint64(3), c.Evictions())
}

func TestBuildCache_EvictsLeastAccessedFirst(t *testing.T) {
	f := newFixture(t)
	a := f.source(t, "a.rst", "a")
	b := f.source(t, "b.rst", "b")
	d := f.source(t, "d.rst", "d")
	size := domain.EstimateSize(document(a, "<p>body</p>"))
	c := f.open(t, 2*size)

	require.NoError(t, c.Store(a, document(a, "<p>body</p>")))
	require.NoError(t, c.Store(b, document(b, "<p>body</p>")))

	_, err := c.Lookup(a)
	require.NoError(t, err)

	require.NoError(t, c.Store(d, document(d, "<p>body</p>")))

	_, err = c.Lookup(a)
	require.NoError(t, err)
	_, err = c.Lookup(d)
	require.NoError(t, err)
	_, err = c.Lookup(b)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
}

func TestBuildCache_EvictionTiesPreferOldest(t *testing.T) {
	f := newFixture(t)
	a := f.source(t, "a.rst", "a")
	b := f.source(t, "b.rst", "b")
	d := f.source(t, "d.rst", "d")
	size := domain.EstimateSize(document(a, "<p>body</p>"))
	c := f.open(t, 2*size)

	require.NoError(t, c.Store(a, document(a, "<p>body</p>")))
	require.NoError(t, c.Store(b, document(b, "<p>body</p>")))
	require.NoError(t, c.Store(d, document(d, "<p>body</p>")))

	_, err := c.Lookup(a)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
	_, err = c.Lookup(b)
	require.NoError(t, err)
}

func TestBuildCache_OversizedDocumentNotCached(t *testing.T) {
	f := newFixture(t)
	path := f.source(t, "big.rst", "big")
	c := f.open(t, 2048)

	require.NoError(t, c.Store(path, document(path, string(make([]byte, 4096)))))
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.SizeBytes())
}

func TestBuildCache_OverwriteSamePath(t *testing.T) {
	f := newFixture(t)
	c := f.open(t, 0)
	path := f.source(t, "index.rst", "Index")

	require.NoError(t, c.Store(path, document(path, "<p>first</p>")))
	require.NoError(t, c.Store(path, document(path, "<p>second</p>")))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, domain.EstimateSize(document(path, "<p>second</p>")), c.SizeBytes())
	got, err := c.Lookup(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>second</p>", got.HTML)
}

func TestBuildCache_DiskRoundTrip(t *testing.T) {
	f := newFixture(t)
	kept := f.source(t, "kept.rst", "kept")
	removed := f.source(t, "removed.rst", "removed")

	first, err := cache.New(cache.Options{
		Dir:           f.cacheDir,
		Clock:         f.clock,
		Fingerprinter: fs.NewFingerprinter(),
	})
	require.NoError(t, err)
	require.NoError(t, first.Store(kept, document(kept, "<p>kept</p>")))
	require.NoError(t, first.Store(removed, document(removed, "<p>removed</p>")))
	require.NoError(t, first.Close())

	entries, err := os.ReadDir(f.cacheDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, os.Remove(removed))

	second := f.open(t, 0)
	assert.Equal(t, 1, second.Len())

	got, err := second.Lookup(kept)
	require.NoError(t, err)
	assert.Equal(t, "<p>kept</p>", got.HTML)

	_, err = second.Lookup(removed)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))

	entries, err = os.ReadDir(f.cacheDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBuildCache_ReloadDropsExpiredEntries(t *testing.T) {
	f := newFixture(t)
	path := f.source(t, "index.rst", "Index")

	first, err := cache.New(cache.Options{Dir: f.cacheDir, Clock: f.clock, Fingerprinter: fs.NewFingerprinter()})
	require.NoError(t, err)
	require.NoError(t, first.Store(path, document(path, "<p>x</p>")))
	require.NoError(t, first.Close())

	f.clock.Advance(48 * time.Hour)
	second := f.open(t, 0)
	assert.Equal(t, 0, second.Len())
}

func TestBuildCache_CorruptEntryIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	f := newFixture(t)
	path := f.source(t, "index.rst", "Index")

	first, err := cache.New(cache.Options{Dir: f.cacheDir, Clock: f.clock, Fingerprinter: fs.NewFingerprinter()})
	require.NoError(t, err)
	require.NoError(t, first.Store(path, document(path, "<p>x</p>")))
	require.NoError(t, first.Close())

	corrupt := filepath.Join(f.cacheDir, "deadbeef.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o600))

	second, err := cache.New(cache.Options{
		Dir:           f.cacheDir,
		Clock:         f.clock,
		Fingerprinter: fs.NewFingerprinter(),
		Logger:        logger,
	})
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	assert.Equal(t, 1, second.Len())
	_, statErr := os.Stat(corrupt)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildCache_InvalidateAndClear(t *testing.T) {
	f := newFixture(t)
	c := f.open(t, 0)
	a := f.source(t, "a.rst", "a")
	b := f.source(t, "b.rst", "b")
	require.NoError(t, c.Store(a, document(a, "<p>a</p>")))
	require.NoError(t, c.Store(b, document(b, "<p>b</p>")))
	_, err := c.Lookup(a)
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(a))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Clear())
	c.Flush()

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, uint64(0), c.HitCount())
	assert.Equal(t, uint64(0), c.MissCount())
	assert.InDelta(t, 0.0, c.SizeMB(), 0.0001)

	entries, err := os.ReadDir(f.cacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildCache_SharedBetweenOwners(t *testing.T) {
	f := newFixture(t)
	path := f.source(t, "index.rst", "Index")
	first := f.open(t, 0)
	second := f.open(t, 0)

	require.NoError(t, first.Store(path, document(path, "<p>x</p>")))
	first.Flush()
	require.NoError(t, second.Store(path, document(path, "<p>x</p>")))

	err := first.Clear()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCacheLocked))
	assert.Equal(t, 1, first.Len())

	require.NoError(t, second.Close())
	require.NoError(t, first.Clear())
	assert.Equal(t, 0, first.Len())
}

func TestBuildCache_ExclusiveLockBlocksOpen(t *testing.T) {
	f := newFixture(t)
	lock, err := cache.AcquireDirLock(f.cacheDir + ".lock")
	require.NoError(t, err)

	_, err = cache.New(cache.Options{Dir: f.cacheDir, Fingerprinter: fs.NewFingerprinter()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCacheLocked))

	require.NoError(t, lock.Release())
	f.open(t, 0)
}

func TestBuildCache_UnreadableDirectoryStartsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	f := newFixture(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(f.cacheDir), 0o750))
	require.NoError(t, os.WriteFile(f.cacheDir, []byte("junk"), 0o600))

	c, err := cache.New(cache.Options{
		Dir:           f.cacheDir,
		Clock:         f.clock,
		Fingerprinter: fs.NewFingerprinter(),
		Logger:        logger,
	})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	assert.Equal(t, 0, c.Len())

	info, err := os.Stat(f.cacheDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	path := f.source(t, "index.rst", "Index")
	require.NoError(t, c.Store(path, document(path, "<p>x</p>")))
	c.Flush()
	entries, err := os.ReadDir(f.cacheDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBuildCache_AccessCountsSurviveReload(t *testing.T) {
	f := newFixture(t)
	a := f.source(t, "a.rst", "a")
	b := f.source(t, "b.rst", "b")
	c := f.source(t, "c.rst", "c")
	size := domain.EstimateSize(document(a, "<p>body</p>"))

	first, err := cache.New(cache.Options{Dir: f.cacheDir, Clock: f.clock, Fingerprinter: fs.NewFingerprinter()})
	require.NoError(t, err)
	require.NoError(t, first.Store(a, document(a, "<p>body</p>")))
	f.clock.Advance(time.Second)
	require.NoError(t, first.Store(b, document(b, "<p>body</p>")))
	for range 2 {
		_, err := first.Lookup(a)
		require.NoError(t, err)
	}
	require.NoError(t, first.Close())

	second := f.open(t, 2*size)
	require.Equal(t, 2, second.Len())
	require.NoError(t, second.Store(c, document(c, "<p>body</p>")))

	_, err = second.Lookup(a)
	require.NoError(t, err, "the frequently read entry must survive eviction")
	_, err = second.Lookup(b)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
}

func TestBuildCache_StoreIdentified(t *testing.T) {
	f := newFixture(t)
	c := f.open(t, 0)
	path := f.source(t, "index.rst", "Index")

	require.NoError(t, c.StoreIdentified(path, document(path, "<p>x</p>"), domain.SourceIdentity("older-version")))
	_, err := c.Lookup(path)
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))

	info, err := os.Stat(path)
	require.NoError(t, err)
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()
	id, err := domain.IdentifySource(file, info.ModTime())
	require.NoError(t, err)

	require.NoError(t, c.StoreIdentified(path, document(path, "<p>x</p>"), id))
	_, err = c.Lookup(path)
	assert.NoError(t, err)
}

func TestBuildCache_ConcurrentStores(t *testing.T) {
	f := newFixture(t)
	const n = 40
	paths := make([]string, n)
	for i := range paths {
		paths[i] = f.source(t, fmt.Sprintf("doc%02d.rst", i), fmt.Sprintf("content %d", i))
	}
	size := domain.EstimateSize(document(paths[0], "<p>body</p>"))
	budget := 10 * size
	c := f.open(t, budget)

	var wg sync.WaitGroup
	for _, p := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Store(p, document(p, "<p>body</p>")))
			_, _ = c.Lookup(p)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.SizeBytes(), budget)
	assert.LessOrEqual(t, c.Len(), 10)
	assert.Equal(t, uint64(n), c.HitCount()+c.MissCount())
}

func TestFactory_Open(t *testing.T) {
	out := filepath.Join(t.TempDir(), "_build")
	factory := cache.NewFactory(fs.NewFingerprinter(), nil)

	c, err := factory.Open(out, domain.DefaultConfig())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, err = os.Stat(domain.CacheLockPath(out))
	assert.NoError(t, err)
}
