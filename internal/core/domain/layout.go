package domain

import (
	"path/filepath"
	"time"
)

const (
	// DirPerm is the permission used for directories created by the build.
	DirPerm = 0o750
	// FilePerm is the permission used for rendered output files.
	FilePerm = 0o644
	// PrivateFilePerm is the permission used for cache entries and lock files.
	PrivateFilePerm = 0o600

	// DefaultSourceDir is the source directory used when none is given.
	DefaultSourceDir = "."
	// DefaultOutputDir is the output directory used when none is given.
	DefaultOutputDir = "_build"
	// CacheDirName is the name of the cache directory inside the output directory.
	CacheDirName = ".tome-cache"
	// CacheLockName is the name of the lock file guarding the cache directory.
	CacheLockName = ".tome-cache.lock"

	// DefaultRootDoc is the document name at the top of the navigation tree.
	DefaultRootDoc = "index"
	// DefaultMaxCacheSizeMB is the default cache budget.
	DefaultMaxCacheSizeMB = 500
	// DefaultCacheExpiration is the default freshness window for cache entries.
	DefaultCacheExpiration = 24 * time.Hour
	// CacheEntryOverhead is the fixed per-entry size added to every artifact estimate.
	CacheEntryOverhead = 1024

	// StaticDirName is the directory holding static assets.
	StaticDirName = "_static"
	// TemplatesDirName is the directory holding page templates.
	TemplatesDirName = "_templates"
	// SearchIndexFile is the name of the search index written to the output directory.
	SearchIndexFile = "searchindex.json"
	// XrefIndexFile is the name of the cross reference index written to the output directory.
	XrefIndexFile = "xref.json"
	// HTMLExt is the extension of rendered documents.
	HTMLExt = ".html"
)

// SourceExtensions lists the file extensions recognized as source documents.
var SourceExtensions = []string{".rst", ".md", ".txt"}

// SkippedDirs lists directory names never descended into during discovery.
var SkippedDirs = []string{"_build", "__pycache__", "node_modules"}

// CachePath returns the cache directory inside the given output directory.
func CachePath(outputDir string) string {
	return filepath.Join(outputDir, CacheDirName)
}

// CacheLockPath returns the cache lock file inside the given output directory.
func CacheLockPath(outputDir string) string {
	return filepath.Join(outputDir, CacheLockName)
}
