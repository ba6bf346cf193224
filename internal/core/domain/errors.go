package domain

import "go.trai.ch/zerr"

var (
	// ErrCycleDetected is returned when a cycle is detected in the document dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrMissingDependency is returned when a document depends on a file that was not discovered.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrDocumentAlreadyExists is returned when a file is added to the graph twice.
	ErrDocumentAlreadyExists = zerr.New("document already exists")

	// ErrCacheMiss is returned by a cache lookup that found no valid entry.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrCacheEntryCorrupt is returned when a persisted cache entry cannot be decoded.
	ErrCacheEntryCorrupt = zerr.New("cache entry corrupt")

	// ErrCacheWriteFailed is returned when a cache entry cannot be persisted.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheLocked is returned when another process holds the cache directory lock.
	ErrCacheLocked = zerr.New("cache directory is locked by another process")

	// ErrFingerprintFailed is returned when a source file cannot be fingerprinted.
	ErrFingerprintFailed = zerr.New("failed to fingerprint source file")

	// ErrReadSourceFailed is returned when a source file cannot be read.
	ErrReadSourceFailed = zerr.New("failed to read source file")

	// ErrParseFailed is returned when a source file cannot be parsed.
	ErrParseFailed = zerr.New("failed to parse source file")

	// ErrCreateOutputFailed is returned when the output directory cannot be created.
	ErrCreateOutputFailed = zerr.New("failed to create output directory")

	// ErrWriteOutputFailed is returned when a rendered file cannot be written.
	ErrWriteOutputFailed = zerr.New("failed to write output file")

	// ErrProcessingFailed is returned when a document fails during the processing stage.
	ErrProcessingFailed = zerr.New("document processing failed")

	// ErrFinishingFailed is returned when a finishing step fails.
	ErrFinishingFailed = zerr.New("finishing step failed")

	// ErrDiscoveryFailed is returned when the source tree cannot be walked.
	ErrDiscoveryFailed = zerr.New("source discovery failed")

	// ErrInvalidParallelism is returned when the worker pool size is not positive.
	ErrInvalidParallelism = zerr.New("parallelism must be positive")

	// ErrInvalidStageTransition is returned when the build stage machine is moved backwards.
	ErrInvalidStageTransition = zerr.New("invalid build stage transition")

	// ErrExtensionExists is returned when two extensions are registered under the same name.
	ErrExtensionExists = zerr.New("extension already registered")

	// ErrConfigLoadFailed is returned when the configuration file cannot be read or decoded.
	ErrConfigLoadFailed = zerr.New("failed to load configuration")

	// ErrConfigInvalid is returned when a configuration value is out of range.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrSourceNotFound is returned when the source directory does not exist.
	ErrSourceNotFound = zerr.New("source directory not found")

	// ErrBuildExecutionFailed is returned when the build fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrWarningsAsErrors is returned when warnings occurred and fail-on-warning is set.
	ErrWarningsAsErrors = zerr.New("Build failed due to warnings (caused by --fail-on-warning)")
)
