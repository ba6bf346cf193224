package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
	"time"
)

// SourceIdentity identifies one version of a source file: a hash over its content
// and its modification time in seconds.
type SourceIdentity string

// String returns the hex encoded identity.
func (id SourceIdentity) String() string {
	return string(id)
}

// IdentifySource hashes content read from r together with mtime truncated to
// seconds.
func IdentifySource(r io.Reader, mtime time.Time) (SourceIdentity, error) {
	hasher := sha256.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return "", err
	}
	seconds := uint64(mtime.Unix()) //nolint:gosec // Pre-epoch mtimes wrap, which only changes the identity
	if err := binary.Write(hasher, binary.LittleEndian, seconds); err != nil {
		return "", err
	}
	return SourceIdentity(hex.EncodeToString(hasher.Sum(nil))), nil
}

// CachedArtifact is a rendered document held by the build cache together with
// the bookkeeping needed for staleness checks and eviction.
type CachedArtifact struct {
	Document     *Document      `json:"document"`
	IdentityHash SourceIdentity `json:"identity_hash"`
	CachedAt     time.Time      `json:"cached_at"`
	AccessCount  uint64         `json:"access_count"`
	SizeBytes    int64          `json:"size_bytes"`
}

// EstimateSize returns the estimated in-memory footprint of a document.
func EstimateSize(doc *Document) int64 {
	if doc == nil {
		return CacheEntryOverhead
	}
	return int64(len(doc.HTML)+len(doc.Title)+len(doc.SourcePath)+len(doc.OutputPath)) + CacheEntryOverhead
}

// Expired reports whether the artifact is older than window at now.
func (a *CachedArtifact) Expired(now time.Time, window time.Duration) bool {
	return now.Sub(a.CachedAt) > window
}
