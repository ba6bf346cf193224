package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	entryExt      = ".json"
	tempPattern   = "entry-*.tmp"
	tempExtension = ".tmp"
)

// diskStore mirrors artifacts as one JSON file per source path.
type diskStore struct {
	dir string
}

func newDiskStore(dir string) *diskStore {
	return &diskStore{dir: filepath.Clean(dir)}
}

func (d *diskStore) filename(source string) string {
	hash := sha256.Sum256([]byte(source))
	return filepath.Join(d.dir, hex.EncodeToString(hash[:])+entryExt)
}

func encodeArtifact(artifact *domain.CachedArtifact) ([]byte, error) {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal cache entry")
	}
	return data, nil
}

// write replaces the entry of source atomically via a temp file in the same directory.
func (d *diskStore) write(source string, data []byte) error {
	if err := os.MkdirAll(d.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "dir", d.dir)
	}

	tmpFile, err := os.CreateTemp(d.dir, tempPattern)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "dir", d.dir)
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "source", source)
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "source", source)
	}
	if err := os.Chmod(tmpName, domain.PrivateFilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "source", source)
	}
	if err := os.Rename(tmpName, d.filename(source)); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "source", source)
	}
	return nil
}

func (d *diskStore) remove(source string) error {
	return d.removeFile(d.filename(source))
}

func (d *diskStore) removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove cache entry"), "path", path)
	}
	return nil
}

// loaded is the outcome of reading one entry file.
type loaded struct {
	path     string
	artifact *domain.CachedArtifact
	err      error
}

// readAll decodes every entry file. Undecodable files are returned with an error
// wrapping domain.ErrCacheEntryCorrupt so the caller can discard them.
func (d *diskStore) readAll() ([]loaded, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read cache directory"), "dir", d.dir)
	}

	out := make([]loaded, 0, len(entries))
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		path := filepath.Join(d.dir, de.Name())
		if strings.HasSuffix(de.Name(), tempExtension) {
			// Leftover from an interrupted write.
			_ = os.Remove(path)
			continue
		}
		if !strings.HasSuffix(de.Name(), entryExt) {
			continue
		}
		out = append(out, d.read(path))
	}
	return out, nil
}

func (d *diskStore) read(path string) loaded {
	//nolint:gosec // Path is constructed from the cache directory listing
	data, err := os.ReadFile(path)
	if err != nil {
		return loaded{path: path, err: zerr.With(zerr.Wrap(domain.ErrCacheEntryCorrupt, err.Error()), "path", path)}
	}
	var artifact domain.CachedArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return loaded{path: path, err: zerr.With(zerr.Wrap(domain.ErrCacheEntryCorrupt, err.Error()), "path", path)}
	}
	if artifact.Document == nil || artifact.Document.SourcePath == "" || artifact.IdentityHash == "" {
		return loaded{path: path, err: zerr.With(zerr.Wrap(domain.ErrCacheEntryCorrupt, "incomplete entry"), "path", path)}
	}
	return loaded{path: path, artifact: &artifact}
}

// reset removes whatever occupies the cache directory path and recreates it empty.
func (d *diskStore) reset() error {
	if err := os.RemoveAll(d.dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove cache directory"), "dir", d.dir)
	}
	if err := os.MkdirAll(d.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache directory"), "dir", d.dir)
	}
	return nil
}

// clear removes every entry file but keeps the directory.
func (d *diskStore) clear() error {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read cache directory"), "dir", d.dir)
	}
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		if err := d.removeFile(filepath.Join(d.dir, de.Name())); err != nil {
			return err
		}
	}
	return nil
}
