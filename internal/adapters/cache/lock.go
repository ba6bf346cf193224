package cache

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/zerr"
)

// DirLock is an advisory cross-process lock on a cache directory. Builds hold it
// shared; clearing the cache or removing the output directory needs it exclusive.
type DirLock struct {
	lock *flock.Flock
}

// AcquireDirLock takes the lock at path exclusively without blocking. It fails
// with domain.ErrCacheLocked when another process holds it in any mode.
func AcquireDirLock(path string) (*DirLock, error) {
	return acquire(path, (*flock.Flock).TryLock)
}

// AcquireSharedDirLock takes the lock at path in shared mode without blocking.
// It fails with domain.ErrCacheLocked only while another process holds it
// exclusively.
func AcquireSharedDirLock(path string) (*DirLock, error) {
	return acquire(path, (*flock.Flock).TryRLock)
}

func acquire(path string, try func(*flock.Flock) (bool, error)) (*DirLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create lock directory"), "path", path)
	}

	lock := flock.New(path, flock.SetPermissions(domain.PrivateFilePerm))
	ok, err := try(lock)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to acquire cache lock"), "path", path)
	}
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheLocked, "cache"), "path", path)
	}
	return &DirLock{lock: lock}, nil
}

// WithExclusive converts a shared lock to an exclusive one for the duration of
// fn and returns to shared mode afterwards. It fails with domain.ErrCacheLocked
// when other processes share the lock.
func (l *DirLock) WithExclusive(fn func() error) error {
	ok, err := l.lock.TryLock()
	if err != nil || !ok {
		// A failed conversion may already have dropped the shared lock.
		if reErr := l.reshare(); reErr != nil {
			return reErr
		}
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to upgrade cache lock"), "path", l.lock.Path())
		}
		return zerr.With(zerr.Wrap(domain.ErrCacheLocked, "cache"), "path", l.lock.Path())
	}

	fnErr := fn()
	if err := l.reshare(); err != nil {
		return errors.Join(fnErr, err)
	}
	return fnErr
}

// reshare drops the lock and takes it again in shared mode; flock has no
// atomic downgrade.
func (l *DirLock) reshare() error {
	if err := l.lock.Unlock(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to release cache lock"), "path", l.lock.Path())
	}
	ok, err := l.lock.TryRLock()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to reacquire shared cache lock"), "path", l.lock.Path())
	}
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrCacheLocked, "failed to reacquire shared cache lock"), "path", l.lock.Path())
	}
	return nil
}

// Release drops the lock. It is safe to call more than once.
func (l *DirLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to release cache lock"), "path", l.lock.Path())
	}
	return nil
}
