package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.trai.ch/tome/internal/adapters/cache" //nolint:depguard // Cache lock guards removal
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/zerr"
)

// Clean removes the output directory. It refuses to run while another process
// holds the cache lock of that directory.
func (a *App) Clean(_ context.Context, outputDir string) (err error) {
	if outputDir == "" {
		outputDir = domain.DefaultOutputDir
	}

	if _, statErr := os.Stat(outputDir); errors.Is(statErr, os.ErrNotExist) {
		a.logger.Warn(fmt.Sprintf("output directory %s does not exist", outputDir))
		return nil
	}

	lock, err := cache.AcquireDirLock(domain.CacheLockPath(outputDir))
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, lock.Release())
	}()

	a.logger.Info(fmt.Sprintf("removing %s...", outputDir))
	if err := os.RemoveAll(outputDir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove output directory"), "path", outputDir)
	}
	a.logger.Info(fmt.Sprintf("removed %s", outputDir))
	return nil
}
