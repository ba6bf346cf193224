package cache

import (
	"github.com/jonboulle/clockwork"
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
)

var _ ports.CacheFactory = (*Factory)(nil)

// Factory opens the build cache of an output directory.
type Factory struct {
	fingerprinter ports.Fingerprinter
	logger        ports.Logger
	clock         clockwork.Clock
}

// NewFactory creates a Factory using the real clock.
func NewFactory(fingerprinter ports.Fingerprinter, logger ports.Logger) *Factory {
	return &Factory{
		fingerprinter: fingerprinter,
		logger:        logger,
		clock:         clockwork.NewRealClock(),
	}
}

// Open opens <outputDir>/.tome-cache with the budget and expiry of cfg.
func (f *Factory) Open(outputDir string, cfg domain.Config) (ports.DocumentCache, error) {
	return New(Options{
		Dir:           domain.CachePath(outputDir),
		LockPath:      domain.CacheLockPath(outputDir),
		BudgetBytes:   cfg.CacheBudgetBytes(),
		Expiration:    cfg.CacheExpiration(),
		Clock:         f.clock,
		Fingerprinter: f.fingerprinter,
		Logger:        f.logger,
	})
}
