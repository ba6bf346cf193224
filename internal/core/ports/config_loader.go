package ports

import "go.trai.ch/tome/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration for the given source directory. When explicitPath is
	// non-empty that file is used instead of searching the source directory.
	// A missing configuration file yields domain.DefaultConfig().
	Load(sourceDir, explicitPath string) (domain.Config, error)
}
