// Package config provides the project configuration loader for tome.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// FileNames lists the configuration files looked up in the source directory, in order.
var FileNames = []string{"tome.yaml", "tome.yml", "tome.toml", "tome.json"}

// Loader implements ports.ConfigLoader using YAML, TOML or JSON files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads explicitPath, or the first configuration file found in sourceDir.
// Without a file the defaults are returned. Keys missing from the file keep
// their default values.
func (l *Loader) Load(sourceDir, explicitPath string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := explicitPath
	if path == "" {
		path = findConfiguration(sourceDir)
		if path == "" {
			if l.Logger != nil {
				l.Logger.Debug("no configuration file found, using defaults")
			}
			return cfg, nil
		}
	}

	if err := decodeFile(path, &cfg); err != nil {
		return domain.Config{}, err
	}
	if err := Validate(&cfg); err != nil {
		return domain.Config{}, zerr.With(err, "file", path)
	}
	cfg.Source = path

	if l.Logger != nil {
		l.Logger.Debug(fmt.Sprintf("loaded configuration from %s", path))
	}
	return cfg, nil
}

func findConfiguration(sourceDir string) string {
	for _, name := range FileNames {
		candidate := filepath.Join(sourceDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func decodeFile(path string, cfg *domain.Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigLoadFailed, err.Error()), "file", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigLoadFailed, err.Error()), "file", path)
	}
	return nil
}

// Validate checks that numeric settings are in range.
func Validate(cfg *domain.Config) error {
	switch {
	case cfg.ParallelJobs < 0:
		return invalid("parallel_jobs", cfg.ParallelJobs)
	case cfg.MaxCacheSizeMB <= 0:
		return invalid("max_cache_size_mb", cfg.MaxCacheSizeMB)
	case cfg.CacheExpirationHours <= 0:
		return invalid("cache_expiration_hours", cfg.CacheExpirationHours)
	case strings.TrimSpace(cfg.RootDoc) == "":
		return invalid("root_doc", cfg.RootDoc)
	}
	return nil
}

func invalid(key string, value any) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "config"), "key", key), "value", value)
}
