package domain

import "time"

// Config is the project configuration.
type Config struct {
	Project              string           `yaml:"project" toml:"project" json:"project"`
	RootDoc              string           `yaml:"root_doc" toml:"root_doc" json:"root_doc"`
	ParallelJobs         int              `yaml:"parallel_jobs" toml:"parallel_jobs" json:"parallel_jobs"`
	MaxCacheSizeMB       int              `yaml:"max_cache_size_mb" toml:"max_cache_size_mb" json:"max_cache_size_mb"`
	CacheExpirationHours int              `yaml:"cache_expiration_hours" toml:"cache_expiration_hours" json:"cache_expiration_hours"`
	FailOnWarning        bool             `yaml:"fail_on_warning" toml:"fail_on_warning" json:"fail_on_warning"`
	Extensions           []string         `yaml:"extensions" toml:"extensions" json:"extensions"`
	StaticDirs           []string         `yaml:"static_dirs" toml:"static_dirs" json:"static_dirs"`
	TemplateDirs         []string         `yaml:"template_dirs" toml:"template_dirs" json:"template_dirs"`
	Language             string           `yaml:"language" toml:"language" json:"language"`
	ResolveIncludes      bool             `yaml:"resolve_includes" toml:"resolve_includes" json:"resolve_includes"`
	Validation           ValidationConfig `yaml:"validation" toml:"validation" json:"validation"`

	// Source is the file the configuration was read from, empty for defaults.
	Source string `yaml:"-" toml:"-" json:"-"`
}

// ValidationConfig toggles the optional validator checks.
type ValidationConfig struct {
	CrossReferences bool `yaml:"cross_references" toml:"cross_references" json:"cross_references"`
	EmptyToctree    bool `yaml:"empty_toctree" toml:"empty_toctree" json:"empty_toctree"`
	DuplicateLabels bool `yaml:"duplicate_labels" toml:"duplicate_labels" json:"duplicate_labels"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Project:              "Documentation",
		RootDoc:              DefaultRootDoc,
		MaxCacheSizeMB:       DefaultMaxCacheSizeMB,
		CacheExpirationHours: int(DefaultCacheExpiration / time.Hour),
		StaticDirs:           []string{StaticDirName},
		TemplateDirs:         []string{TemplatesDirName},
		Language:             "en",
		Validation: ValidationConfig{
			CrossReferences: true,
			EmptyToctree:    true,
			DuplicateLabels: true,
		},
	}
}

// CacheBudgetBytes returns the cache size budget in bytes.
func (c *Config) CacheBudgetBytes() int64 {
	return int64(c.MaxCacheSizeMB) * 1024 * 1024
}

// CacheExpiration returns the cache freshness window.
func (c *Config) CacheExpiration() time.Duration {
	return time.Duration(c.CacheExpirationHours) * time.Hour
}
