package config

import "runtime"

// Config is the complete halgen configuration. It can be loaded from
// .halgen/config.yml with environment variable overrides.
type Config struct {
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	Generator GeneratorConfig `yaml:"generator" mapstructure:"generator"`
}

// PathsConfig defines which vendor files to process.
type PathsConfig struct {
	Patterns []string `yaml:"patterns" mapstructure:"patterns"` // glob patterns relative to the input root
}

// GeneratorConfig tunes the batch run.
type GeneratorConfig struct {
	ExtraDefines  []string `yaml:"extra_defines" mapstructure:"extra_defines"`   // additional -D flags for every file
	Workers       int      `yaml:"workers" mapstructure:"workers"`               // parallel file workers
	CacheCapacity int      `yaml:"cache_capacity" mapstructure:"cache_capacity"` // parsed-unit cache entries
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			// hal implementations live in sources, ll APIs are
			// header-only; both sit one directory below the input root.
			Patterns: []string{"*/*hal*.c", "*/*ll*.h"},
		},
		Generator: GeneratorConfig{
			ExtraDefines:  []string{},
			Workers:       runtime.NumCPU(),
			CacheCapacity: 512,
		},
	}
}
