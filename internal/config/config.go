// Package config loads the YAML configuration shared by the filecache binaries.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leonardcser/filecache/internal/cache"
)

// Environment variable overriding the config file path.
const envConfigPath = "FILECACHE_CONFIG"

const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

type Config struct {
	// Backend selects the store: "file" or "bolt".
	Backend string `yaml:"backend"`
	// Dir is the cache root for the file backend.
	Dir string `yaml:"dir"`
	// BoltPath is the database file for the bolt backend.
	BoltPath string `yaml:"bolt_path"`
	// Bucket is the bolt bucket name.
	Bucket string `yaml:"bucket"`
	// Log is the log file path. Empty falls back to FILECACHE_LOG.
	Log string `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads configuration from a specific file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %s: %w", path, err)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by FILECACHE_CONFIG, or the defaults.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(envConfigPath); path != "" {
		return Load(path)
	}
	return Default(), nil
}

// Validate checks field values. Defaults must already be applied.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.Dir == "" {
			return fmt.Errorf("dir is required for the %s backend", BackendFile)
		}
	case BackendBolt:
		if c.BoltPath == "" {
			return fmt.Errorf("bolt_path is required for the %s backend", BackendBolt)
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendFile, BackendBolt)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	base := filepath.Join(homeDir(), ".cache", "filecache")
	if cfg.Backend == "" {
		cfg.Backend = BackendFile
	}
	if cfg.Dir == "" {
		cfg.Dir = filepath.Join(base, "entries")
	}
	if cfg.BoltPath == "" {
		cfg.BoltPath = filepath.Join(base, "cache.bbolt")
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "cache"
	}
	cfg.Dir = expandHome(cfg.Dir)
	cfg.BoltPath = expandHome(cfg.BoltPath)
	cfg.Log = expandHome(cfg.Log)
}

// OpenCache opens the configured store. The returned close func must be
// called when done. The file backend's directory is created if missing.
func OpenCache(cfg *Config) (cache.Cache, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	switch cfg.Backend {
	case BackendBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.BoltPath), 0o755); err != nil {
			return nil, nil, err
		}
		s, err := cache.OpenBolt(cfg.BoltPath, cache.BoltOptions{Bucket: cfg.Bucket})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, nil, err
		}
		s, err := cache.Open(cfg.Dir, cache.Options{})
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	}
}

func homeDir() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "."
	}
	return home
}

func expandHome(p string) string {
	if p == "~" {
		return homeDir()
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(homeDir(), p[2:])
	}
	return p
}
