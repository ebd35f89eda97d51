// Package projectconfig provides the ProjectConfig struct and loader for
// .pinchboard.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up from the working directory.
const FileName = ".pinchboard.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultAPIBaseURL   = "https://api.pinchbench.com/api"
	DefaultAPITimeout   = 30
	DefaultAPIBatchSize = 5

	DefaultScoreMode = "average"
	DefaultLimit     = 500

	DefaultCacheDriver = "file"
	DefaultCacheDir    = ".pinchboard-cache"

	DefaultServerPort = 3000
)

// Environment variables that override file values.
const (
	EnvAPIURL   = "PINCHBOARD_API_URL"
	EnvCacheDir = "PINCHBOARD_CACHE_DIR"
)

// APIConfig holds upstream API settings.
type APIConfig struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout,omitempty"`
	BatchSize int    `yaml:"batch_size,omitempty"`
	Strict    *bool  `yaml:"strict,omitempty"`
}

// DefaultsConfig holds default query parameters.
type DefaultsConfig struct {
	Version   string `yaml:"version,omitempty"`
	ScoreMode string `yaml:"score_mode,omitempty"`
	Limit     int    `yaml:"limit,omitempty"`
}

// CacheConfig holds submission cache settings.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Driver  string `yaml:"driver,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// ServerConfig holds JSON API server settings.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .pinchboard.yaml.
type ProjectConfig struct {
	API      APIConfig      `yaml:"api,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Cache    CacheConfig    `yaml:"cache,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		API: APIConfig{
			BaseURL:   DefaultAPIBaseURL,
			Timeout:   DefaultAPITimeout,
			BatchSize: DefaultAPIBatchSize,
			Strict:    boolPtr(false),
		},
		Defaults: DefaultsConfig{
			ScoreMode: DefaultScoreMode,
			Limit:     DefaultLimit,
		},
		Cache: CacheConfig{
			Enabled: boolPtr(false),
			Driver:  DefaultCacheDriver,
			Dir:     DefaultCacheDir,
		},
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
	}
}

// CacheDir returns the cache directory, or "" when caching is disabled.
func (c *ProjectConfig) CacheDir() string {
	if c.Cache.Enabled == nil || !*c.Cache.Enabled {
		return ""
	}
	return c.Cache.Dir
}

// StrictAPI reports whether leaderboard payloads are schema-validated.
func (c *ProjectConfig) StrictAPI() bool {
	return c.API.Strict != nil && *c.API.Strict
}

// Load finds .pinchboard.yaml by walking up from startDir (max 10 levels),
// unmarshals it, fills in missing fields with defaults and applies
// environment overrides. A .env file in startDir is loaded first; variables
// already set in the process environment win.
// If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	if err := loadDotEnv(startDir); err != nil {
		return nil, err
	}

	data, err := findConfigFile(startDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	default:
		var fileCfg ProjectConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", FileName, err)
		}
		mergeConfig(cfg, &fileCfg)
	}

	applyEnv(cfg)
	return cfg, nil
}

func loadDotEnv(dir string) error {
	p := filepath.Join(dir, ".env")
	if _, err := os.Stat(p); err != nil {
		return nil
	}
	if err := godotenv.Load(p); err != nil {
		return fmt.Errorf("loading %s: %w", p, err)
	}
	return nil
}

// findConfigFile walks up from dir looking for .pinchboard.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// API
	if src.API.BaseURL != "" {
		dst.API.BaseURL = src.API.BaseURL
	}
	if src.API.Timeout != 0 {
		dst.API.Timeout = src.API.Timeout
	}
	if src.API.BatchSize != 0 {
		dst.API.BatchSize = src.API.BatchSize
	}
	if src.API.Strict != nil {
		dst.API.Strict = src.API.Strict
	}

	// Defaults
	if src.Defaults.Version != "" {
		dst.Defaults.Version = src.Defaults.Version
	}
	if src.Defaults.ScoreMode != "" {
		dst.Defaults.ScoreMode = src.Defaults.ScoreMode
	}
	if src.Defaults.Limit != 0 {
		dst.Defaults.Limit = src.Defaults.Limit
	}

	// Cache
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Driver != "" {
		dst.Cache.Driver = src.Cache.Driver
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if len(src.Server.AllowedOrigins) > 0 {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}
}

// applyEnv overlays environment overrides. Setting PINCHBOARD_CACHE_DIR also
// enables the cache.
func applyEnv(cfg *ProjectConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCacheDir)); v != "" {
		cfg.Cache.Dir = v
		cfg.Cache.Enabled = boolPtr(true)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
