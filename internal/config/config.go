// Package config loads and persists the deckforge configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Corpus file and ingestion settings
	Corpus CorpusConfig `toml:"corpus"`

	// Card database settings
	Database DatabaseConfig `toml:"database"`

	// REST API server settings
	Server ServerConfig `toml:"server"`

	// Deck sampler defaults
	Sampler SamplerConfig `toml:"sampler"`

	// Chart rendering settings
	Charts ChartsConfig `toml:"charts"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// CorpusConfig contains card corpus ingestion settings.
type CorpusConfig struct {
	FilePath      string `toml:"file_path"`      // Path to the normalized card corpus (JSON lines)
	BatchSize     int    `toml:"batch_size"`     // Cards indexed per batch
	BatchesPerSec int    `toml:"batches_per_sec"` // Ingestion pacing (0 = unpaced)
	Watch         bool   `toml:"watch"`          // Rebuild the index when the corpus file changes
	WatchDebounce string `toml:"watch_debounce"` // Debounce window for file events (e.g. "500ms")
}

// DatabaseConfig contains card store settings.
type DatabaseConfig struct {
	Path string `toml:"path"` // Path to the SQLite card database
}

// ServerConfig contains API server settings.
type ServerConfig struct {
	Port int    `toml:"port"` // API server port
	Host string `toml:"host"` // Bind address
}

// SamplerConfig contains deck sampler defaults.
type SamplerConfig struct {
	Format              string  `toml:"format"`               // Default format for generated decks
	CompletionThreshold float64 `toml:"completion_threshold"` // Fraction of target size required for a valid deck
}

// ChartsConfig contains chart rendering settings.
type ChartsConfig struct {
	OutputDir string `toml:"output_dir"` // Directory for rendered chart HTML files
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			FilePath:      "",
			BatchSize:     500,
			BatchesPerSec: 0,
			Watch:         false,
			WatchDebounce: "500ms",
		},
		Database: DatabaseConfig{
			Path: "",
		},
		Server: ServerConfig{
			Port: 8080,
			Host: "127.0.0.1",
		},
		Sampler: SamplerConfig{
			Format:              "standard",
			CompletionThreshold: 0.9,
		},
		Charts: ChartsConfig{
			OutputDir: "",
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".deckforge")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Corpus.BatchSize < 0 {
		return fmt.Errorf("corpus batch size cannot be negative: %d", c.Corpus.BatchSize)
	}

	if c.Corpus.BatchesPerSec < 0 {
		return fmt.Errorf("corpus pacing cannot be negative: %d", c.Corpus.BatchesPerSec)
	}

	if _, err := time.ParseDuration(c.Corpus.WatchDebounce); err != nil {
		return fmt.Errorf("invalid watch debounce %q: %w", c.Corpus.WatchDebounce, err)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Sampler.CompletionThreshold < 0 || c.Sampler.CompletionThreshold > 1 {
		return fmt.Errorf("completion threshold must be within [0, 1]: %v", c.Sampler.CompletionThreshold)
	}

	return nil
}

// GetWatchDebounce returns the corpus watch debounce as a duration.
func (c *Config) GetWatchDebounce() (time.Duration, error) {
	return time.ParseDuration(c.Corpus.WatchDebounce)
}
