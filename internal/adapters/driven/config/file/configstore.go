// Package file provides the TOML-based configuration store. Settings live in
// a single config.toml in the urbanIQ config directory; anything not set
// there falls back to the built-in production defaults.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Config is the persisted CLI configuration.
type Config struct {
	// DataDir is where packages and the job database are written.
	// Empty means ~/.urbaniq/data.
	DataDir string `toml:"data_dir"`

	Geoportal GeoportalConfig `toml:"geoportal"`
	Overpass  OverpassConfig  `toml:"overpass"`
}

// GeoportalConfig holds the Berlin geoportal WFS endpoints.
type GeoportalConfig struct {
	BoundaryEndpoint  string `toml:"boundary_endpoint"`
	BoundaryLayer     string `toml:"boundary_layer"`
	BuildingsEndpoint string `toml:"buildings_endpoint"`
	BuildingsLayer    string `toml:"buildings_layer"`
	CyclingEndpoint   string `toml:"cycling_endpoint"`
	CyclingLayer      string `toml:"cycling_layer"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
}

// OverpassConfig holds the Overpass API settings.
type OverpassConfig struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ConfigStore is a file-based configuration store using TOML.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewConfigStore creates a TOML config store. If configDir is empty, it
// defaults to ~/.urbaniq. An existing config.toml is loaded; a missing one is
// not an error.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".urbaniq")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Config returns the current configuration.
func (s *ConfigStore) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Set replaces the configuration in memory. Call Save to persist it.
func (s *ConfigStore) Set(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// Load reads the config file from disk.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	s.config = cfg
	return nil
}

// Save writes the config file to disk.
func (s *ConfigStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := toml.Marshal(s.config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmpFile := s.filePath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return os.Rename(tmpFile, s.filePath)
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
