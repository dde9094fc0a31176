// ABOUTME: Hydration configuration management with backend selection.
// ABOUTME: Handles settings, logging level, and the storage and mirror factories.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/hydration/internal/charm"
	"github.com/harperreed/hydration/internal/storage"
	log "github.com/sirupsen/logrus"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
)

// DefaultListenAddr is where `hydration serve` listens when unset.
const DefaultListenAddr = ":3000"

// WeatherAPIKeyEnv overrides the configured WeatherAPI key.
const WeatherAPIKeyEnv = "WEATHER_API_KEY"

// Config stores hydration tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the directory holding hydration.db.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/hydration.
	DataDir string `json:"data_dir,omitempty"`

	// DefaultUser is the email used when --user is not given.
	DefaultUser string `json:"default_user,omitempty"`

	// WeatherAPIKey is the WeatherAPI.com key. WEATHER_API_KEY wins when set.
	WeatherAPIKey string `json:"weather_api_key,omitempty"`

	// ListenAddr is the HTTP listen address for `serve`.
	ListenAddr string `json:"listen_addr,omitempty"`

	// LogLevel is a logrus level name. Defaults to "info".
	LogLevel string `json:"log_level,omitempty"`

	// Mirror copies every local write to Charm Cloud on a best-effort basis.
	Mirror bool `json:"mirror,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetListenAddr returns the HTTP listen address.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// GetWeatherAPIKey returns the WeatherAPI key, preferring the environment.
func (c *Config) GetWeatherAPIKey() string {
	if key := os.Getenv(WeatherAPIKeyEnv); key != "" {
		return key
	}
	return c.WeatherAPIKey
}

// GetLogLevel parses LogLevel, defaulting to info.
func (c *Config) GetLogLevel() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// ConfigureLogging applies the log level to the standard logrus logger.
func (c *Config) ConfigureLogging() error {
	lvl, err := c.GetLogLevel()
	log.SetLevel(lvl)
	return err
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case BackendSQLite:
		return storage.OpenIn(c.GetDataDir())
	case BackendCharm:
		return charm.Open()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenMirror returns the Charm store used as a write mirror, or nil when
// mirroring is off or Charm is already the primary backend.
func (c *Config) OpenMirror() (*charm.Store, error) {
	if !c.Mirror || c.GetBackend() == BackendCharm {
		return nil, nil
	}
	return charm.Open()
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "hydration", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
