// Package config loads the CLI configuration from a TOML file with
// environment variable overrides.
//
// The file lives at ~/.config/bizcanvas/config.toml by default. Every
// field has a working default, so a missing file is not an error; the
// tool runs out of the box and the file only records what the user
// changed.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Environment overrides. They beat the file, which beats the defaults.
const (
	EnvRelay   = "BIZCANVAS_RELAY"
	EnvDataDir = "BIZCANVAS_DATA_DIR"
)

// Config is the full CLI configuration.
type Config struct {
	// DataDir holds the canvas database. Defaults to ~/.local/share/bizcanvas.
	DataDir string `toml:"data_dir"`

	Relay    RelayConfig    `toml:"relay"`
	Identity IdentityConfig `toml:"identity"`
}

// RelayConfig configures both sides of the relay: the URL the client
// joins through and the listen address and store the serve command uses.
type RelayConfig struct {
	URL    string `toml:"url"`
	Listen string `toml:"listen"`

	// Store selects the room snapshot backend: "memory" or "mongo".
	Store    string `toml:"store"`
	MongoURI string `toml:"mongo_uri"`
}

// IdentityConfig is the display identity carried into shared rooms.
type IdentityConfig struct {
	Name  string `toml:"name"`
	Color string `toml:"color"`

	// Store selects where the identity persists: "file" keeps it on this
	// machine, "redis" shares it across machines pointed at the same
	// Redis database.
	Store     string `toml:"store"`
	RedisAddr string `toml:"redis_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Relay: RelayConfig{
			URL:    "http://localhost:8787",
			Listen: ":8787",
			Store:  "memory",
		},
		Identity: IdentityConfig{
			Color: "#00ff41",
			Store: "file",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "bizcanvas", "config.toml"), nil
}

// Load reads the configuration from path, layering it over the defaults
// and applying environment overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvRelay); v != "" {
		cfg.Relay.URL = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("get home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".local", "share", "bizcanvas")
	}
	return cfg, nil
}

// DBPath returns the canvas database location inside the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "canvas.db")
}
