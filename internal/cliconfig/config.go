// Package cliconfig loads the TOML configuration of the liftplan CLI.
package cliconfig

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/meltforce/liftplan/internal/routinegen"
)

//go:embed config.example.toml
var exampleConf []byte

// Config is the CLI configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Profile ProfileConfig `toml:"profile"`
	State   StateConfig   `toml:"state"`
}

// ServerConfig points the CLI at a liftplan-server.
type ServerConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
}

// ProfileConfig holds the default generator profile.
type ProfileConfig struct {
	Goal       string   `toml:"goal"`
	Experience string   `toml:"experience"`
	Equipment  []string `toml:"equipment"`
	Frequency  int      `toml:"frequency"`
}

// StateConfig locates the local push-state database.
type StateConfig struct {
	Path string `toml:"path"`
}

// UserProfile converts the defaults into generator input.
func (p ProfileConfig) UserProfile() routinegen.UserProfile {
	return routinegen.UserProfile{
		Goal:       p.Goal,
		Experience: p.Experience,
		Equipment:  append([]string(nil), p.Equipment...),
		Frequency:  p.Frequency,
	}
}

// DefaultPath is ~/.liftplan/config.toml, or config.toml when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".liftplan", "config.toml")
}

// LoadConfig reads and parses a TOML configuration file, then applies the
// LIFTPLAN_SERVER_URL and LIFTPLAN_API_KEY overrides. Keys missing from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if _, err := toml.Decode(string(data), config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	config.applyEnv()
	return config, nil
}

// LoadOrDefault loads path when it exists and falls back to the defaults
// otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		config := DefaultConfig()
		config.applyEnv()
		return config, nil
	}
	return LoadConfig(path)
}

// DefaultConfig returns the embedded example configuration.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("parsing embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile writes the example configuration to path, creating the
// parent directory. An existing file is never overwritten.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, exampleConf, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// StatePath returns the state database path with a leading ~ expanded.
func (c *Config) StatePath() string {
	return expandHome(c.State.Path)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LIFTPLAN_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("LIFTPLAN_API_KEY"); v != "" {
		c.Server.APIKey = v
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
