package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.URL != "http://localhost:8080" {
			t.Errorf("expected server url http://localhost:8080, got %s", config.Server.URL)
		}
		if config.Profile.Goal != "strength" || config.Profile.Frequency != 3 {
			t.Errorf("unexpected default profile %+v", config.Profile)
		}
		if len(config.Profile.Equipment) != 3 {
			t.Errorf("expected 3 default equipment tags, got %v", config.Profile.Equipment)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nested", "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}
		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.State.Path != DefaultConfig().State.Path {
			t.Errorf("created config state path doesn't match default")
		}
		if err := CreateConfigFile(configPath); err == nil {
			t.Error("expected error when config file already exists")
		}
	})

	t.Run("PartialFileKeepsDefaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		content := "[profile]\ngoal = \"체중 감량\"\nequipment = []\n"
		if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if config.Profile.Goal != "체중 감량" {
			t.Errorf("expected goal from file, got %s", config.Profile.Goal)
		}
		if len(config.Profile.Equipment) != 0 {
			t.Errorf("expected empty equipment, got %v", config.Profile.Equipment)
		}
		if config.Server.URL != "http://localhost:8080" {
			t.Errorf("expected default server url, got %s", config.Server.URL)
		}
	})

	t.Run("InvalidTOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server\nurl="), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("LIFTPLAN_API_KEY", "env-key")
		t.Setenv("LIFTPLAN_SERVER_URL", "http://liftplan.example.ts.net")

		config, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatal(err)
		}
		if config.Server.APIKey != "env-key" || config.Server.URL != "http://liftplan.example.ts.net" {
			t.Errorf("env overrides not applied: %+v", config.Server)
		}
	})
}

// TestStatePathExpandsHome verifies a leading ~ resolves to the home directory.
func TestStatePathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c := &Config{State: StateConfig{Path: "~/.liftplan/state.db"}}
	if got, want := c.StatePath(), filepath.Join(home, ".liftplan", "state.db"); got != want {
		t.Errorf("StatePath() = %q, want %q", got, want)
	}
	c.State.Path = "/tmp/state.db"
	if got := c.StatePath(); got != "/tmp/state.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}

// TestProfileConfigUserProfile verifies the profile defaults convert into
// generator input without sharing the equipment slice.
func TestProfileConfigUserProfile(t *testing.T) {
	p := ProfileConfig{Goal: "hypertrophy", Equipment: []string{"dumbbell"}, Frequency: 4}
	up := p.UserProfile()
	up.Equipment[0] = "band"
	if p.Equipment[0] != "dumbbell" {
		t.Error("UserProfile shares the equipment slice")
	}
	if up.Goal != "hypertrophy" || up.Frequency != 4 {
		t.Errorf("profile = %+v", up)
	}
}
