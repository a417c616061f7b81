package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv(EnvRelay, "")
	t.Setenv(EnvDataDir, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Relay.URL != "http://localhost:8787" {
		t.Errorf("relay url = %q, want default", cfg.Relay.URL)
	}
	if cfg.Relay.Store != "memory" {
		t.Errorf("relay store = %q, want memory", cfg.Relay.Store)
	}
	if cfg.DataDir == "" {
		t.Error("data dir not defaulted")
	}
	if cfg.Identity.Store != "file" {
		t.Errorf("identity store = %q, want file", cfg.Identity.Store)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvRelay, "")
	t.Setenv(EnvDataDir, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_dir = "/tmp/bc-data"

[relay]
url = "https://relay.example.com"
store = "mongo"
mongo_uri = "mongodb://localhost:27017"

[identity]
name = "alice"
color = "#ff00ff"
store = "redis"
redis_addr = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Relay.URL != "https://relay.example.com" {
		t.Errorf("relay url = %q", cfg.Relay.URL)
	}
	if cfg.Relay.Store != "mongo" || cfg.Relay.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("relay store = %+v", cfg.Relay)
	}
	if cfg.Identity.Name != "alice" || cfg.Identity.Color != "#ff00ff" {
		t.Errorf("identity = %+v", cfg.Identity)
	}
	if cfg.Identity.Store != "redis" || cfg.Identity.RedisAddr != "localhost:6379" {
		t.Errorf("identity store = %+v", cfg.Identity)
	}
	if cfg.DataDir != "/tmp/bc-data" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
	if got, want := cfg.DBPath(), filepath.Join("/tmp/bc-data", "canvas.db"); got != want {
		t.Errorf("db path = %q, want %q", got, want)
	}

	// Listen keeps its default when the file doesn't set it.
	if cfg.Relay.Listen != ":8787" {
		t.Errorf("listen = %q, want default", cfg.Relay.Listen)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[relay]\nurl = \"https://from-file\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvRelay, "https://from-env")
	t.Setenv(EnvDataDir, "/tmp/env-data")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Relay.URL != "https://from-env" {
		t.Errorf("relay url = %q, want env value", cfg.Relay.URL)
	}
	if cfg.DataDir != "/tmp/env-data" {
		t.Errorf("data dir = %q, want env value", cfg.DataDir)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error, got nil")
	}
}
