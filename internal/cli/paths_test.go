package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSessionDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	os.Unsetenv("XDG_CONFIG_HOME")

	dir, err := sessionDir()
	if err != nil {
		t.Fatalf("sessionDir() error: %v", err)
	}

	if dir == "" {
		t.Error("sessionDir() returned empty string")
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("sessionDir() = %q, should be under home %q", dir, home)
	}

	if !strings.Contains(dir, ".config") {
		t.Errorf("sessionDir() = %q, should contain '.config'", dir)
	}

	if !strings.Contains(dir, appName) {
		t.Errorf("sessionDir() = %q, should contain %q", dir, appName)
	}
}

func TestSessionDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	dir, err := sessionDir()
	if err != nil {
		t.Fatalf("sessionDir() error: %v", err)
	}

	want := filepath.Join("/custom/config", appName, "sessions")
	if dir != want {
		t.Errorf("sessionDir() = %q, want %q", dir, want)
	}
}
