package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "solohub" {
		t.Errorf("expected Name=solohub, got %s", cfg.Name)
	}
	if cfg.Storage.Backend != "memory" || cfg.Storage.SessionBackend != "memory" {
		t.Errorf("expected memory backends, got %+v", cfg.Storage)
	}
	if cfg.AI.ContextWindow != 20 {
		t.Errorf("expected ContextWindow=20, got %d", cfg.AI.ContextWindow)
	}
	if cfg.Storage.ExpiryWindowDays != 30 {
		t.Errorf("expected ExpiryWindowDays=30, got %d", cfg.Storage.ExpiryWindowDays)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SOLOHUB_MODEL", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Storage.Backend = "badger"
	cfg.AI.Model = "gemini-2.0-pro"
	cfg.Permissions.Roles = map[string][]string{
		"member": {"project:read"},
	}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Storage.Backend != "badger" {
		t.Errorf("expected Backend=badger, got %s", loaded.Storage.Backend)
	}
	if loaded.AI.Model != "gemini-2.0-pro" {
		t.Errorf("expected overridden model, got %s", loaded.AI.Model)
	}
	if got := loaded.Permissions.Roles["member"]; len(got) != 1 || got[0] != "project:read" {
		t.Errorf("permissions did not round trip: %v", got)
	}
}

func TestConfig_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "solohub" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	os.Setenv("GEMINI_API_KEY", "env-key")
	os.Setenv("SOLOHUB_MODEL", "env-model")
	defer os.Unsetenv("GEMINI_API_KEY")
	defer os.Unsetenv("SOLOHUB_MODEL")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AI.APIKey != "env-key" {
		t.Errorf("expected env api key, got %q", cfg.AI.APIKey)
	}
	if cfg.AI.Model != "env-model" {
		t.Errorf("expected env model, got %q", cfg.AI.Model)
	}
}
