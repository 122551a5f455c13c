package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.User.ID != "default" {
		t.Errorf("expected user 'default', got %q", cfg.User.ID)
	}
	if cfg.Generator.Provider != "ollama" {
		t.Errorf("expected provider 'ollama', got %q", cfg.Generator.Provider)
	}
	if cfg.Generator.Model != "qwen2.5:7b" {
		t.Errorf("expected model 'qwen2.5:7b', got %q", cfg.Generator.Model)
	}
	if cfg.Defaults.ToneLevel != 30 {
		t.Errorf("expected tone level 30, got %d", cfg.Defaults.ToneLevel)
	}
	if cfg.Defaults.DetailLevel != "moderate" {
		t.Errorf("expected detail 'moderate', got %q", cfg.Defaults.DetailLevel)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
user:
  id: alex
generator:
  provider: openai
defaults:
  tone_level: 70
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.User.ID != "alex" {
		t.Errorf("expected user 'alex', got %q", cfg.User.ID)
	}
	if cfg.Generator.Provider != "openai" {
		t.Errorf("expected provider 'openai', got %q", cfg.Generator.Provider)
	}
	if cfg.Defaults.ToneLevel != 70 {
		t.Errorf("expected tone level 70, got %d", cfg.Defaults.ToneLevel)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Generator.OllamaURL != "http://localhost:11434" {
		t.Errorf("expected default ollama_url, got %q", cfg.Generator.OllamaURL)
	}
	if cfg.Generator.MaxTokens != 768 {
		t.Errorf("expected default max_tokens, got %d", cfg.Generator.MaxTokens)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Generator.Provider != "ollama" {
		t.Errorf("expected provider 'ollama', got %q", cfg.Generator.Provider)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestResolveConfigPathExplicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("user:\n  id: alex\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	got, err := ResolveConfigPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path {
		t.Errorf("expected %q, got %q", path, got)
	}
}

func TestResolveConfigPathExplicitMissing(t *testing.T) {
	if _, err := ResolveConfigPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for an explicit path that does not exist")
	}
}

func TestGetDataDirOverride(t *testing.T) {
	cfg := &Config{}
	cfg.Output.DataDir = "/tmp/voiceloom-test"
	if got := cfg.GetDataDir(); got != "/tmp/voiceloom-test" {
		t.Errorf("expected override, got %q", got)
	}

	cfg.Output.DataDir = ""
	if got := cfg.GetDataDir(); got == "" {
		t.Error("expected XDG default when no override is set")
	}
}
