package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Assistant.Provider != ProviderGoogle {
		t.Errorf("expected default provider %q, got %q", ProviderGoogle, cfg.Assistant.Provider)
	}
	if cfg.Assistant.Model != "gemini-2.5-flash" {
		t.Errorf("expected default model gemini-2.5-flash, got %q", cfg.Assistant.Model)
	}
	if cfg.Assistant.Temperature != 0.3 {
		t.Errorf("expected default temperature 0.3, got %v", cfg.Assistant.Temperature)
	}
	if cfg.Preferences.Backend != PrefsSQLite {
		t.Errorf("expected default backend sqlite, got %q", cfg.Preferences.Backend)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.nebuladocs.yml")

	original := DefaultConfig()
	original.SiteName = "Acme Docs"
	original.ContentDir = "content"
	original.Assistant.Provider = ProviderOpenAI
	original.Assistant.Model = "gpt-4o"
	original.Preferences.Backend = PrefsMemory
	original.Server.Port = 9000

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.SiteName != original.SiteName {
		t.Errorf("site_name: got %q, want %q", loaded.SiteName, original.SiteName)
	}
	if loaded.ContentDir != original.ContentDir {
		t.Errorf("content_dir: got %q, want %q", loaded.ContentDir, original.ContentDir)
	}
	if loaded.Assistant.Provider != original.Assistant.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Assistant.Provider, original.Assistant.Provider)
	}
	if loaded.Assistant.Model != original.Assistant.Model {
		t.Errorf("model: got %q, want %q", loaded.Assistant.Model, original.Assistant.Model)
	}
	if loaded.Preferences.Backend != original.Preferences.Backend {
		t.Errorf("backend: got %q, want %q", loaded.Preferences.Backend, original.Preferences.Backend)
	}
	if loaded.Server.Port != original.Server.Port {
		t.Errorf("port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.SiteName != "Nebula UI" {
		t.Errorf("expected default site name, got %q", cfg.SiteName)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("NEBULADOCS_ASSISTANT__PROVIDER", "anthropic")
	t.Setenv("NEBULADOCS_SERVER__PORT", "9191")
	t.Setenv("NEBULADOCS_SITE_NAME", "Env Docs")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Assistant.Provider != ProviderAnthropic {
		t.Errorf("env override failed: got %q, want %q", loaded.Assistant.Provider, ProviderAnthropic)
	}
	if loaded.Server.Port != 9191 {
		t.Errorf("env override failed: got port %d, want 9191", loaded.Server.Port)
	}
	if loaded.SiteName != "Env Docs" {
		t.Errorf("env override failed: got site name %q", loaded.SiteName)
	}
}

func TestLoadFillsBlankModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	cfg := DefaultConfig()
	cfg.Assistant.Provider = ProviderOllama
	cfg.Assistant.Model = ""
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Assistant.Model != "llama3" {
		t.Errorf("expected ollama default model, got %q", loaded.Assistant.Model)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty site name", func(c *Config) { c.SiteName = "" }, true},
		{"invalid provider", func(c *Config) { c.Assistant.Provider = "invalid" }, true},
		{"invalid provider ignored when disabled", func(c *Config) {
			c.Assistant.Enabled = false
			c.Assistant.Provider = "invalid"
		}, false},
		{"empty model", func(c *Config) { c.Assistant.Model = "" }, true},
		{"temperature too high", func(c *Config) { c.Assistant.Temperature = 3 }, true},
		{"negative rpm", func(c *Config) { c.Assistant.RequestsPerMinute = -1 }, true},
		{"invalid backend", func(c *Config) { c.Preferences.Backend = "etcd" }, true},
		{"redis without url", func(c *Config) { c.Preferences.Backend = PrefsRedis }, true},
		{"redis with url", func(c *Config) {
			c.Preferences.Backend = PrefsRedis
			c.Preferences.RedisURL = "redis://localhost:6379/0"
		}, false},
		{"sqlite without data dir", func(c *Config) { c.DataDir = "" }, true},
		{"bad session ttl", func(c *Config) { c.Server.SessionTTL = "soon" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSessionTTL(t *testing.T) {
	cfg := DefaultConfig()
	ttl, err := cfg.SessionTTL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ttl != 30*time.Minute {
		t.Errorf("expected 30m, got %v", ttl)
	}

	cfg.Server.SessionTTL = ""
	ttl, err = cfg.SessionTTL()
	if err != nil || ttl != 30*time.Minute {
		t.Errorf("expected fallback 30m, got %v (%v)", ttl, err)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderGoogle, "GOOGLE_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderAnthropic, "ANTHROPIC_API_KEY"},
		{ProviderOpenRouter, "OPENROUTER_API_KEY"},
		{ProviderOllama, ""},
	}
	for _, tt := range tests {
		got := APIKeyEnvVar(tt.provider)
		if got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}
