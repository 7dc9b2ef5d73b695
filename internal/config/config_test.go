package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("expected default backend %q, got %q", BackendMemory, cfg.Store.Backend)
	}
	if cfg.MaxBodyBytes != 5<<20 {
		t.Errorf("expected 5 MiB body limit, got %d", cfg.MaxBodyBytes)
	}
	if cfg.PreviewDelay != 500*time.Millisecond {
		t.Errorf("expected 500ms preview delay, got %s", cfg.PreviewDelay)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.p5embed.yml")

	original := DefaultConfig()
	original.Port = 8080
	original.BaseURL = "https://sketches.example.com"
	original.PreviewDelay = 250 * time.Millisecond
	original.Store.Backend = BackendSQLite
	original.Store.Path = "var/sketches.db"
	original.Embed.Highlight = true

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.BaseURL != original.BaseURL {
		t.Errorf("base_url: got %q, want %q", loaded.BaseURL, original.BaseURL)
	}
	if loaded.PreviewDelay != original.PreviewDelay {
		t.Errorf("preview_delay: got %s, want %s", loaded.PreviewDelay, original.PreviewDelay)
	}
	if loaded.Store != original.Store {
		t.Errorf("store: got %+v, want %+v", loaded.Store, original.Store)
	}
	if !loaded.Embed.Highlight || loaded.Embed.Style != "github" {
		t.Errorf("embed: got %+v", loaded.Embed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("store:\n  backend: sqlite\npreview_delay: 1s\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("backend: got %q", cfg.Store.Backend)
	}
	if cfg.Store.Path != "data/p5embed.db" {
		t.Errorf("store.path default lost: %q", cfg.Store.Path)
	}
	if cfg.PreviewDelay != time.Second {
		t.Errorf("preview_delay: got %s", cfg.PreviewDelay)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("P5EMBED_PORT", "9090")
	t.Setenv("P5EMBED_STORE_BACKEND", "sqlite")
	t.Setenv("P5EMBED_EMBED_HIGHLIGHT", "true")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 9090 {
		t.Errorf("port override failed: got %d", loaded.Port)
	}
	if loaded.Store.Backend != BackendSQLite {
		t.Errorf("store.backend override failed: got %q", loaded.Store.Backend)
	}
	if !loaded.Embed.Highlight {
		t.Error("embed.highlight override failed")
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"P5EMBED_PORT":              "port",
		"P5EMBED_MAX_BODY_BYTES":    "max_body_bytes",
		"P5EMBED_STORE_PATH":        "store.path",
		"P5EMBED_EMBED_STYLE":       "embed.style",
		"P5EMBED_ALLOW_ALL_ORIGINS": "allow_all_origins",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad backend", func(c *Config) { c.Store.Backend = "redis" }, true},
		{"sqlite without path", func(c *Config) { c.Store.Backend = BackendSQLite; c.Store.Path = "" }, true},
		{"negative port", func(c *Config) { c.Port = -1 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"negative delay", func(c *Config) { c.PreviewDelay = -time.Second }, true},
		{"zero body limit", func(c *Config) { c.MaxBodyBytes = 0 }, true},
		{"relative base url", func(c *Config) { c.BaseURL = "/sketches" }, true},
		{"empty p5 url", func(c *Config) { c.P5URL = "" }, true},
		{"absolute base url", func(c *Config) { c.BaseURL = "https://example.com" }, false},
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

func TestPublicURL(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.PublicURL("/embed/abc"); got != "http://localhost:3000/embed/abc" {
		t.Errorf("PublicURL = %q", got)
	}
	cfg.BaseURL = "https://sketches.example.com/"
	if got := cfg.PublicURL("/embed/abc"); got != "https://sketches.example.com/embed/abc" {
		t.Errorf("PublicURL = %q", got)
	}
}

func TestValidatePort(t *testing.T) {
	for _, ok := range []string{"80", " 3000 "} {
		if err := validatePort(ok); err != nil {
			t.Errorf("validatePort(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "abc", "0", "65536"} {
		if err := validatePort(bad); err == nil {
			t.Errorf("validatePort(%q) should fail", bad)
		}
	}
}
