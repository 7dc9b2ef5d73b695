package config

import "time"

// Backend selects where sketches are stored.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendSQLite Backend = "sqlite"
)

// Config is the top-level p5embed configuration, corresponding to .p5embed.yml.
type Config struct {
	Port            int           `yaml:"port" koanf:"port"`
	BaseURL         string        `yaml:"base_url" koanf:"base_url"`
	P5URL           string        `yaml:"p5_url" koanf:"p5_url"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" koanf:"max_body_bytes"`
	PreviewDelay    time.Duration `yaml:"preview_delay" koanf:"preview_delay"`
	Store           StoreConfig   `yaml:"store" koanf:"store"`
	Embed           EmbedConfig   `yaml:"embed" koanf:"embed"`
}

// StoreConfig holds sketch storage settings.
type StoreConfig struct {
	Backend Backend `yaml:"backend" koanf:"backend"`
	Path    string  `yaml:"path" koanf:"path"`
}

// EmbedConfig controls server-rendered embed pages.
type EmbedConfig struct {
	Highlight bool   `yaml:"highlight" koanf:"highlight"`
	Style     string `yaml:"style" koanf:"style"`
}
