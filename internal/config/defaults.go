package config

import "time"

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".p5embed.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:            3000,
		P5URL:           "https://cdnjs.cloudflare.com/ajax/libs/p5.js/1.11.1/p5.js",
		AllowAllOrigins: true,
		MaxBodyBytes:    5 << 20,
		PreviewDelay:    500 * time.Millisecond,
		Store: StoreConfig{
			Backend: BackendMemory,
			Path:    "data/p5embed.db",
		},
		Embed: EmbedConfig{
			Highlight: false,
			Style:     "github",
		},
	}
}
