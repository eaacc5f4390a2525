// Package config loads runtime settings for the schoolchat client.
// Values are layered: defaults, then a JSON file (if given via -c/-config),
// then command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the schoolchat CLI.
//
// Fields:
//   - GatewayURL: base URL of the storage gateway server. Empty means demo
//     mode: an in-process, in-memory gateway private to this client.
//   - SyncInterval: cadence of the periodic refresh loop.
type Config struct {
	GatewayURL   string
	SyncInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GatewayURL = "http://127.0.0.1:8090"
	c.SyncInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
