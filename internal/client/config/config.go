// Package config assembles the runtime settings for the Sweet Shop CLI from
// defaults, an optional JSON file, and command-line flags, in that order
// (later sources win).
package config

import "time"

// Config holds runtime settings for the Sweet Shop CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend, e.g. http://127.0.0.1:8000.
//   - DatabasePath: path of the local sqlite database holding the session.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	ServerEndpointAddr  string
	DatabasePath        string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8000"
	c.DatabasePath = "sweetshop.db"
	c.OnlineCheckInterval = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
