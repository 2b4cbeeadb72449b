package config

import (
	"encoding/json"
	"os"

	"sweetshop/internal/flagx"
	"sweetshop/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals may
// be given either as strings like "5s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	DatabasePath        string         `json:"database_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays cfg with values loaded from the JSON file given via the
// -c/-config flags. When no file is given, cfg is left unchanged. Read or
// unmarshal errors panic; config problems should stop startup immediately.
// Zero-valued JSON fields do not override defaults.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}
