package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/schoolchat/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Values are
// copied into the runtime Config afterwards.
type JsonConfig struct {
	GatewayURL          string `json:"gateway_url"`
	SyncIntervalSeconds int    `json:"sync_interval_seconds"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// comes from the -c or -config flag. Without the flag nothing is loaded.
// Read or unmarshal errors panic; callers may recover if desired.
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

	if jc.GatewayURL != "" {
		cfg.GatewayURL = jc.GatewayURL
	}
	if jc.SyncIntervalSeconds > 0 {
		cfg.SyncInterval = time.Duration(jc.SyncIntervalSeconds) * time.Second
	}
}
