package config

import (
	"encoding/json"
	"os"

	"chatlite/internal/flagx"
	"chatlite/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabaseDSN    string         `json:"database_dsn"`
	DeliveredAfter timex.Duration `json:"delivered_after"`
	SeenAfter      timex.Duration `json:"seen_after"`
	DeliveryStep   timex.Duration `json:"delivery_step"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags via flagx.JsonConfigFlags;
// when neither flag is present no JSON is loaded. Only fields that are
// actually set in the file override the current Config values, so a partial
// file leaves the remaining defaults intact. Read or unmarshal errors panic
// (caller should recover if desired).
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

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.DeliveredAfter.Duration != 0 {
		cfg.DeliveredAfter = jc.DeliveredAfter.Duration
	}
	if jc.SeenAfter.Duration != 0 {
		cfg.SeenAfter = jc.SeenAfter.Duration
	}
	if jc.DeliveryStep.Duration != 0 {
		cfg.DeliveryStep = jc.DeliveryStep.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
