package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/openretail/possync/internal/flagx"
	"github.com/openretail/possync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify intervals either as strings like
// "5m" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config (which uses time.Duration).
type JsonConfig struct {
	StoreID      *int64          `json:"store_id"`
	StoreName    *string         `json:"store_name"`
	LocalDSN     *string         `json:"local_dsn"`
	CloudDSN     *string         `json:"cloud_dsn"`
	ProbeURL     *string         `json:"probe_url"`
	ProbeTimeout *timex.Duration `json:"probe_timeout"`
	SyncInterval *timex.Duration `json:"sync_interval"`
	PushAttempts *int            `json:"push_attempts"`
	PushBackoff  *timex.Duration `json:"push_backoff"`
}

// parseJson overlays cfg with values loaded from the JSON file named by
// the -c/-config flags. Absent file: nothing happens. Fields left out of
// the JSON keep their current values; read or unmarshal failures panic
// (the caller has no way to proceed with half a config).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	applyJson(cfg, jsonConfigFile)
}

func applyJson(cfg *Config, path string) {
	var jc JsonConfig

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StoreID != nil {
		cfg.StoreID = *jc.StoreID
	}
	if jc.StoreName != nil {
		cfg.StoreName = *jc.StoreName
	}
	if jc.LocalDSN != nil {
		cfg.LocalDSN = *jc.LocalDSN
	}
	if jc.CloudDSN != nil {
		cfg.CloudDSN = *jc.CloudDSN
	}
	if jc.ProbeURL != nil {
		cfg.ProbeURL = *jc.ProbeURL
	}
	if jc.ProbeTimeout != nil {
		cfg.ProbeTimeout = time.Duration(jc.ProbeTimeout.Duration)
	}
	if jc.SyncInterval != nil {
		cfg.SyncInterval = time.Duration(jc.SyncInterval.Duration)
	}
	if jc.PushAttempts != nil {
		cfg.PushAttempts = *jc.PushAttempts
	}
	if jc.PushBackoff != nil {
		cfg.PushBackoff = time.Duration(jc.PushBackoff.Duration)
	}
}
