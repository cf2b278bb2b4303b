// Package config holds runtime settings for the sync engine and its CLI.
// Values are resolved as defaults, then an optional JSON file, then
// command-line flags; later sources win.
package config

import (
	"time"

	"github.com/openretail/possync/internal/netx"
	"github.com/openretail/possync/internal/syncer"
)

// Config holds runtime settings for a terminal.
//
// Fields:
//   - StoreID / StoreName: which store this terminal belongs to.
//   - LocalDSN: path of the embedded SQLite database.
//   - CloudDSN: Postgres connection string of the cloud store.
//   - ProbeURL / ProbeTimeout: connectivity check endpoint and deadline.
//   - SyncInterval: period of the background quick sync.
//   - PushAttempts / PushBackoff: per-sale upload retry policy. One
//     attempt means no retry: a failed sale stays errored until reset.
type Config struct {
	StoreID      int64
	StoreName    string
	LocalDSN     string
	CloudDSN     string
	ProbeURL     string
	ProbeTimeout time.Duration
	SyncInterval time.Duration
	PushAttempts int
	PushBackoff  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreID = 1
	c.StoreName = ""
	c.LocalDSN = "pos.db"
	c.CloudDSN = ""
	c.ProbeURL = netx.DefaultProbeURL
	c.ProbeTimeout = netx.DefaultProbeTimeout
	c.SyncInterval = syncer.DefaultSyncInterval
	c.PushAttempts = 1
	c.PushBackoff = 2 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from a JSON file if one was named on the command line. Flag overrides
// are applied afterwards by the CLI layer.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	return cfg
}
