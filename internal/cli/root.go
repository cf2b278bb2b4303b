// Package cli wires the sync engine into a cobra command tree: full and
// quick syncs, status, background watch mode, error reset and cloud
// schema migration.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/openretail/possync/internal/cloud"
	"github.com/openretail/possync/internal/config"
	"github.com/openretail/possync/internal/local"
	"github.com/openretail/possync/internal/logging"
	"github.com/openretail/possync/internal/netx"
	"github.com/openretail/possync/internal/syncer"
)

type app struct {
	cfg *config.Config
	log logging.Logger
}

// engine bundles everything a sync command needs, plus the handles to
// close when it is done.
type engine struct {
	local  *local.Store
	cloud  *cloud.Store
	orch   *syncer.Orchestrator
	status *syncer.StatusReporter
	sched  *syncer.Scheduler
}

func (e *engine) Close() {
	if e.cloud != nil {
		_ = e.cloud.Close()
	}
	if e.local != nil {
		_ = e.local.Close()
	}
}

func (a *app) probe() netx.Probe {
	return netx.NewHTTPProbe(a.cfg.ProbeURL, a.cfg.ProbeTimeout)
}

func (a *app) buildEngine(ctx context.Context) (*engine, error) {
	if a.cfg.CloudDSN == "" {
		return nil, errors.New("cloud dsn is not configured")
	}

	localStore, err := local.Open(ctx, a.cfg.LocalDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	cloudStore, err := cloud.Open(a.cfg.CloudDSN)
	if err != nil {
		_ = localStore.Close()
		return nil, fmt.Errorf("failed to open cloud store: %w", err)
	}

	probe := a.probe()
	puller := syncer.NewPuller(localStore, cloudStore, a.log)
	pusher := syncer.NewPusher(localStore, cloudStore,
		syncer.RetryPolicy{Attempts: a.cfg.PushAttempts, Backoff: a.cfg.PushBackoff}, a.log)
	orch := syncer.NewOrchestrator(probe, puller, pusher, localStore, a.cfg.StoreName, a.log)
	status := syncer.NewStatusReporter(localStore, probe)
	sched := syncer.NewScheduler(orch, status, a.cfg.SyncInterval, a.log)

	return &engine{local: localStore, cloud: cloudStore, orch: orch, status: status, sched: sched}, nil
}

// Execute runs the possync command tree.
func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "possync",
		Short:         "Offline-first sync engine for retail point-of-sale terminals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = config.LoadConfig()
			applyFlagOverrides(a.cfg, cmd)
			a.log = logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
		},
	}

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "path to JSON config file")
	pf.Int64("store", 0, "store id this terminal belongs to")
	pf.String("store-name", "", "display name recorded in sync bookkeeping")
	pf.String("local", "", "path of the local database")
	pf.String("cloud", "", "Postgres connection string of the cloud store")
	pf.Duration("interval", 0, "background sync period")
	pf.String("probe-url", "", "connectivity probe endpoint")

	root.AddCommand(
		newSyncCmd(a),
		newQuickCmd(a),
		newStatusCmd(a),
		newWatchCmd(a),
		newRetryCmd(a),
		newMigrateCmd(a),
	)

	return root
}

func applyFlagOverrides(cfg *config.Config, cmd *cobra.Command) {
	pf := cmd.Root().PersistentFlags()

	if pf.Changed("store") {
		cfg.StoreID, _ = pf.GetInt64("store")
	}
	if pf.Changed("store-name") {
		cfg.StoreName, _ = pf.GetString("store-name")
	}
	if pf.Changed("local") {
		cfg.LocalDSN, _ = pf.GetString("local")
	}
	if pf.Changed("cloud") {
		cfg.CloudDSN, _ = pf.GetString("cloud")
	}
	if pf.Changed("interval") {
		cfg.SyncInterval, _ = pf.GetDuration("interval")
	}
	if pf.Changed("probe-url") {
		cfg.ProbeURL, _ = pf.GetString("probe-url")
	}
}
