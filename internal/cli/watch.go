package cli

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openretail/possync/internal/syncer"
)

// watch runs the background scheduler until the process receives SIGINT
// or SIGTERM. Every triggered run is reported as one JSON line on
// stdout, which makes the output easy to pipe into a supervisor or a
// local dashboard.
func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Sync continuously: full sync now, then quick syncs on a timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			eng, err := a.buildEngine(ctx)
			if err != nil {
				return err
			}
			defer eng.Close()

			out := cmd.OutOrStdout()
			sink := syncer.SinkFunc(func(ev syncer.Event) {
				line, err := json.Marshal(ev)
				if err != nil {
					a.log.Error(ctx, "failed to encode event", "error", err)
					return
				}
				fmt.Fprintln(out, string(line))
			})

			a.log.Info(ctx, "starting background sync",
				"store", a.cfg.StoreID, "interval", a.cfg.SyncInterval)
			eng.sched.Start(ctx, a.cfg.StoreID, sink)

			<-ctx.Done()
			a.log.Info(ctx, "shutting down", "store", a.cfg.StoreID)
			eng.sched.Stop()
			return nil
		},
	}
}
