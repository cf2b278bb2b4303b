package cli

import (
	"github.com/spf13/cobra"

	"github.com/openretail/possync/internal/local"
	"github.com/openretail/possync/internal/syncer"
)

// status only reads the local database and pings the probe, so it does
// not require a cloud connection.
func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pending sales, last sync time and connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			localStore, err := local.Open(ctx, a.cfg.LocalDSN)
			if err != nil {
				return err
			}
			defer localStore.Close()

			reporter := syncer.NewStatusReporter(localStore, a.probe())
			_, err = reporter.Refresh(ctx, a.cfg.StoreID, syncer.SinkFunc(func(ev syncer.Event) {
				printJSON(cmd, ev)
			}))
			return err
		},
	}
}
