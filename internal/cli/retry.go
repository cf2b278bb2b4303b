package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openretail/possync/internal/local"
)

// retry moves sales stuck in the error state back to pending so the next
// sync picks them up again. The reset is deliberately manual: an errored
// sale stays parked until an operator decides it is worth another try.
func newRetryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Re-queue sales that previously failed to upload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			localStore, err := local.Open(ctx, a.cfg.LocalDSN)
			if err != nil {
				return err
			}
			defer localStore.Close()

			n, err := localStore.Sales.ResetErrors(ctx, a.cfg.StoreID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "re-queued %d sale(s)\n", n)
			return nil
		},
	}
}
