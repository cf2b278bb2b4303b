package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openretail/possync/internal/models"
)

func printJSON(cmd *cobra.Command, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func resultErr(res *models.SyncResult) error {
	if res.Success {
		return nil
	}
	return fmt.Errorf("sync finished with %d error(s)", len(res.Errors))
}

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run a full sync: pull reference mirrors, then push pending sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := a.buildEngine(ctx)
			if err != nil {
				return err
			}
			defer eng.Close()

			res := eng.orch.SyncAll(ctx, a.cfg.StoreID)
			printJSON(cmd, res)
			return resultErr(res)
		},
	}
}

func newQuickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quick",
		Short: "Run a quick sync: push pending sales only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := a.buildEngine(ctx)
			if err != nil {
				return err
			}
			defer eng.Close()

			res := eng.orch.QuickSync(ctx, a.cfg.StoreID)
			printJSON(cmd, res)
			return resultErr(res)
		},
	}
}
