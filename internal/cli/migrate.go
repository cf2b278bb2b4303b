package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openretail/possync/internal/cloud"
)

// migrate applies the cloud schema migrations. Terminals never run this
// on their own; it exists for deployments and integration environments
// that own the Postgres instance.
func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply cloud database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.CloudDSN == "" {
				return errors.New("cloud dsn is not configured")
			}

			cloudStore, err := cloud.Open(a.cfg.CloudDSN)
			if err != nil {
				return err
			}
			defer cloudStore.Close()

			if err := cloudStore.RunMigrations(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cloud schema is up to date")
			return nil
		},
	}
}
