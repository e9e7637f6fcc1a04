package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/sessionauth/internal/config"
)

func newMigrateCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations (postgres) or indexes (mongo) and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}

			store, b, err := openStorage(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s storage is up to date\n", b)
			return err
		},
	}
}
