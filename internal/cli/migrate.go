package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/reactions-backend/internal/db"
)

// NewMigrateCommand создаёт команду migrate с подкомандой down.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Применить миграции",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := rootOpts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Migrate(cmd.Context()); err != nil {
				return err
			}

			applied, err := db.AppliedMigrations(cmd.Context(), a.DB)
			if err != nil {
				return err
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:          "down",
		Short:        "Откатить последнюю миграцию",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := rootOpts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			name, err := a.Rollback(cmd.Context())
			if err != nil {
				return err
			}
			if name == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "нечего откатывать")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "откатана %s\n", name)
			return nil
		},
	})

	return cmd
}
