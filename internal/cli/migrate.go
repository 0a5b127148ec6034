package cli

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/repomanager"
)

// NewMigrateCommand applies all pending schema migrations.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := sql.Open("pgx", opts.DatabaseDSN)
			if err != nil {
				return fmt.Errorf("db init error: %w", err)
			}
			defer db.Close()

			rm := repomanager.NewPostgresRepositoryManager()
			if err := rm.RunMigrations(cmd.Context(), db); err != nil {
				return fmt.Errorf("migration error: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
