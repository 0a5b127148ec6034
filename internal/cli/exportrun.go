package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/eudaimonia-labs/eudaimonia/internal/logging"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/pinning"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/repomanager"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/services"
)

// NewExportRunCommand drives all pending data-export jobs to completion:
// each job's snapshot is assembled, pinned, and the job marked complete
// or failed.
func NewExportRunCommand(opts *RootOptions) *cobra.Command {
	var (
		s3User     string
		s3Password string
		s3Bucket   string
		s3Region   string
		s3Endpoint string
	)

	cmd := &cobra.Command{
		Use:   "export-run",
		Short: "Process pending data-export jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := sql.Open("pgx", opts.DatabaseDSN)
			if err != nil {
				return fmt.Errorf("db init error: %w", err)
			}
			defer db.Close()

			pinner, err := pinning.NewS3Pinner(cmd.Context(), pinning.S3Options{
				RootUser:     s3User,
				RootPassword: s3Password,
				Bucket:       s3Bucket,
				Region:       s3Region,
				BaseEndpoint: s3Endpoint,
			})
			if err != nil {
				return fmt.Errorf("pin store init error: %w", err)
			}

			logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
			rm := repomanager.NewPostgresRepositoryManager()

			exports := services.NewExportService(db, rm, pinner, logger)
			n, err := exports.RunPending(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "processed %d export(s)\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&s3User, "s3-user", "admin", "S3 root user")
	cmd.Flags().StringVar(&s3Password, "s3-password", "secretpassword", "S3 root password")
	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "eudaimonia", "S3 bucket")
	cmd.Flags().StringVar(&s3Region, "s3-region", "us-east-1", "S3 region")
	cmd.Flags().StringVar(&s3Endpoint, "s3-endpoint", "http://127.0.0.1:9000/", "S3 base endpoint")

	return cmd
}
