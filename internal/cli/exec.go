package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fyerfyer/fyer-lookup/query"
	"github.com/spf13/cobra"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec",
		Short: "Run the SELECT statement against the configured database",
		Long: `Run the SELECT statement built from the config file and print the rows.

The driver defaults to "mysql", "pgx" or "sqlite" depending on the dialect.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd.Context(), rootOpts, cmd)
		},
	}
}

func runExec(ctx context.Context, opts *RootOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, b, err := loadSetup(opts, cmd)
	if err != nil {
		return err
	}
	if cfg.DSN == "" {
		return fmt.Errorf("dsn is required")
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := query.NewSelector(db, b).
		Select(cfg.Columns...).
		From(cfg.Table).
		Where(cfg.QueryFilters()...).
		GetMulti(ctx)
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Rows(cfg.Columns, rows)
}
