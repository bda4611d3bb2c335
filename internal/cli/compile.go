package cli

import (
	"context"
	"errors"

	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/fyerfyer/fyer-lookup/query"
	"github.com/spf13/cobra"
)

// CompileResult compile 命令的输出
type CompileResult struct {
	SQL   string `json:"sql"`
	Args  []any  `json:"args"`
	Empty bool   `json:"empty"`
}

func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Print the SELECT statement built from the config file",
		Long: `Compile the filters in the config file into a SELECT statement.

A filter that can never match (for example "in" with an empty list)
is reported as an empty result instead of a statement.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), rootOpts, cmd)
		},
	}
}

func runCompile(ctx context.Context, opts *RootOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, b, err := loadSetup(opts, cmd)
	if err != nil {
		return err
	}

	q, err := query.NewSelector(nil, b).
		Select(cfg.Columns...).
		From(cfg.Table).
		Where(cfg.QueryFilters()...).
		Build(ctx)

	var res CompileResult
	switch {
	case errors.Is(err, lookup.ErrEmptyResultSet):
		res.Empty = true
	case err != nil:
		return err
	default:
		res.SQL, res.Args = q.SQL, q.Args
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Compile(res)
}
