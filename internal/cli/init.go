package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fyerfyer/fyer-lookup/scaffold"
	"github.com/spf13/cobra"
)

// InitOptions init 命令参数
type InitOptions struct {
	*RootOptions
	Dialect string
	DSN     string
	Table   string
	Output  string
	Force   bool
}

func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter config file and an example model",
		Example: `  lookupsql init --dialect sqlite --dsn ./app.db
  lookupsql init --dialect postgresql --table orders -o ./project`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := scaffold.NewScaffolder(opts.Dialect,
				scaffold.WithDSN(opts.DSN),
				scaffold.WithTable(opts.Table),
				scaffold.WithOutputPath(opts.Output),
				scaffold.WithForce(opts.Force),
			)
			files, err := s.Generate()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, f := range files {
				fmt.Fprintf(w, "created %s\n", f)
			}
			fmt.Fprintf(w, "\nNext steps:\n  lookupsql compile -c %s\n  lookupsql gen -i %s -o %s\n",
				files[0], files[1], filepath.Dir(files[1]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "sqlite", "SQL dialect (mysql|postgresql|sqlite)")
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "database connection string")
	cmd.Flags().StringVar(&opts.Table, "table", "users", "example table name")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", ".", "output directory")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite existing files")

	return cmd
}
