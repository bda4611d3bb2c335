package cli

import (
	"fmt"

	"github.com/fyerfyer/fyer-lookup/codegen/columngen"
	"github.com/spf13/cobra"
)

// GenOptions gen 命令参数
type GenOptions struct {
	*RootOptions
	Input  string
	Output string
}

func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate typed column declarations from model structs",
		Long: `Generate one <model>.gen.go file per exported struct in the input file.

Each exported field becomes a lookup.Column whose output type is inferred
from the Go type. Use the tag orm:"column_name:x;type:DateField" to override.`,
		Example:       "  lookupsql gen -i ./models/user.go -o ./models",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := columngen.Generate(opts.Input, opts.Output)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input file path (e.g., ./models/user.go)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output directory (e.g., ./models)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
