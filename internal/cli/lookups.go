package cli

import (
	"fmt"

	"github.com/fyerfyer/fyer-lookup/logger"
	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/spf13/cobra"
)

// LookupsOptions lookups 命令参数
type LookupsOptions struct {
	*RootOptions
	Type string
}

// LookupEntry 一个可用的操作符
type LookupEntry struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
	Kind  string `json:"kind"`
}

func NewLookupsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LookupsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "lookups",
		Short:         "List the lookups and transforms available for a field type",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookups(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "Field", "field type, e.g. CharField")

	return cmd
}

func runLookups(opts *LookupsOptions, cmd *cobra.Command) error {
	typ, ok := lookup.FieldByName(opts.Type)
	if !ok {
		return fmt.Errorf("unknown type %q", opts.Type)
	}

	reg := lookup.NewRegistry(lookup.WithRegistryLogger(logger.Nop()))
	lookup.RegisterDefaults(reg)

	entries := reg.Entries(typ.Kind())
	res := make([]LookupEntry, 0, len(entries))
	for _, e := range entries {
		kind := "lookup"
		if e.Transform {
			kind = "transform"
		}
		res = append(res, LookupEntry{Name: e.Name, Owner: e.Owner.Name(), Kind: kind})
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Lookups(res)
}
