package cli

import (
	"fmt"
	"io"

	"github.com/fyerfyer/fyer-lookup/logger"
	"github.com/fyerfyer/fyer-lookup/middleware/accesslog"
	"github.com/fyerfyer/fyer-lookup/query"
	"github.com/spf13/cobra"
)

// RootOptions 全局参数
type RootOptions struct {
	Config   string
	Verbose  bool
	Format   string // "json" | "text"
	LogLevel string
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lookupsql",
		Short: "Compile field lookups into SQL predicates",
		Long: `lookupsql compiles filters such as name__lower__startswith=al
into parameterized SQL for MySQL, PostgreSQL and SQLite.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "lookupsql.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error|off)")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewLookupsCommand(opts))
	cmd.AddCommand(NewGenCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger 日志写到 stderr，避免污染 JSON 输出；--verbose 等同于 debug
func newLogger(opts *RootOptions, w io.Writer) logger.Logger {
	level := logger.ParseLevel(opts.LogLevel)
	if opts.Verbose {
		level = logger.DebugLevel
	}
	return logger.New(logger.WithOutput(w), logger.WithLevel(level))
}

// loadSetup 读取配置、初始化设置并创建带访问日志的 Builder
func loadSetup(opts *RootOptions, cmd *cobra.Command) (*Config, *query.Builder, error) {
	cfg, err := LoadConfig(opts.Config)
	if err != nil {
		return nil, nil, err
	}
	l := newLogger(opts, cmd.ErrOrStderr())
	if _, err = cfg.Settings(l); err != nil {
		return nil, nil, err
	}
	mdl := accesslog.NewMiddlewareBuilder().SetLogger(l).LogArgs(opts.Verbose).Build()
	return cfg, query.NewBuilder(cfg.dialect(), query.WithMiddlewares(mdl)), nil
}
