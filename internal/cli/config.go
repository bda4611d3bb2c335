package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/fyerfyer/fyer-lookup/logger"
	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/fyerfyer/fyer-lookup/query"
	"gopkg.in/yaml.v3"
)

// Config 命令行配置文件
type Config struct {
	Dialect  string         `yaml:"dialect"`
	Driver   string         `yaml:"driver"`
	DSN      string         `yaml:"dsn"`
	UseTZ    bool           `yaml:"use_tz"`
	TimeZone string         `yaml:"time_zone"`
	Table    string         `yaml:"table"`
	Columns  []string       `yaml:"columns"`
	Filters  []FilterConfig `yaml:"filters"`
}

// FilterConfig 一个查询条件，Type 为输出类型名，默认为 Field
type FilterConfig struct {
	Column string `yaml:"column"`
	Table  string `yaml:"table"`
	Type   string `yaml:"type"`
	Lookup string `yaml:"lookup"`
	Value  any    `yaml:"value"`
}

// 各方言默认使用的 database/sql 驱动名
var defaultDrivers = map[string]string{
	"mysql":      "mysql",
	"postgresql": "pgx",
	"sqlite":     "sqlite",
}

// LoadConfig 读取并校验配置文件，未知字段视为错误
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Dialect == "" {
		return fmt.Errorf("dialect is required")
	}
	if _, err := lookup.GetDialect(c.Dialect); err != nil {
		return err
	}
	if c.Driver == "" {
		c.Driver = defaultDrivers[c.Dialect]
	}
	if c.Table == "" {
		return fmt.Errorf("table is required")
	}
	for i, f := range c.Filters {
		if f.Column == "" {
			return fmt.Errorf("filter %d: column is required", i)
		}
		if f.Type != "" {
			if _, ok := lookup.FieldByName(f.Type); !ok {
				return fmt.Errorf("filter %d: unknown type %q", i, f.Type)
			}
		}
	}
	return nil
}

// Settings 按配置初始化进程级设置
func (c *Config) Settings(l logger.Logger) (*lookup.Settings, error) {
	opts := []lookup.SettingsOption{
		lookup.WithUseTZ(c.UseTZ),
		lookup.WithLogger(l),
	}
	if c.TimeZone != "" {
		loc, err := time.LoadLocation(c.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
		}
		opts = append(opts, lookup.WithTimeZone(loc))
	}
	return lookup.Init(opts...), nil
}

func (c *Config) dialect() lookup.Dialect {
	d, _ := lookup.GetDialect(c.Dialect)
	return d
}

// QueryFilters 将配置中的条件转换为 query.Filter
func (c *Config) QueryFilters() []query.Filter {
	filters := make([]query.Filter, 0, len(c.Filters))
	for _, f := range c.Filters {
		col := lookup.Col(f.Column)
		if f.Table != "" {
			col = col.Of(f.Table)
		}
		if f.Type != "" {
			typ, _ := lookup.FieldByName(f.Type)
			col = col.Typed(typ)
		}
		filters = append(filters, query.Where(col, f.Lookup, f.Value))
	}
	return filters
}
