package cli

import (
	"testing"

	"github.com/fyerfyer/fyer-lookup/logger"
	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	testCases := []struct {
		name       string
		content    string
		wantErr    string
		wantDriver string
		wantLen    int
	}{
		{
			name: "postgresql default driver",
			content: `
dialect: postgresql
table: users
filters:
  - column: name
    type: CharField
    lookup: icontains
    value: al
`,
			wantDriver: "pgx",
			wantLen:    1,
		},
		{
			name: "explicit driver",
			content: `
dialect: mysql
driver: custom
table: users
`,
			wantDriver: "custom",
		},
		{
			name:    "unknown field",
			content: "dialect: mysql\ntable: users\ndatabase: x\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing dialect",
			content: "table: users\n",
			wantErr: "dialect is required",
		},
		{
			name:    "unknown dialect",
			content: "dialect: oracle\ntable: users\n",
			wantErr: "invalid config",
		},
		{
			name:    "missing table",
			content: "dialect: sqlite\n",
			wantErr: "table is required",
		},
		{
			name: "missing column",
			content: `
dialect: sqlite
table: users
filters:
  - lookup: exact
    value: 1
`,
			wantErr: "filter 0: column is required",
		},
		{
			name: "unknown type",
			content: `
dialect: sqlite
table: users
filters:
  - column: id
    type: UUIDField
`,
			wantErr: `filter 0: unknown type "UUIDField"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tc.content))
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDriver, cfg.Driver)
			assert.Len(t, cfg.QueryFilters(), tc.wantLen)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfig_QueryFilters(t *testing.T) {
	cfg := &Config{
		Dialect: "mysql",
		Table:   "users",
		Filters: []FilterConfig{
			{Column: "name", Table: "u", Type: "CharField", Lookup: "lower__exact", Value: "al"},
			{Column: "age", Value: 3},
		},
	}

	filters := cfg.QueryFilters()
	require.Len(t, filters, 2)

	name, ok := filters[0].LHS.(*lookup.Column)
	require.True(t, ok)
	assert.Equal(t, "u", name.Table())
	assert.Equal(t, lookup.CharField, name.OutputType())
	assert.Equal(t, "lower__exact", filters[0].Path)

	age, ok := filters[1].LHS.(*lookup.Column)
	require.True(t, ok)
	assert.Equal(t, lookup.GenericField, age.OutputType())
	assert.Equal(t, "", filters[1].Path)
}

func TestConfig_Settings(t *testing.T) {
	t.Cleanup(lookup.Reset)

	cfg := &Config{UseTZ: true, TimeZone: "Asia/Shanghai"}
	s, err := cfg.Settings(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "Asia/Shanghai", s.TimeZoneName())
	assert.Same(t, s, lookup.CurrentSettings())

	cfg.TimeZone = "Mars/Olympus"
	_, err = cfg.Settings(logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid time zone")
}
