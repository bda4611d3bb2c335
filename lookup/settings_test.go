package lookup

import (
	"testing"
	"time"

	"github.com/fyerfyer/fyer-lookup/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Init(t *testing.T) {
	defer Reset()

	loc := time.FixedZone("UTC+8", 8*3600)
	s := Init(WithUseTZ(true), WithTimeZone(loc), WithLogger(logger.Nop()))

	assert.Same(t, s, CurrentSettings())
	assert.Equal(t, "UTC+8", s.TimeZoneName())
	assert.Equal(t, "UTC+8", NewCompiler(Mysql{}).TimeZoneName())
	assert.Equal(t, "", NewCompiler(Mysql{}, WithTimeZoneName("")).TimeZoneName())
	require.NotNil(t, DefaultRegistry())
	assert.NotNil(t, DefaultRegistry().ResolveLookup(Col("a"), "exact"))

	// 启用时区后日期时间统一转换为 UTC
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, loc)
	v, err := DateTimeField.PrepareDatabaseValue("exact", ts, Mysql{}, true)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, v.(time.Time).Location())
	assert.True(t, ts.Equal(v.(time.Time)))
}

func TestSettings_Reset(t *testing.T) {
	custom := NewRegistry(WithRegistryLogger(logger.Nop()))
	Init(WithRegistry(custom), WithUseTZ(true))
	assert.Same(t, custom, DefaultRegistry())
	assert.Nil(t, DefaultRegistry().ResolveLookup(Col("a"), "exact"))

	Reset()
	s := CurrentSettings()
	assert.False(t, s.UseTZ)
	assert.Equal(t, "", s.TimeZoneName())
	assert.NotSame(t, custom, s.Registry)
	assert.NotNil(t, s.Registry.ResolveLookup(Col("a"), "exact"))
}
