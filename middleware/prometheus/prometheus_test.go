package prometheus

import (
	"context"
	"testing"

	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/fyerfyer/fyer-lookup/query"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareBuilder_Build(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := &MiddlewareBuilder{
		NameSpace:  "fyer",
		SubSystem:  "lookup",
		Name:       "compile_duration",
		Help:       "compile latency in microseconds",
		Registerer: reg,
	}
	b := query.NewBuilder(lookup.Sqlite{}, query.WithMiddlewares(m.Build()))
	ctx := context.Background()

	_, err := b.Build(ctx, query.Where(lookup.Col("id"), "", 1))
	require.NoError(t, err)
	_, err = b.Build(ctx, query.Where(lookup.Col("id"), "in", []int{}))
	assert.ErrorIs(t, err, lookup.ErrEmptyResultSet)
	_, err = b.Build(ctx, query.Where(lookup.Col("id"), "in", []int{}))
	assert.ErrorIs(t, err, lookup.ErrEmptyResultSet)
	_, err = b.Build(ctx, query.Where(lookup.Col("body"), "search", "go"))
	assert.Error(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.empty.WithLabelValues("sqlite")))
	// ok、empty、error 各一组
	assert.Equal(t, 3, testutil.CollectAndCount(m.vec))

	n, err := testutil.GatherAndCount(reg, "fyer_lookup_compile_duration", "fyer_lookup_compile_duration_empty_result_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMiddlewareBuilder_BuildTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := &MiddlewareBuilder{
		Name:       "compile_duration",
		Help:       "compile latency in microseconds",
		Registerer: reg,
	}

	var first, second query.Middleware
	require.NotPanics(t, func() {
		first = m.Build()
		second = m.Build()
	})

	ctx := context.Background()
	for _, mdl := range []query.Middleware{first, second} {
		b := query.NewBuilder(lookup.Mysql{}, query.WithMiddlewares(mdl))
		_, err := b.Build(ctx, query.Where(lookup.Col("id"), "in", []int{}))
		assert.ErrorIs(t, err, lookup.ErrEmptyResultSet)
	}

	// 两个中间件写入同一组指标
	assert.Equal(t, float64(2), testutil.ToFloat64(m.empty.WithLabelValues("mysql")))
	n, err := testutil.GatherAndCount(reg, "compile_duration_empty_result_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
