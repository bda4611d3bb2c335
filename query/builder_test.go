package query

import (
	"context"
	"errors"
	"testing"

	"github.com/fyerfyer/fyer-lookup/logger"
	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	testCases := []struct {
		name     string
		sql      string
		dialect  lookup.Dialect
		expected string
	}{
		{
			name:     "mysql",
			sql:      "`a` = %s AND `b` IN (%s, %s)",
			dialect:  lookup.Mysql{},
			expected: "`a` = ? AND `b` IN (?, ?)",
		},
		{
			name:     "postgresql numbered",
			sql:      `"a" = %s AND "b" BETWEEN %s AND %s`,
			dialect:  lookup.Postgresql{},
			expected: `"a" = $1 AND "b" BETWEEN $2 AND $3`,
		},
		{
			name:     "literal percent",
			sql:      `CAST(STRFTIME('%%Y', "c") AS INTEGER) = %s`,
			dialect:  lookup.Sqlite{},
			expected: `CAST(STRFTIME('%Y', "c") AS INTEGER) = ?`,
		},
		{
			name:     "lone percent kept",
			sql:      "a % b = %s%",
			dialect:  lookup.Mysql{},
			expected: "a % b = ?%",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Rebind(tc.sql, tc.dialect))
		})
	}
}

func TestBuilder_Build(t *testing.T) {
	name := lookup.Col("name").Typed(lookup.CharField)
	age := lookup.Col("age").Typed(lookup.IntegerField)

	testCases := []struct {
		name     string
		dialect  lookup.Dialect
		filters  []Filter
		wantSQL  string
		wantArgs []any
		wantErr  error
	}{
		{
			name:    "no filters",
			dialect: lookup.Mysql{},
			wantSQL: "",
		},
		{
			name:    "mysql",
			dialect: lookup.Mysql{},
			filters: []Filter{
				Where(name, "lower__startswith", "al"),
				Where(age, "gte", 18),
			},
			wantSQL:  "LOWER(`name`) LIKE BINARY ? AND `age` >= ?",
			wantArgs: []any{"al%", int64(18)},
		},
		{
			name:    "postgresql",
			dialect: lookup.Postgresql{},
			filters: []Filter{
				Where(age, "range", []int{18, 30}),
				Where(name, "", "bob"),
			},
			wantSQL:  `"age" BETWEEN $1 AND $2 AND "name" = $3`,
			wantArgs: []any{int64(18), int64(30), "bob"},
		},
		{
			name:    "sqlite year",
			dialect: lookup.Sqlite{},
			filters: []Filter{
				Where(lookup.Col("created").Typed(lookup.DateTimeField), "year", 2020),
			},
			wantSQL:  `CAST(STRFTIME('%Y', "created") AS INTEGER) BETWEEN ? AND ?`,
			wantArgs: []any{2020, 2020},
		},
		{
			name:    "empty in",
			dialect: lookup.Mysql{},
			filters: []Filter{
				Where(name, "exact", "bob"),
				Where(age, "in", []int{}),
			},
			wantErr: lookup.ErrEmptyResultSet,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := NewBuilder(tc.dialect).Build(context.Background(), tc.filters...)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSQL, q.SQL)
			assert.Equal(t, tc.wantArgs, q.Args)
		})
	}
}

func TestBuilder_UnsupportedLookup(t *testing.T) {
	_, err := NewBuilder(lookup.Mysql{}).Build(context.Background(),
		Where(lookup.Col("age").Typed(lookup.IntegerField), "lower", "x"))

	var target *lookup.UnsupportedLookupError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "lower", target.Lookup)
	assert.Contains(t, err.Error(), "filter 0")
}

func TestBuilder_Registry(t *testing.T) {
	r := lookup.NewRegistry(lookup.WithRegistryLogger(logger.Nop()))
	r.Register(lookup.KindField, &lookup.LookupClass{Name: "exact", New: lookup.IExact})

	q, err := NewBuilder(lookup.Mysql{}, WithRegistry(r)).
		Build(context.Background(), Where(lookup.Col("name"), "", "Bob"))
	require.NoError(t, err)
	assert.Equal(t, "`name` LIKE ?", q.SQL)

	_, err = NewBuilder(lookup.Mysql{}, WithRegistry(r)).
		Build(context.Background(), Where(lookup.Col("name"), "gt", 1))
	assert.Error(t, err)
}

func TestBuilder_TimeZone(t *testing.T) {
	q, err := NewBuilder(lookup.Postgresql{}, WithTimeZoneName("Europe/Paris")).
		Build(context.Background(), Where(lookup.Col("created").Typed(lookup.DateTimeField), "hour", 9))
	require.NoError(t, err)
	assert.Equal(t, `EXTRACT('hour' FROM "created" AT TIME ZONE $1) = $2`, q.SQL)
	assert.Equal(t, []any{"Europe/Paris", 9}, q.Args)
}

// TestMiddleware 测试中间件的执行顺序
func TestMiddleware(t *testing.T) {
	var order []string

	logMiddleware := func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, cc *CompileContext) (*CompileResult, error) {
			order = append(order, "log start")
			res, err := next.Compile(ctx, cc)
			order = append(order, "log end")
			return res, err
		})
	}

	var seen *CompileContext
	metricMiddleware := func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, cc *CompileContext) (*CompileResult, error) {
			order = append(order, "metric start")
			seen = cc
			res, err := next.Compile(ctx, cc)
			order = append(order, "metric end")
			return res, err
		})
	}

	b := NewBuilder(lookup.Mysql{}, WithMiddlewares(logMiddleware))
	b.Use(metricMiddleware)

	q, err := b.Build(context.Background(), Where(lookup.Col("id"), "", 1))
	require.NoError(t, err)
	assert.Equal(t, "`id` = ?", q.SQL)
	assert.Equal(t, []string{"log start", "metric start", "metric end", "log end"}, order)

	require.NotNil(t, seen)
	assert.Len(t, seen.ID, 36)
	assert.Equal(t, "mysql", seen.Dialect.Name())
	assert.Same(t, lookup.DefaultRegistry(), seen.Registry)
}

func TestMiddleware_ShortCircuit(t *testing.T) {
	stub := func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, cc *CompileContext) (*CompileResult, error) {
			return &CompileResult{Query: &Query{SQL: "1 = 1"}}, nil
		})
	}
	q, err := NewBuilder(lookup.Mysql{}, WithMiddlewares(stub)).
		Build(context.Background(), Where(lookup.Col("id"), "in", []int{}))
	require.NoError(t, err)
	assert.Equal(t, "1 = 1", q.SQL)
}
