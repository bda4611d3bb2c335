package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/google/uuid"
)

// Filter 一个查询条件，Path 形如 "lower__startswith"，为空时等同于 exact
type Filter struct {
	LHS   lookup.Expression
	Path  string
	Value any
}

// Where 创建查询条件
func Where(lhs lookup.Expression, path string, value any) Filter {
	return Filter{LHS: lhs, Path: path, Value: value}
}

// Query 可以直接交给 database/sql 执行的语句
type Query struct {
	SQL  string
	Args []any
}

// Builder 将多个查询条件编译为一个 WHERE 子句
type Builder struct {
	dialect  lookup.Dialect
	registry *lookup.Registry
	tzName   *string
	ms       []Middleware
}

type BuilderOption func(*Builder)

// WithRegistry 使用指定注册表，默认读取当前配置中的注册表
func WithRegistry(r *lookup.Registry) BuilderOption {
	return func(b *Builder) {
		b.registry = r
	}
}

// WithTimeZoneName 覆盖配置中的时区
func WithTimeZoneName(name string) BuilderOption {
	return func(b *Builder) {
		b.tzName = &name
	}
}

func WithMiddlewares(ms ...Middleware) BuilderOption {
	return func(b *Builder) {
		b.ms = append(b.ms, ms...)
	}
}

func NewBuilder(d lookup.Dialect, opts ...BuilderOption) *Builder {
	b := &Builder{dialect: d}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Use 注册中间件
func (b *Builder) Use(ms ...Middleware) {
	b.ms = append(b.ms, ms...)
}

func (b *Builder) Dialect() lookup.Dialect {
	return b.dialect
}

// Build 编译全部条件，条件之间用 AND 连接
// 任一条件恒为假时返回 lookup.ErrEmptyResultSet
func (b *Builder) Build(ctx context.Context, filters ...Filter) (*Query, error) {
	cc := &CompileContext{
		ID:       uuid.New().String(),
		Dialect:  b.dialect,
		Registry: b.registry,
		Filters:  filters,
	}
	if cc.Registry == nil {
		cc.Registry = lookup.DefaultRegistry()
	}
	if b.tzName != nil {
		cc.TimeZoneName = *b.tzName
	} else {
		cc.TimeZoneName = lookup.CurrentSettings().TimeZoneName()
	}

	res, err := BuildChain(coreHandler{}, b.ms).Compile(ctx, cc)
	if err != nil {
		return nil, err
	}
	return res.Query, nil
}

func compileFilters(cc *CompileContext) (*Query, error) {
	c := lookup.NewCompiler(cc.Dialect, lookup.WithTimeZoneName(cc.TimeZoneName))
	parts := make([]string, 0, len(cc.Filters))
	var args []any
	for i, f := range cc.Filters {
		l, err := lookup.Build(cc.Registry, f.LHS, f.Path, f.Value)
		if err != nil {
			return nil, fmt.Errorf("query: filter %d: %w", i, err)
		}
		sql, fArgs, err := c.Compile(l)
		if err != nil {
			return nil, fmt.Errorf("query: filter %d: %w", i, err)
		}
		parts = append(parts, sql)
		args = append(args, fArgs...)
	}
	return &Query{
		SQL:  Rebind(strings.Join(parts, " AND "), cc.Dialect),
		Args: args,
	}, nil
}
