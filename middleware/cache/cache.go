package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/fyerfyer/fyer-lookup/query"
	"github.com/patrickmn/go-cache"
)

// MiddlewareBuilder 缓存编译结果。
// 缓存键包含方言、时区、注册表版本以及每个条件的指纹，注册表发生变化后旧的结果自然失效
type MiddlewareBuilder struct {
	cache *cache.Cache
}

func NewMiddlewareBuilder(expiration, cleanupInterval time.Duration) *MiddlewareBuilder {
	return &MiddlewareBuilder{
		cache: cache.New(expiration, cleanupInterval),
	}
}

// entry 缓存项，empty 表示条件恒为假
type entry struct {
	query *query.Query
	empty bool
}

func (m *MiddlewareBuilder) Build() query.Middleware {
	return func(next query.Handler) query.Handler {
		return query.HandlerFunc(func(ctx context.Context, cc *query.CompileContext) (*query.CompileResult, error) {
			key, ok := m.key(cc)
			if !ok {
				return next.Compile(ctx, cc)
			}

			if item, found := m.cache.Get(key); found {
				e := item.(entry)
				if e.empty {
					return nil, lookup.ErrEmptyResultSet
				}
				return &query.CompileResult{Query: copyQuery(e.query)}, nil
			}

			res, err := next.Compile(ctx, cc)
			switch {
			case errors.Is(err, lookup.ErrEmptyResultSet):
				m.cache.Set(key, entry{empty: true}, cache.DefaultExpiration)
			case err == nil && res != nil && res.Query != nil:
				m.cache.Set(key, entry{query: copyQuery(res.Query)}, cache.DefaultExpiration)
			}
			return res, err
		})
	}
}

// ItemCount 当前缓存项数量
func (m *MiddlewareBuilder) ItemCount() int {
	return m.cache.ItemCount()
}

// Flush 清空缓存
func (m *MiddlewareBuilder) Flush() {
	m.cache.Flush()
}

func copyQuery(q *query.Query) *query.Query {
	args := make([]any, len(q.Args))
	copy(args, q.Args)
	return &query.Query{SQL: q.SQL, Args: args}
}

// key 无法为某个条件生成稳定指纹时返回 false，此时不使用缓存
func (m *MiddlewareBuilder) key(cc *query.CompileContext) (string, bool) {
	if cc.Registry == nil {
		return "", false
	}
	c := lookup.NewCompiler(cc.Dialect, lookup.WithTimeZoneName(cc.TimeZoneName))

	var sb strings.Builder
	sb.WriteString(cc.Dialect.Name())
	sb.WriteByte('|')
	sb.WriteString(cc.TimeZoneName)
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatUint(cc.Registry.Generation(), 10))
	// 不同注册表的版本号可能相同
	fmt.Fprintf(&sb, "|%p", cc.Registry)

	for _, f := range cc.Filters {
		lhs, ok := fingerprint(c, cc.Dialect, f.LHS)
		if !ok {
			return "", false
		}
		val, ok := fingerprint(c, cc.Dialect, f.Value)
		if !ok {
			return "", false
		}
		sb.WriteString("|" + lhs + "__" + f.Path + "=" + val)
	}
	return sb.String(), true
}

func fingerprint(c lookup.Compiler, d lookup.Dialect, v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "nil", true
	case lookup.Expression:
		sql, args, err := c.Compile(val)
		if err != nil {
			return "", false
		}
		typ := "?"
		if ot := val.OutputType(); ot != nil {
			typ = ot.InternalType()
		}
		return fmt.Sprintf("expr(%s:%s:%#v)", typ, sql, args), true
	case lookup.RawSQLer:
		sql, args, err := val.RawSQL(d)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("raw(%s:%#v)", sql, args), true
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			p, ok := fingerprint(c, d, item)
			if !ok {
				return "", false
			}
			parts[i] = p
		}
		return "[" + strings.Join(parts, ",") + "]", true
	case lookup.Bounds, lookup.Value:
		// 已经准备好的值可能包含表达式，不做缓存
		return "", false
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64,
		time.Time, []int, []int64, []string, []float64:
		return fmt.Sprintf("%T:%#v", val, val), true
	}
	return "", false
}
