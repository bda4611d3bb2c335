package query

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fyerfyer/fyer-lookup/lookup"
)

// Selector 单表查询，结果按列名放入 map
type Selector struct {
	db      *sql.DB
	builder *Builder
	table   string
	cols    []string
	filters []Filter
}

func NewSelector(db *sql.DB, b *Builder) *Selector {
	return &Selector{db: db, builder: b}
}

// Select 指定查询列，为空时查询全部列
func (s *Selector) Select(cols ...string) *Selector {
	s.cols = cols
	return s
}

func (s *Selector) From(table string) *Selector {
	s.table = table
	return s
}

func (s *Selector) Where(filters ...Filter) *Selector {
	s.filters = append(s.filters, filters...)
	return s
}

func (s *Selector) Build(ctx context.Context) (*Query, error) {
	if s.table == "" {
		return nil, errors.New("query: table name is required")
	}
	where, err := s.builder.Build(ctx, s.filters...)
	if err != nil {
		return nil, err
	}

	d := s.builder.Dialect()
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(s.cols) == 0 {
		sb.WriteByte('*')
	}
	for i, col := range s.cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.Quote(col))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(d.Quote(s.table))
	if where.SQL != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where.SQL)
	}
	sb.WriteByte(';')

	return &Query{
		SQL:  sb.String(),
		Args: where.Args,
	}, nil
}

// GetMulti 执行查询；条件恒为假时直接返回空结果，不访问数据库
func (s *Selector) GetMulti(ctx context.Context) ([]map[string]any, error) {
	q, err := s.Build(ctx)
	if errors.Is(err, lookup.ErrEmptyResultSet) {
		return []map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]map[string]any, 0)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err = rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			// 文本列统一转换为 string
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = vals[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
