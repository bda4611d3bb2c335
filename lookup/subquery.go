package lookup

import (
	"strings"

	"github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"
)

// Subquery 单列子查询，用于 col IN (SELECT ...) 之类的右值
type Subquery struct {
	col   Expression
	table string
	alias string
	where []Lookup
}

// Select 以 col 为输出列构建子查询
func Select(col Expression, table string) *Subquery {
	return &Subquery{col: col, table: table}
}

// As 为子查询中的表设置别名，列引用应使用同一个别名
func (s *Subquery) As(alias string) *Subquery {
	n := s.clone()
	n.alias = alias
	return n
}

// Where 追加过滤条件，多个条件之间使用 AND 连接
func (s *Subquery) Where(conds ...Lookup) *Subquery {
	n := s.clone()
	n.where = append(n.where, conds...)
	return n
}

func (s *Subquery) clone() *Subquery {
	where := make([]Lookup, len(s.where))
	copy(where, s.where)
	return &Subquery{col: s.col, table: s.table, alias: s.alias, where: where}
}

func (s *Subquery) Kind() *Kind {
	return KindSubquery
}

func (s *Subquery) OutputType() OutputType {
	if s.col == nil {
		return nil
	}
	return s.col.OutputType()
}

func (s *Subquery) AsSQL(c Compiler, d Dialect) (string, []any, error) {
	if s.col == nil {
		return "", nil, ferr.ErrNilExpression
	}
	var sb strings.Builder
	colSQL, args, err := c.Compile(s.col)
	if err != nil {
		return "", nil, err
	}
	sb.WriteString("SELECT ")
	sb.WriteString(colSQL)
	sb.WriteString(" FROM ")
	sb.WriteString(d.Quote(s.table))
	if s.alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(d.Quote(s.alias))
	}

	for i, cond := range s.where {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		condSQL, condArgs, err := c.Compile(cond)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(condSQL)
		args = append(args, condArgs...)
	}
	return sb.String(), args, nil
}

func (s *Subquery) RelabeledClone(relabels map[string]string) Expression {
	n := s.clone()
	if alias, ok := relabels[s.alias]; ok && s.alias != "" {
		n.alias = alias
	}
	if s.col != nil {
		n.col = s.col.RelabeledClone(relabels)
	}
	for i, cond := range n.where {
		n.where[i] = cond.RelabeledClone(relabels).(Lookup)
	}
	return n
}

// GroupByCols 子查询是一个整体，按自身分组
func (s *Subquery) GroupByCols() []Expression {
	return []Expression{s}
}
