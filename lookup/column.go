package lookup

import "github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"

// Column 表示对某张表（或别名）上一列的引用
type Column struct {
	table string
	name  string
	typ   OutputType
}

// Col 创建一个列引用，默认输出类型为 GenericField
func Col(name string) *Column {
	return &Column{name: name, typ: GenericField}
}

// Of 指定列所属的表或表别名
func (c *Column) Of(table string) *Column {
	return &Column{table: table, name: c.name, typ: c.typ}
}

// Typed 指定列的输出类型
func (c *Column) Typed(typ OutputType) *Column {
	return &Column{table: c.table, name: c.name, typ: typ}
}

func (c *Column) Name() string {
	return c.name
}

func (c *Column) Table() string {
	return c.table
}

func (c *Column) Kind() *Kind {
	return KindColumn
}

func (c *Column) OutputType() OutputType {
	return c.typ
}

func (c *Column) AsSQL(_ Compiler, d Dialect) (string, []any, error) {
	if c.name == "" {
		return "", nil, ferr.ErrInvalidColumn(c.name)
	}
	if c.table == "" {
		return d.Quote(c.name), nil, nil
	}
	return d.Quote(c.table) + "." + d.Quote(c.name), nil, nil
}

func (c *Column) RelabeledClone(relabels map[string]string) Expression {
	if alias, ok := relabels[c.table]; ok {
		return &Column{table: alias, name: c.name, typ: c.typ}
	}
	return &Column{table: c.table, name: c.name, typ: c.typ}
}

func (c *Column) GroupByCols() []Expression {
	return []Expression{c}
}
