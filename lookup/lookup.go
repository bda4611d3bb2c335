package lookup

import "github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"

// Lookup 一个比较操作：lhs <操作符> rhs，输出布尔值
type Lookup interface {
	Expression
	Kinded
	LookupName() string
	LHS() Expression
	// RHS 构造时已经准备好的右值
	RHS() Value
}

// BaseLookup 提供左右值的处理，具体操作符嵌入它并实现 AsSQL
type BaseLookup struct {
	name string
	lhs  Expression
	rhs  Value
}

// newBaseLookup 构造时立即用左值的输出类型准备右值
func newBaseLookup(name string, lhs Expression, rhs any) (BaseLookup, error) {
	ot, err := outputTypeOf(lhs)
	if err != nil {
		return BaseLookup{}, err
	}
	v, err := ot.PrepareLookupValue(name, Prepare(rhs))
	if err != nil {
		return BaseLookup{}, err
	}
	return BaseLookup{name: name, lhs: lhs, rhs: v}, nil
}

func (l *BaseLookup) LookupName() string {
	return l.name
}

func (l *BaseLookup) LHS() Expression {
	return l.lhs
}

func (l *BaseLookup) RHS() Value {
	return l.rhs
}

func (l *BaseLookup) Kind() *Kind {
	return KindLookup
}

func (l *BaseLookup) OutputType() OutputType {
	return BooleanField
}

// AsSQL 具体操作符必须覆盖
func (l *BaseLookup) AsSQL(_ Compiler, _ Dialect) (string, []any, error) {
	return "", nil, ferr.ErrNotImplemented
}

func (l *BaseLookup) ProcessLHS(c Compiler) (string, []any, error) {
	return c.Compile(l.lhs)
}

func (l *BaseLookup) ProcessRHS(c Compiler, d Dialect) (string, []any, error) {
	return l.processValue(c, d, l.rhs)
}

// processValue 表达式和原始 SQL 用括号包裹，普通值作为单个参数
func (l *BaseLookup) processValue(c Compiler, d Dialect, v Value) (string, []any, error) {
	switch v.Kind() {
	case ValueSubExpression:
		sql, args, err := c.Compile(v.Expression())
		if err != nil {
			return "", nil, err
		}
		return "(" + sql + ")", args, nil
	case ValueRawSQL:
		sql, args, err := v.Raw().RawSQL(d)
		if err != nil {
			return "", nil, err
		}
		return "(" + sql + ")", args, nil
	}
	return l.DBPrepLookup(d, v.Literal())
}

// DBPrepLookup 将准备好的值转换为数据库参数
func (l *BaseLookup) DBPrepLookup(d Dialect, v any) (string, []any, error) {
	ot, err := outputTypeOf(l.lhs)
	if err != nil {
		return "", nil, err
	}
	dv, err := ot.PrepareDatabaseValue(l.name, v, d, true)
	if err != nil {
		return "", nil, err
	}
	return "%s", []any{dv}, nil
}

// rhsOperator 将处理后的右值填入方言的操作符模板
func (l *BaseLookup) rhsOperator(d Dialect, rhs string) (string, error) {
	op, ok := d.Operator(l.name)
	if !ok {
		return "", ferr.ErrUnsupportedOperator(d.Name(), l.name)
	}
	return fill(op, rhs), nil
}

// relabel 复制一份，左值总是重新标记，右值只有是表达式时才重新标记
func (l *BaseLookup) relabel(relabels map[string]string) BaseLookup {
	return BaseLookup{
		name: l.name,
		lhs:  l.lhs.RelabeledClone(relabels),
		rhs:  l.rhs.relabeled(relabels),
	}
}

func (l *BaseLookup) RelabeledClone(relabels map[string]string) Expression {
	n := l.relabel(relabels)
	return &n
}

func (l *BaseLookup) GroupByCols() []Expression {
	cols := l.lhs.GroupByCols()
	return append(cols, l.rhs.groupByCols()...)
}
