package lookup

// ValueKind 右值的形态，在准备阶段确定一次
type ValueKind uint8

const (
	// ValueLiteral 普通值，以参数形式绑定
	ValueLiteral ValueKind = iota
	// ValueSubExpression 可被编译的表达式（列引用、子查询、转换）
	ValueSubExpression
	// ValueRawSQL 自带 SQL 的原始片段
	ValueRawSQL
)

func (k ValueKind) String() string {
	switch k {
	case ValueLiteral:
		return "literal"
	case ValueSubExpression:
		return "subexpression"
	case ValueRawSQL:
		return "raw"
	default:
		return "unknown"
	}
}

// RawSQLer 能够直接产出 SQL 的对象
type RawSQLer interface {
	RawSQL(d Dialect) (string, []any, error)
}

// Value 准备后的右值
type Value struct {
	kind ValueKind
	lit  any
	expr Expression
	raw  RawSQLer
}

// Bounds range 查询的上下界，每个边界都是独立准备的右值
type Bounds [2]Value

func Literal(v any) Value {
	return Value{kind: ValueLiteral, lit: v}
}

func SubExpression(e Expression) Value {
	return Value{kind: ValueSubExpression, expr: e}
}

func RawValue(r RawSQLer) Value {
	return Value{kind: ValueRawSQL, raw: r}
}

// Prepare 判断原始右值的形态
func Prepare(raw any) Value {
	switch v := raw.(type) {
	case Value:
		return v
	case Expression:
		return SubExpression(v)
	case RawSQLer:
		return RawValue(v)
	default:
		return Literal(raw)
	}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// IsExpression 右值需要以 SQL 形式嵌入而不是作为参数绑定
func (v Value) IsExpression() bool {
	return v.kind != ValueLiteral
}

func (v Value) Literal() any {
	return v.lit
}

func (v Value) Expression() Expression {
	return v.expr
}

func (v Value) Raw() RawSQLer {
	return v.raw
}

// Interface 返回底层的值
func (v Value) Interface() any {
	switch v.kind {
	case ValueSubExpression:
		return v.expr
	case ValueRawSQL:
		return v.raw
	default:
		return v.lit
	}
}

func (v Value) relabeled(relabels map[string]string) Value {
	switch v.kind {
	case ValueSubExpression:
		return SubExpression(v.expr.RelabeledClone(relabels))
	case ValueLiteral:
		if b, ok := v.lit.(Bounds); ok {
			return Literal(Bounds{b[0].relabeled(relabels), b[1].relabeled(relabels)})
		}
	}
	return v
}

func (v Value) groupByCols() []Expression {
	switch v.kind {
	case ValueSubExpression:
		return v.expr.GroupByCols()
	case ValueLiteral:
		if b, ok := v.lit.(Bounds); ok {
			return append(b[0].groupByCols(), b[1].groupByCols()...)
		}
	}
	return nil
}
