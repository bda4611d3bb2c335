package lookup

import (
	"strings"

	"github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"
)

// Expression 可以被编译为 SQL 的节点：列、转换、查询条件都是表达式
type Expression interface {
	// OutputType 表达式声明的输出类型，在整个生命周期内不变
	OutputType() OutputType
	AsSQL(c Compiler, d Dialect) (string, []any, error)
	// RelabeledClone 按照 relabels 替换表别名，返回新的表达式，不修改原对象
	RelabeledClone(relabels map[string]string) Expression
	// GroupByCols 表达式需要加入 GROUP BY 的列
	GroupByCols() []Expression
}

// Compiler 负责递归编译表达式
type Compiler interface {
	Compile(e Expression) (string, []any, error)
	Dialect() Dialect
	// TimeZoneName 启用时区时返回当前时区名，否则返回空串
	TimeZoneName() string
}

// fill 将 sql 填入模板中所有的 %s
func fill(template, sql string) string {
	return strings.ReplaceAll(template, "%s", sql)
}

// typeName 用于错误信息，优先使用输出类型
func typeName(e Expression) string {
	if e == nil {
		return "<nil>"
	}
	if ot := e.OutputType(); ot != nil {
		return ot.InternalType()
	}
	if k, ok := e.(Kinded); ok {
		return k.Kind().Name()
	}
	return "<untyped>"
}

func outputTypeOf(e Expression) (OutputType, error) {
	if e == nil {
		return nil, ferr.ErrNilExpression
	}
	ot := e.OutputType()
	if ot == nil {
		return nil, ferr.ErrNilExpression
	}
	return ot, nil
}
