package lookup

import (
	"strings"

	"github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"
)

// PatternLookup 模式匹配。普通值在准备阶段已经加上通配符，
// 右值为表达式时通配符只能在 SQL 中拼接，改用方言的 PatternOperator
type PatternLookup struct {
	BaseLookup
}

func newPatternLookup(name string, lhs Expression, rhs any) (Lookup, error) {
	base, err := newBaseLookup(name, lhs, rhs)
	if err != nil {
		return nil, err
	}
	return &PatternLookup{BaseLookup: base}, nil
}

func (l *PatternLookup) rhsOperator(d Dialect, rhs string) (string, error) {
	if !l.rhs.IsExpression() {
		return l.BaseLookup.rhsOperator(d, rhs)
	}
	op, ok := d.PatternOperator(l.name)
	if !ok {
		return "", ferr.ErrUnsupportedOperator(d.Name(), l.name)
	}
	return fill(op, rhs), nil
}

func (l *PatternLookup) AsSQL(c Compiler, d Dialect) (string, []any, error) {
	return compileBuiltin(l, c, d)
}

func (l *PatternLookup) RelabeledClone(relabels map[string]string) Expression {
	return &PatternLookup{BaseLookup: l.relabel(relabels)}
}

// InLookup 成员判断，每个元素一个占位符
type InLookup struct {
	BaseLookup
}

func (l *InLookup) ProcessRHS(c Compiler, d Dialect) (string, []any, error) {
	if l.rhs.IsExpression() {
		return l.processValue(c, d, l.rhs)
	}
	items, _ := l.rhs.Literal().([]any)
	if len(items) == 0 {
		return "", nil, ferr.ErrEmptyResultSet
	}
	ot, err := outputTypeOf(l.lhs)
	if err != nil {
		return "", nil, err
	}
	dv, err := ot.PrepareDatabaseValue(l.name, items, d, true)
	if err != nil {
		return "", nil, err
	}
	args, _ := dv.([]any)
	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = "%s"
	}
	return "(" + strings.Join(placeholders, ", ") + ")", args, nil
}

func (l *InLookup) rhsOperator(_ Dialect, rhs string) (string, error) {
	return "IN " + rhs, nil
}

func (l *InLookup) AsSQL(c Compiler, d Dialect) (string, []any, error) {
	return compileBuiltin(l, c, d)
}

func (l *InLookup) RelabeledClone(relabels map[string]string) Expression {
	return &InLookup{BaseLookup: l.relabel(relabels)}
}

// RangeLookup 闭区间，两个边界分别处理
type RangeLookup struct {
	BaseLookup
}

func (l *RangeLookup) ProcessRHS(c Compiler, d Dialect) (string, []any, error) {
	bounds, ok := l.rhs.Literal().(Bounds)
	if !ok {
		return "", nil, ferr.ErrInvalidLookupValue(l.name, l.rhs.Interface(), "a pair of bounds is required")
	}
	lo, loArgs, err := l.processValue(c, d, bounds[0])
	if err != nil {
		return "", nil, err
	}
	hi, hiArgs, err := l.processValue(c, d, bounds[1])
	if err != nil {
		return "", nil, err
	}
	return lo + " AND " + hi, append(loArgs, hiArgs...), nil
}

func (l *RangeLookup) rhsOperator(_ Dialect, rhs string) (string, error) {
	return "BETWEEN " + rhs, nil
}

func (l *RangeLookup) AsSQL(c Compiler, d Dialect) (string, []any, error) {
	return compileBuiltin(l, c, d)
}

func (l *RangeLookup) RelabeledClone(relabels map[string]string) Expression {
	return &RangeLookup{BaseLookup: l.relabel(relabels)}
}

// DateLookup 比较日期时间的某一部分，左值先做提取
type DateLookup struct {
	BaseLookup
}

func (l *DateLookup) ProcessLHS(c Compiler) (string, []any, error) {
	t, err := Extract(l.lhs, l.name)
	if err != nil {
		return "", nil, err
	}
	return c.Compile(t)
}

func (l *DateLookup) rhsOperator(d Dialect, rhs string) (string, error) {
	op, ok := d.Operator("exact")
	if !ok {
		return "", ferr.ErrUnsupportedOperator(d.Name(), l.name)
	}
	return fill(op, rhs), nil
}

func (l *DateLookup) AsSQL(c Compiler, d Dialect) (string, []any, error) {
	return compileBuiltin(l, c, d)
}

func (l *DateLookup) RelabeledClone(relabels map[string]string) Expression {
	return &DateLookup{BaseLookup: l.relabel(relabels)}
}

// YearLookup 年份比较，写成 BETWEEN x AND x，同一个值绑定两次
type YearLookup struct {
	DateLookup
}

func (l *YearLookup) ProcessRHS(c Compiler, d Dialect) (string, []any, error) {
	sql, args, err := l.processValue(c, d, l.rhs)
	if err != nil {
		return "", nil, err
	}
	params := make([]any, 0, 2*len(args))
	params = append(params, args...)
	params = append(params, args...)
	return sql + " AND " + sql, params, nil
}

func (l *YearLookup) rhsOperator(_ Dialect, rhs string) (string, error) {
	return "BETWEEN " + rhs, nil
}

func (l *YearLookup) AsSQL(c Compiler, d Dialect) (string, []any, error) {
	return compileBuiltin(l, c, d)
}

func (l *YearLookup) RelabeledClone(relabels map[string]string) Expression {
	return &YearLookup{DateLookup: DateLookup{BaseLookup: l.relabel(relabels)}}
}

// IsNullLookup 右值为布尔值，不产生参数
type IsNullLookup struct {
	BaseLookup
}

func (l *IsNullLookup) AsSQL(c Compiler, _ Dialect) (string, []any, error) {
	sql, args, err := l.ProcessLHS(c)
	if err != nil {
		return "", nil, err
	}
	if isNull, _ := l.rhs.Literal().(bool); isNull {
		return sql + " IS NULL", args, nil
	}
	return sql + " IS NOT NULL", args, nil
}

func (l *IsNullLookup) RelabeledClone(relabels map[string]string) Expression {
	return &IsNullLookup{BaseLookup: l.relabel(relabels)}
}

func Exact(lhs Expression, rhs any) (Lookup, error) {
	return newBuiltinLookup("exact", lhs, rhs)
}

func IExact(lhs Expression, rhs any) (Lookup, error) {
	return newBuiltinLookup("iexact", lhs, rhs)
}

func GreaterThan(lhs Expression, rhs any) (Lookup, error) {
	return newBuiltinLookup("gt", lhs, rhs)
}

func GreaterThanOrEqual(lhs Expression, rhs any) (Lookup, error) {
	return newBuiltinLookup("gte", lhs, rhs)
}

func LessThan(lhs Expression, rhs any) (Lookup, error) {
	return newBuiltinLookup("lt", lhs, rhs)
}

func LessThanOrEqual(lhs Expression, rhs any) (Lookup, error) {
	return newBuiltinLookup("lte", lhs, rhs)
}

func Contains(lhs Expression, rhs any) (Lookup, error) {
	return newPatternLookup("contains", lhs, rhs)
}

func IContains(lhs Expression, rhs any) (Lookup, error) {
	return newPatternLookup("icontains", lhs, rhs)
}

func StartsWith(lhs Expression, rhs any) (Lookup, error) {
	return newPatternLookup("startswith", lhs, rhs)
}

func IStartsWith(lhs Expression, rhs any) (Lookup, error) {
	return newPatternLookup("istartswith", lhs, rhs)
}

// EndsWith 右值为表达式时不拼接通配符，直接比较
func EndsWith(lhs Expression, rhs any) (Lookup, error) {
	return newBuiltinLookup("endswith", lhs, rhs)
}

func IEndsWith(lhs Expression, rhs any) (Lookup, error) {
	return newBuiltinLookup("iendswith", lhs, rhs)
}

// Search 全文检索，SQLite 不支持
func Search(lhs Expression, rhs any) (Lookup, error) {
	return newBuiltinLookup("search", lhs, rhs)
}

func Regex(lhs Expression, rhs any) (Lookup, error) {
	return newBuiltinLookup("regex", lhs, rhs)
}

func IRegex(lhs Expression, rhs any) (Lookup, error) {
	return newBuiltinLookup("iregex", lhs, rhs)
}

// In 右值可以是切片、数组或子查询
func In(lhs Expression, rhs any) (Lookup, error) {
	base, err := newBaseLookup("in", lhs, rhs)
	if err != nil {
		return nil, err
	}
	return &InLookup{BaseLookup: base}, nil
}

// Range 右值为两个元素的切片、数组或 Bounds，边界可以是表达式
func Range(lhs Expression, rhs any) (Lookup, error) {
	base, err := newBaseLookup("range", lhs, rhs)
	if err != nil {
		return nil, err
	}
	return &RangeLookup{BaseLookup: base}, nil
}

func Year(lhs Expression, rhs any) (Lookup, error) {
	base, err := newBaseLookup("year", lhs, rhs)
	if err != nil {
		return nil, err
	}
	return &YearLookup{DateLookup: DateLookup{BaseLookup: base}}, nil
}

func newDateLookup(part string, lhs Expression, rhs any) (Lookup, error) {
	base, err := newBaseLookup(part, lhs, rhs)
	if err != nil {
		return nil, err
	}
	return &DateLookup{BaseLookup: base}, nil
}

func Month(lhs Expression, rhs any) (Lookup, error) {
	return newDateLookup("month", lhs, rhs)
}

func Day(lhs Expression, rhs any) (Lookup, error) {
	return newDateLookup("day", lhs, rhs)
}

// WeekDay 1 表示周日，7 表示周六
func WeekDay(lhs Expression, rhs any) (Lookup, error) {
	return newDateLookup("week_day", lhs, rhs)
}

func Hour(lhs Expression, rhs any) (Lookup, error) {
	return newDateLookup("hour", lhs, rhs)
}

func Minute(lhs Expression, rhs any) (Lookup, error) {
	return newDateLookup("minute", lhs, rhs)
}

func Second(lhs Expression, rhs any) (Lookup, error) {
	return newDateLookup("second", lhs, rhs)
}

func IsNull(lhs Expression, rhs any) (Lookup, error) {
	base, err := newBaseLookup("isnull", lhs, rhs)
	if err != nil {
		return nil, err
	}
	if base.rhs.IsExpression() {
		return nil, ferr.ErrInvalidLookupValue("isnull", rhs, "a boolean argument is required")
	}
	return &IsNullLookup{BaseLookup: base}, nil
}
