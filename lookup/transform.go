package lookup

import (
	"github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"
)

// Transform 一元转换，本身也是表达式，可以继续挂载转换或比较
type Transform interface {
	Expression
	Kinded
	TransformName() string
	LHS() Expression
}

// BaseTransform 提供转换的公共部分，具体转换嵌入它并实现 AsSQL 和 RelabeledClone
type BaseTransform struct {
	name   string
	lhs    Expression
	output OutputType
}

// newBaseTransform output 为 nil 时沿用左值的输出类型
func newBaseTransform(name string, lhs Expression, output OutputType) (BaseTransform, error) {
	ot, err := outputTypeOf(lhs)
	if err != nil {
		return BaseTransform{}, err
	}
	if output == nil {
		output = ot
	}
	return BaseTransform{name: name, lhs: lhs, output: output}, nil
}

func (t *BaseTransform) TransformName() string {
	return t.name
}

func (t *BaseTransform) LHS() Expression {
	return t.lhs
}

func (t *BaseTransform) Kind() *Kind {
	return KindTransform
}

func (t *BaseTransform) OutputType() OutputType {
	return t.output
}

func (t *BaseTransform) AsSQL(_ Compiler, _ Dialect) (string, []any, error) {
	return "", nil, ferr.ErrNotImplemented
}

func (t *BaseTransform) relabel(relabels map[string]string) BaseTransform {
	return BaseTransform{name: t.name, lhs: t.lhs.RelabeledClone(relabels), output: t.output}
}

func (t *BaseTransform) RelabeledClone(relabels map[string]string) Expression {
	n := t.relabel(relabels)
	return &n
}

func (t *BaseTransform) GroupByCols() []Expression {
	return t.lhs.GroupByCols()
}

// FuncTransform 用单参数 SQL 函数包裹左值
type FuncTransform struct {
	BaseTransform
	function string
}

func (t *FuncTransform) Function() string {
	return t.function
}

func (t *FuncTransform) AsSQL(c Compiler, _ Dialect) (string, []any, error) {
	sql, args, err := c.Compile(t.lhs)
	if err != nil {
		return "", nil, err
	}
	return t.function + "(" + sql + ")", args, nil
}

func (t *FuncTransform) RelabeledClone(relabels map[string]string) Expression {
	return &FuncTransform{BaseTransform: t.relabel(relabels), function: t.function}
}

func newFuncTransform(name, function string, lhs Expression, output OutputType) (Transform, error) {
	base, err := newBaseTransform(name, lhs, output)
	if err != nil {
		return nil, err
	}
	return &FuncTransform{BaseTransform: base, function: function}, nil
}

func Lower(lhs Expression) (Transform, error) {
	return newFuncTransform("lower", "LOWER", lhs, nil)
}

func Upper(lhs Expression) (Transform, error) {
	return newFuncTransform("upper", "UPPER", lhs, nil)
}

// Length 输出为整数
func Length(lhs Expression) (Transform, error) {
	return newFuncTransform("length", "LENGTH", lhs, IntegerField)
}

// ExtractTransform 提取日期时间的某一部分，DateTimeField 在启用时区时先转换时区
type ExtractTransform struct {
	BaseTransform
	part string
}

func Extract(lhs Expression, part string) (Transform, error) {
	if !ValidDatePart(part) {
		return nil, ferr.ErrInvalidDatePart(part)
	}
	base, err := newBaseTransform(part, lhs, IntegerField)
	if err != nil {
		return nil, err
	}
	return &ExtractTransform{BaseTransform: base, part: part}, nil
}

func (t *ExtractTransform) Part() string {
	return t.part
}

// AsSQL 参数顺序为左值参数在前，时区参数在后
func (t *ExtractTransform) AsSQL(c Compiler, d Dialect) (string, []any, error) {
	sql, args, err := c.Compile(t.lhs)
	if err != nil {
		return "", nil, err
	}
	var tzName string
	if ot := t.lhs.OutputType(); ot != nil && ot.Kind().IsA(KindDateTimeField) {
		tzName = c.TimeZoneName()
	}
	res, tzArgs, err := d.DatetimeExtract(t.part, sql, tzName)
	if err != nil {
		return "", nil, err
	}
	return res, append(args, tzArgs...), nil
}

func (t *ExtractTransform) RelabeledClone(relabels map[string]string) Expression {
	return &ExtractTransform{BaseTransform: t.relabel(relabels), part: t.part}
}
