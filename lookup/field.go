package lookup

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"
)

// OutputType 表达式声明的语义类型，负责右值的校验与转换
type OutputType interface {
	Kinded
	// InternalType 用于选择左值的类型转换
	InternalType() string
	// PrepareLookupValue 在构造查询条件时校验并转换右值
	PrepareLookupValue(lookupName string, v Value) (Value, error)
	// PrepareDatabaseValue 将准备好的值转换为可以直接绑定的参数
	PrepareDatabaseValue(lookupName string, v any, d Dialect, prepared bool) (any, error)
}

// Field 内置输出类型的通用实现
type Field struct {
	kind     *Kind
	internal string
	prep     func(v any) (any, error)
	dbPrep   func(v any) any
}

// NewField 创建自定义输出类型，prep 为 nil 时右值原样保留
func NewField(kind *Kind, internal string, prep func(v any) (any, error)) *Field {
	if prep == nil {
		prep = identity
	}
	return &Field{kind: kind, internal: internal, prep: prep}
}

var (
	GenericField  = NewField(KindField, "Field", nil)
	IntegerField  = NewField(KindIntegerField, "IntegerField", toInt64)
	FloatField    = NewField(KindFloatField, "FloatField", toFloat64)
	CharField     = NewField(KindCharField, "CharField", toString)
	TextField     = NewField(KindTextField, "TextField", toString)
	BooleanField  = NewField(KindBooleanField, "BooleanField", toBool)
	DateField     = &Field{kind: KindDateField, internal: "DateField", prep: toTime, dbPrep: dateDBValue}
	DateTimeField = &Field{kind: KindDateTimeField, internal: "DateTimeField", prep: toTime, dbPrep: dateTimeDBValue}
)

var fieldsByName = map[string]*Field{
	"Field":         GenericField,
	"IntegerField":  IntegerField,
	"FloatField":    FloatField,
	"CharField":     CharField,
	"TextField":     TextField,
	"BooleanField":  BooleanField,
	"DateField":     DateField,
	"DateTimeField": DateTimeField,
}

// FieldByName 按内部类型名查找内置输出类型
func FieldByName(name string) (*Field, bool) {
	f, ok := fieldsByName[name]
	return f, ok
}

func (f *Field) Kind() *Kind {
	return f.kind
}

func (f *Field) InternalType() string {
	return f.internal
}

func (f *Field) String() string {
	return f.internal
}

func (f *Field) PrepareLookupValue(lookupName string, v Value) (Value, error) {
	// 表达式由数据库计算，这里不做转换
	if v.IsExpression() {
		return v, nil
	}
	raw := v.Literal()

	switch lookupName {
	case "exact", "gt", "gte", "lt", "lte":
		if raw == nil {
			return Value{}, ferr.ErrInvalidLookupValue(lookupName, raw, "use isnull to compare against NULL")
		}
		p, err := f.prep(raw)
		if err != nil {
			return Value{}, ferr.ErrInvalidLookupValue(lookupName, raw, err.Error())
		}
		return Literal(p), nil
	case "iexact", "contains", "icontains", "startswith", "istartswith",
		"endswith", "iendswith", "search", "regex", "iregex":
		if raw == nil {
			return Value{}, ferr.ErrInvalidLookupValue(lookupName, raw, "value must not be nil")
		}
		s, err := toString(raw)
		if err != nil {
			return Value{}, ferr.ErrInvalidLookupValue(lookupName, raw, err.Error())
		}
		return Literal(s), nil
	case "in":
		items, ok := toSlice(raw)
		if !ok {
			return Value{}, ferr.ErrInvalidLookupValue(lookupName, raw, "value must be a collection")
		}
		res := make([]any, 0, len(items))
		for _, item := range items {
			// NULL 不会与任何值相等
			if item == nil {
				continue
			}
			if Prepare(item).IsExpression() {
				return Value{}, ferr.ErrInvalidLookupValue(lookupName, item, "expressions are not allowed inside a collection")
			}
			p, err := f.prep(item)
			if err != nil {
				return Value{}, ferr.ErrInvalidLookupValue(lookupName, item, err.Error())
			}
			res = append(res, p)
		}
		return Literal(res), nil
	case "range":
		return f.prepareBounds(raw)
	case "year", "month", "day", "week_day", "hour", "minute", "second":
		n, err := toInt(raw)
		if err != nil {
			return Value{}, ferr.ErrInvalidLookupValue(lookupName, raw, "an integer argument is required")
		}
		return Literal(n), nil
	case "isnull":
		b, ok := raw.(bool)
		if !ok {
			return Value{}, ferr.ErrInvalidLookupValue(lookupName, raw, "a boolean argument is required")
		}
		return Literal(b), nil
	}
	return Value{}, ferr.ErrUnsupportedLookup(lookupName, f.internal)
}

func (f *Field) prepareBounds(raw any) (Value, error) {
	if b, ok := raw.(Bounds); ok {
		raw = []any{b[0], b[1]}
	}
	items, ok := toSlice(raw)
	if !ok || len(items) != 2 {
		return Value{}, ferr.ErrInvalidLookupValue("range", raw, "a pair of bounds is required")
	}
	var bounds Bounds
	for i, item := range items {
		bv := Prepare(item)
		if !bv.IsExpression() {
			p, err := f.prep(bv.Literal())
			if err != nil {
				return Value{}, ferr.ErrInvalidLookupValue("range", item, err.Error())
			}
			bv = Literal(p)
		}
		bounds[i] = bv
	}
	return Literal(bounds), nil
}

func (f *Field) PrepareDatabaseValue(lookupName string, v any, d Dialect, prepared bool) (any, error) {
	if !prepared {
		pv, err := f.PrepareLookupValue(lookupName, Literal(v))
		if err != nil {
			return nil, err
		}
		v = pv.Literal()
	}

	switch lookupName {
	case "iexact":
		return d.PrepForIExactQuery(asString(v)), nil
	case "contains", "icontains":
		return "%" + d.PrepForLikeQuery(asString(v)) + "%", nil
	case "startswith", "istartswith":
		return d.PrepForLikeQuery(asString(v)) + "%", nil
	case "endswith", "iendswith":
		return "%" + d.PrepForLikeQuery(asString(v)), nil
	case "search", "regex", "iregex", "isnull":
		return v, nil
	case "in":
		items, _ := v.([]any)
		res := make([]any, len(items))
		for i, item := range items {
			res[i] = f.dbValue(item)
		}
		return res, nil
	case "year", "month", "day", "week_day", "hour", "minute", "second":
		return v, nil
	}
	return f.dbValue(v), nil
}

func (f *Field) dbValue(v any) any {
	if f.dbPrep == nil {
		return v
	}
	return f.dbPrep(v)
}

func identity(v any) (any, error) {
	return v, nil
}

// toSlice 将切片或数组展开为 []any，字符串不视为集合
func toSlice(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	res := make([]any, rv.Len())
	for i := range res {
		res[i] = rv.Index(i).Interface()
	}
	return res, true
}

func toInt64(v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%v overflows int64", v)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fmt.Errorf("%v overflows int64", v)
		}
		if f != float64(int64(f)) {
			return nil, fmt.Errorf("%v is not an integer", v)
		}
		return int64(f), nil
	case reflect.String:
		return strconv.ParseInt(rv.String(), 10, 64)
	}
	return nil, fmt.Errorf("cannot convert %T to integer", v)
}

func toInt(v any) (int, error) {
	n, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	return int(n.(int64)), nil
}

func toFloat64(v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.String:
		return strconv.ParseFloat(rv.String(), 64)
	}
	return nil, fmt.Errorf("cannot convert %T to float", v)
}

func toString(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case fmt.Stringer:
		return s.String(), nil
	case nil:
		return nil, fmt.Errorf("cannot convert nil to string")
	}
	return fmt.Sprint(v), nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func toBool(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(b)
	}
	n, err := toInt64(v)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %T to boolean", v)
	}
	switch n.(int64) {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return nil, fmt.Errorf("%v is not a boolean", v)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func toTime(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t == nil {
			return nil, fmt.Errorf("cannot convert nil to time")
		}
		return *t, nil
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
		return nil, fmt.Errorf("%q is not a valid date/time", t)
	}
	return nil, fmt.Errorf("cannot convert %T to time", v)
}

func dateDBValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return v
}

// dateTimeDBValue 启用时区时统一转换为 UTC 存储
func dateTimeDBValue(v any) any {
	t, ok := v.(time.Time)
	if !ok {
		return v
	}
	if CurrentSettings().UseTZ {
		return t.UTC()
	}
	return t
}
