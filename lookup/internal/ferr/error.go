package ferr

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResultSet 表示查询条件恒为假，调用方可以直接返回空结果而不访问数据库
	ErrEmptyResultSet      = errors.New("lookup: empty result set")
	ErrLookupNotRegistered = errors.New("lookup: operator is not registered")
	ErrNotImplemented      = errors.New("lookup: as sql is not implemented")
	ErrNilExpression       = errors.New("lookup: nil expression")
)

// UnsupportedLookupError 在给定类型上无法解析出对应的操作符
type UnsupportedLookupError struct {
	Lookup string
	Type   string
}

func (e *UnsupportedLookupError) Error() string {
	return fmt.Sprintf("lookup: unsupported lookup '%s' for %s", e.Lookup, e.Type)
}

// InvalidLookupValueError 右值无法通过输出类型的校验
type InvalidLookupValueError struct {
	Lookup string
	Value  any
	Reason string
}

func (e *InvalidLookupValueError) Error() string {
	return fmt.Sprintf("lookup: invalid value %v for lookup '%s': %s", e.Value, e.Lookup, e.Reason)
}

// UnsupportedOperatorError 方言没有为该操作符提供 SQL 片段
type UnsupportedOperatorError struct {
	Dialect string
	Lookup  string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("lookup: dialect %s does not support operator '%s'", e.Dialect, e.Lookup)
}

func ErrUnsupportedLookup(lookup, typ string) error {
	return &UnsupportedLookupError{Lookup: lookup, Type: typ}
}

func ErrInvalidLookupValue(lookup string, v any, reason string) error {
	return &InvalidLookupValueError{Lookup: lookup, Value: v, Reason: reason}
}

func ErrUnsupportedOperator(dialect, lookup string) error {
	return &UnsupportedOperatorError{Dialect: dialect, Lookup: lookup}
}

func ErrInvalidDialect(v any) error {
	return fmt.Errorf("lookup: invalid dialect: %v", v)
}

func ErrInvalidDatePart(part string) error {
	return fmt.Errorf("lookup: invalid date part: %s", part)
}

func ErrInvalidColumn(col string) error {
	return fmt.Errorf("lookup: invalid column name: %s", col)
}
