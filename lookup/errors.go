package lookup

import "github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"

// 对外暴露的错误，调用方通过 errors.Is / errors.As 判断
var (
	ErrEmptyResultSet      = ferr.ErrEmptyResultSet
	ErrLookupNotRegistered = ferr.ErrLookupNotRegistered
	ErrNotImplemented      = ferr.ErrNotImplemented
	ErrNilExpression       = ferr.ErrNilExpression
)

type (
	UnsupportedLookupError   = ferr.UnsupportedLookupError
	InvalidLookupValueError  = ferr.InvalidLookupValueError
	UnsupportedOperatorError = ferr.UnsupportedOperatorError
)
