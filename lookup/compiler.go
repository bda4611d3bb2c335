package lookup

import "github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"

// SQLCompiler 默认的编译器实现，递归调用表达式自身的 AsSQL
type SQLCompiler struct {
	dialect Dialect
	tzName  string
}

type CompilerOption func(*SQLCompiler)

// WithTimeZoneName 覆盖配置中的时区，传入空串表示不做时区转换
func WithTimeZoneName(name string) CompilerOption {
	return func(c *SQLCompiler) {
		c.tzName = name
	}
}

func NewCompiler(d Dialect, opts ...CompilerOption) *SQLCompiler {
	c := &SQLCompiler{
		dialect: d,
		tzName:  CurrentSettings().TimeZoneName(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SQLCompiler) Compile(e Expression) (string, []any, error) {
	if e == nil {
		return "", nil, ferr.ErrNilExpression
	}
	return e.AsSQL(c, c.dialect)
}

func (c *SQLCompiler) Dialect() Dialect {
	return c.dialect
}

func (c *SQLCompiler) TimeZoneName() string {
	return c.tzName
}
