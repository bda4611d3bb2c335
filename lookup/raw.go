package lookup

// RawExpr 原始 SQL 片段，作为右值时会被括号包裹
type RawExpr struct {
	raw  string
	args []any
}

// Raw 创建原始 SQL 片段，参数占位符使用 %s，字面量百分号写作 %%
func Raw(raw string, args ...any) RawExpr {
	return RawExpr{
		raw:  raw,
		args: args,
	}
}

func (r RawExpr) RawSQL(_ Dialect) (string, []any, error) {
	args := make([]any, len(r.args))
	copy(args, r.args)
	return r.raw, args, nil
}
