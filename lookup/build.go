package lookup

import (
	"strings"

	"github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"
)

// LookupSep 路径中转换与比较之间的分隔符
const LookupSep = "__"

// Build 解析形如 "lower__startswith" 的路径并构建查询条件
// 除最后一段外都必须是转换；最后一段是转换时补上 exact；路径为空时等同于 exact
// reg 为 nil 时使用当前配置中的注册表
func Build(reg *Registry, lhs Expression, path string, rhs any) (Lookup, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	if lhs == nil {
		return nil, ferr.ErrNilExpression
	}
	names := []string{"exact"}
	if path != "" {
		names = strings.Split(path, LookupSep)
	}

	expr := lhs
	for _, name := range names[:len(names)-1] {
		t, err := applyTransform(reg, expr, name)
		if err != nil {
			return nil, err
		}
		expr = t
	}

	last := names[len(names)-1]
	if lc := reg.ResolveLookup(expr, last); lc != nil {
		return lc.New(expr, rhs)
	}
	if reg.ResolveTransform(expr, last) == nil {
		return nil, ferr.ErrUnsupportedLookup(last, typeName(expr))
	}
	t, err := applyTransform(reg, expr, last)
	if err != nil {
		return nil, err
	}
	lc := reg.ResolveLookup(t, "exact")
	if lc == nil {
		return nil, ferr.ErrUnsupportedLookup("exact", typeName(t))
	}
	return lc.New(t, rhs)
}

func applyTransform(reg *Registry, expr Expression, name string) (Expression, error) {
	tc := reg.ResolveTransform(expr, name)
	if tc == nil {
		return nil, ferr.ErrUnsupportedLookup(name, typeName(expr))
	}
	return tc.New(expr)
}
