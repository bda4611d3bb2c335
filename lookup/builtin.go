package lookup

// builtinNode 可以交给 compileBuiltin 编译的操作符
type builtinNode interface {
	Lookup
	ProcessLHS(c Compiler) (string, []any, error)
	ProcessRHS(c Compiler, d Dialect) (string, []any, error)
	rhsOperator(d Dialect, rhs string) (string, error)
}

// compileBuiltin 通用的编译流程：
// 处理左值，依次套用字段转换和操作符转换，再处理右值并填入操作符模板
func compileBuiltin(n builtinNode, c Compiler, d Dialect) (string, []any, error) {
	lhsSQL, lhsArgs, err := n.ProcessLHS(c)
	if err != nil {
		return "", nil, err
	}
	ot, err := outputTypeOf(n.LHS())
	if err != nil {
		return "", nil, err
	}
	lhsSQL = fill(d.FieldCast(ot.InternalType()), lhsSQL)
	lhsSQL = fill(d.LookupCast(n.LookupName()), lhsSQL)

	rhsSQL, rhsArgs, err := n.ProcessRHS(c, d)
	if err != nil {
		return "", nil, err
	}
	op, err := n.rhsOperator(d, rhsSQL)
	if err != nil {
		return "", nil, err
	}

	args := make([]any, 0, len(lhsArgs)+len(rhsArgs))
	args = append(args, lhsArgs...)
	args = append(args, rhsArgs...)
	return lhsSQL + " " + op, args, nil
}

// BuiltinLookup 操作符模板完全由方言决定的比较
type BuiltinLookup struct {
	BaseLookup
}

func newBuiltinLookup(name string, lhs Expression, rhs any) (Lookup, error) {
	base, err := newBaseLookup(name, lhs, rhs)
	if err != nil {
		return nil, err
	}
	return &BuiltinLookup{BaseLookup: base}, nil
}

func (l *BuiltinLookup) AsSQL(c Compiler, d Dialect) (string, []any, error) {
	return compileBuiltin(l, c, d)
}

func (l *BuiltinLookup) RelabeledClone(relabels map[string]string) Expression {
	return &BuiltinLookup{BaseLookup: l.relabel(relabels)}
}
