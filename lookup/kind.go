package lookup

// Kind 标识一种可以挂载操作符的类型（列、转换、输出类型等）
// 祖先链在构造时计算一次，解析时只需要顺序遍历
type Kind struct {
	name   string
	parent *Kind
	chain  []*Kind
}

// NewKind 创建一个新的类型标识，parent 为 nil 表示根类型
func NewKind(name string, parent *Kind) *Kind {
	k := &Kind{name: name, parent: parent}
	k.chain = []*Kind{k}
	if parent != nil {
		k.chain = append(k.chain, parent.chain...)
	}
	return k
}

func (k *Kind) Name() string {
	return k.name
}

func (k *Kind) Parent() *Kind {
	return k.parent
}

// Chain 返回从自身开始、由近及远的祖先链，调用方不应修改返回值
func (k *Kind) Chain() []*Kind {
	return k.chain
}

// IsA 判断 k 是否为 other 或 other 的后代
func (k *Kind) IsA(other *Kind) bool {
	for _, c := range k.chain {
		if c == other {
			return true
		}
	}
	return false
}

func (k *Kind) String() string {
	return k.name
}

// Kinded 能够参与操作符解析的对象
type Kinded interface {
	Kind() *Kind
}

// 内置类型层级
var (
	KindExpression = NewKind("Expression", nil)
	KindColumn     = NewKind("Column", KindExpression)
	KindTransform  = NewKind("Transform", KindExpression)
	KindLookup     = NewKind("Lookup", KindExpression)
	KindSubquery   = NewKind("Subquery", KindExpression)

	KindField         = NewKind("Field", nil)
	KindIntegerField  = NewKind("IntegerField", KindField)
	KindFloatField    = NewKind("FloatField", KindField)
	KindCharField     = NewKind("CharField", KindField)
	KindTextField     = NewKind("TextField", KindCharField)
	KindBooleanField  = NewKind("BooleanField", KindField)
	KindDateField     = NewKind("DateField", KindField)
	KindDateTimeField = NewKind("DateTimeField", KindDateField)
)
