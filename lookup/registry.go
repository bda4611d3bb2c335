package lookup

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/fyerfyer/fyer-lookup/logger"
	"github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"
)

// Operator 是注册表中的条目，可以是 LookupClass 或 TransformClass
type Operator interface {
	OperatorName() string
}

// LookupClass 描述一个比较操作符及其构造函数
type LookupClass struct {
	Name string
	New  func(lhs Expression, rhs any) (Lookup, error)
}

func (c *LookupClass) OperatorName() string {
	return c.Name
}

// TransformClass 描述一个一元转换及其构造函数
type TransformClass struct {
	Name string
	New  func(lhs Expression) (Transform, error)
}

func (c *TransformClass) OperatorName() string {
	return c.Name
}

type registryKey struct {
	kind *Kind
	name string
}

type registryMap map[registryKey]Operator

// Registry 按 (类型, 操作符名) 保存操作符
// 读操作无锁，直接读取当前快照；写操作加锁后复制整个映射再替换
type Registry struct {
	mu     sync.Mutex
	snap   atomic.Pointer[registryMap]
	gen    atomic.Uint64
	logger logger.Logger
}

// RegistryOption 注册表配置项
type RegistryOption func(*Registry)

// WithRegistryLogger 设置注册表使用的日志记录器
func WithRegistryLogger(l logger.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry 创建一个空的注册表
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		logger: logger.GetDefaultLogger(),
	}
	m := make(registryMap)
	r.snap.Store(&m)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) load() registryMap {
	return *r.snap.Load()
}

// Generation 每次写操作后递增，可用于判断缓存是否失效
func (r *Registry) Generation() uint64 {
	return r.gen.Load()
}

// mutate 在写锁内复制当前映射并交给 fn 修改
func (r *Registry) mutate(fn func(m registryMap) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.load()
	m := make(registryMap, len(old)+1)
	for k, v := range old {
		m[k] = v
	}
	if err := fn(m); err != nil {
		return err
	}
	r.snap.Store(&m)
	r.gen.Add(1)
	return nil
}

// Register 将操作符注册到 owner 自身的作用域中，同名操作符会被替换
func (r *Registry) Register(owner *Kind, op Operator) {
	_ = r.mutate(func(m registryMap) error {
		m[registryKey{kind: owner, name: op.OperatorName()}] = op
		return nil
	})
	r.logger.Debug("operator registered",
		logger.String("kind", owner.Name()),
		logger.String("operator", op.OperatorName()))
}

// Unregister 从 owner 的作用域中移除操作符，只应在测试中使用
func (r *Registry) Unregister(owner *Kind, op Operator) error {
	err := r.mutate(func(m registryMap) error {
		key := registryKey{kind: owner, name: op.OperatorName()}
		if _, ok := m[key]; !ok {
			return ferr.ErrLookupNotRegistered
		}
		delete(m, key)
		return nil
	})
	if err != nil {
		return err
	}
	r.logger.Debug("operator unregistered",
		logger.String("kind", owner.Name()),
		logger.String("operator", op.OperatorName()))
	return nil
}

// Override 临时在 owner 的作用域中注册 op，返回的函数会恢复之前的状态
//
//	restore := reg.Override(KindCharField, &LookupClass{Name: "exact", New: myExact})
//	defer restore()
func (r *Registry) Override(owner *Kind, op Operator) (restore func()) {
	key := registryKey{kind: owner, name: op.OperatorName()}
	var prev Operator
	var had bool
	_ = r.mutate(func(m registryMap) error {
		prev, had = m[key]
		m[key] = op
		return nil
	})
	r.logger.Debug("operator overridden",
		logger.String("kind", owner.Name()),
		logger.String("operator", op.OperatorName()))

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = r.mutate(func(m registryMap) error {
				if had {
					m[key] = prev
				} else {
					delete(m, key)
				}
				return nil
			})
		})
	}
}

// Resolve 解析 expr 上名为 name 的操作符
// 先查 expr 自身类型，再由近及远查祖先类型，每一层只看该类型自己的作用域；
// 都没有时，如果 expr 有输出类型，则在输出类型的层级上继续查找
func (r *Registry) Resolve(expr any, name string) Operator {
	m := r.load()
	if k, ok := expr.(Kinded); ok {
		if op := resolveChain(m, k.Kind(), name); op != nil {
			return op
		}
	}
	if e, ok := expr.(interface{ OutputType() OutputType }); ok {
		if ot := e.OutputType(); ot != nil {
			return resolveChain(m, ot.Kind(), name)
		}
	}
	return nil
}

// ResolveLookup 与 Resolve 相同，但只接受比较操作符
func (r *Registry) ResolveLookup(expr any, name string) *LookupClass {
	lc, _ := r.Resolve(expr, name).(*LookupClass)
	return lc
}

// ResolveTransform 与 Resolve 相同，但只接受转换
func (r *Registry) ResolveTransform(expr any, name string) *TransformClass {
	tc, _ := r.Resolve(expr, name).(*TransformClass)
	return tc
}

func resolveChain(m registryMap, k *Kind, name string) Operator {
	if k == nil {
		return nil
	}
	for _, c := range k.Chain() {
		if op, ok := m[registryKey{kind: c, name: name}]; ok {
			return op
		}
	}
	return nil
}

// Entry 描述某个类型上可解析的一个操作符
type Entry struct {
	Name      string
	Owner     *Kind
	Transform bool
}

// Entries 列出 k 及其祖先上可以解析到的全部操作符，被子类型覆盖的祖先条目不会出现
func (r *Registry) Entries(k *Kind) []Entry {
	m := r.load()
	seen := make(map[string]bool)
	var res []Entry
	for _, c := range k.Chain() {
		var names []string
		for key := range m {
			if key.kind == c && !seen[key.name] {
				names = append(names, key.name)
			}
		}
		sort.Strings(names)
		for _, n := range names {
			seen[n] = true
			_, isTransform := m[registryKey{kind: c, name: n}].(*TransformClass)
			res = append(res, Entry{Name: n, Owner: c, Transform: isTransform})
		}
	}
	return res
}
