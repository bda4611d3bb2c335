package lookup

import (
	"sort"
	"strings"
	"sync"

	"github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"
)

// Dialect 描述数据库方言在查询条件上的差异
// 所有模板中 %s 为填充位，%% 表示字面量百分号
type Dialect interface {
	Name() string

	// Quote 根据数据库方言对标识符(表名、列名等)进行引用
	Quote(name string) string

	// Placeholder 生成参数占位符，index 从 1 开始
	Placeholder(index int) string

	// Concat 字符串连接
	Concat(items ...string) string

	// Operator 操作符对应的右侧模板，例如 exact -> "= %s"
	Operator(lookupName string) (string, bool)

	// PatternOperator 右值为表达式时模式匹配使用的模板，通配符需要在 SQL 中拼接
	PatternOperator(lookupName string) (string, bool)

	// FieldCast 根据左值的内部类型对左值进行转换
	FieldCast(internalType string) string

	// LookupCast 根据操作符对左值进行转换
	LookupCast(lookupName string) string

	// DatetimeExtract 提取日期时间的某一部分，tzName 非空时先转换时区
	DatetimeExtract(part, sql, tzName string) (string, []any, error)

	// PrepForLikeQuery 转义 LIKE 模式中的特殊字符
	PrepForLikeQuery(s string) string

	// PrepForIExactQuery iexact 的参数处理
	PrepForIExactQuery(s string) string
}

var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]Dialect)
)

func RegisterDialect(name string, dialect Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[name] = dialect
}

func GetDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[name]
	if !ok {
		return nil, ferr.ErrInvalidDialect(name)
	}
	return d, nil
}

// Dialects 返回已注册的方言名
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// datePartNames 支持的日期部分
var datePartNames = map[string]string{
	"year":     "YEAR",
	"month":    "MONTH",
	"day":      "DAY",
	"week_day": "DOW",
	"hour":     "HOUR",
	"minute":   "MINUTE",
	"second":   "SECOND",
}

// ValidDatePart 判断 part 是否为支持的日期部分
func ValidDatePart(part string) bool {
	_, ok := datePartNames[part]
	return ok
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BaseDialect 提供默认实现，可被具体方言覆盖
type BaseDialect struct{}

var baseOperators = map[string]string{
	"exact":       "= %s",
	"iexact":      "LIKE %s",
	"contains":    "LIKE %s",
	"icontains":   "LIKE %s",
	"gt":          "> %s",
	"gte":         ">= %s",
	"lt":          "< %s",
	"lte":         "<= %s",
	"startswith":  "LIKE %s",
	"endswith":    "LIKE %s",
	"istartswith": "LIKE %s",
	"iendswith":   "LIKE %s",
}

var basePatternOps = map[string]string{
	"contains":    "LIKE CONCAT('%%', %s, '%%')",
	"icontains":   "LIKE CONCAT('%%', %s, '%%')",
	"startswith":  "LIKE CONCAT(%s, '%%')",
	"istartswith": "LIKE CONCAT(%s, '%%')",
}

func (b BaseDialect) Name() string {
	return "base"
}

// Quote 默认使用反引号
func (b BaseDialect) Quote(name string) string {
	return "`" + name + "`"
}

// Placeholder 默认使用问号作为占位符
func (b BaseDialect) Placeholder(index int) string {
	return "?"
}

// Concat 默认的字符串连接实现
func (b BaseDialect) Concat(items ...string) string {
	return "CONCAT(" + strings.Join(items, ", ") + ")"
}

func (b BaseDialect) Operator(lookupName string) (string, bool) {
	op, ok := baseOperators[lookupName]
	return op, ok
}

func (b BaseDialect) PatternOperator(lookupName string) (string, bool) {
	op, ok := basePatternOps[lookupName]
	return op, ok
}

func (b BaseDialect) FieldCast(internalType string) string {
	return "%s"
}

func (b BaseDialect) LookupCast(lookupName string) string {
	return "%s"
}

// DatetimeExtract 默认使用 EXTRACT，不处理时区
func (b BaseDialect) DatetimeExtract(part, sql, tzName string) (string, []any, error) {
	name, ok := datePartNames[part]
	if !ok {
		return "", nil, ferr.ErrInvalidDatePart(part)
	}
	if part == "week_day" {
		return "DAYOFWEEK(" + sql + ")", nil, nil
	}
	return "EXTRACT(" + name + " FROM " + sql + ")", nil, nil
}

func (b BaseDialect) PrepForLikeQuery(s string) string {
	return likeEscaper.Replace(s)
}

func (b BaseDialect) PrepForIExactQuery(s string) string {
	return likeEscaper.Replace(s)
}
