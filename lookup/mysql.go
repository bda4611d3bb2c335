package lookup

import "github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"

type Mysql struct {
	BaseDialect
}

// MySQL 默认排序规则不区分大小写，区分大小写的比较需要 BINARY
var mysqlOperators = map[string]string{
	"exact":       "= %s",
	"iexact":      "LIKE %s",
	"contains":    "LIKE BINARY %s",
	"icontains":   "LIKE %s",
	"regex":       "REGEXP BINARY %s",
	"iregex":      "REGEXP %s",
	"gt":          "> %s",
	"gte":         ">= %s",
	"lt":          "< %s",
	"lte":         "<= %s",
	"startswith":  "LIKE BINARY %s",
	"endswith":    "LIKE BINARY %s",
	"istartswith": "LIKE %s",
	"iendswith":   "LIKE %s",
	"search":      "AGAINST (%s IN BOOLEAN MODE)",
}

var mysqlPatternOps = map[string]string{
	"contains":    "LIKE BINARY CONCAT('%%', %s, '%%')",
	"icontains":   "LIKE CONCAT('%%', %s, '%%')",
	"startswith":  "LIKE BINARY CONCAT(%s, '%%')",
	"istartswith": "LIKE CONCAT(%s, '%%')",
}

func (m Mysql) Name() string {
	return "mysql"
}

// Quote 使用反引号作为MySQL的标识符引用符
func (m Mysql) Quote(name string) string {
	return "`" + name + "`"
}

// Placeholder MySQL使用问号作为占位符
func (m Mysql) Placeholder(index int) string {
	return "?"
}

func (m Mysql) Operator(lookupName string) (string, bool) {
	op, ok := mysqlOperators[lookupName]
	return op, ok
}

func (m Mysql) PatternOperator(lookupName string) (string, bool) {
	op, ok := mysqlPatternOps[lookupName]
	return op, ok
}

// LookupCast 全文检索需要 MATCH 包裹左值
func (m Mysql) LookupCast(lookupName string) string {
	if lookupName == "search" {
		return "MATCH (%s)"
	}
	return "%s"
}

// DatetimeExtract 时区名作为参数绑定，位于左值参数之后
func (m Mysql) DatetimeExtract(part, sql, tzName string) (string, []any, error) {
	if !ValidDatePart(part) {
		return "", nil, ferr.ErrInvalidDatePart(part)
	}
	var args []any
	if tzName != "" {
		sql = "CONVERT_TZ(" + sql + ", 'UTC', %s)"
		args = append(args, tzName)
	}
	res, _, err := m.BaseDialect.DatetimeExtract(part, sql, "")
	if err != nil {
		return "", nil, err
	}
	return res, args, nil
}

func init() {
	RegisterDialect("mysql", Mysql{})
}
