package lookup

import (
	"strconv"
	"strings"

	"github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"
)

type Postgresql struct {
	BaseDialect
}

// 不区分大小写的比较两侧都转换为大写
var postgresOperators = map[string]string{
	"exact":       "= %s",
	"iexact":      "= UPPER(%s)",
	"contains":    "LIKE %s",
	"icontains":   "LIKE UPPER(%s)",
	"regex":       "~ %s",
	"iregex":      "~* %s",
	"gt":          "> %s",
	"gte":         ">= %s",
	"lt":          "< %s",
	"lte":         "<= %s",
	"startswith":  "LIKE %s",
	"endswith":    "LIKE %s",
	"istartswith": "LIKE UPPER(%s)",
	"iendswith":   "LIKE UPPER(%s)",
	"search":      "@@ plainto_tsquery(%s)",
}

var postgresPatternOps = map[string]string{
	"contains":    "LIKE '%%' || %s || '%%'",
	"icontains":   "LIKE '%%' || UPPER(%s) || '%%'",
	"startswith":  "LIKE %s || '%%'",
	"istartswith": "LIKE UPPER(%s) || '%%'",
}

func (p Postgresql) Name() string {
	return "postgresql"
}

// Quote PostgreSQL使用双引号
func (p Postgresql) Quote(name string) string {
	return `"` + name + `"`
}

// Placeholder PostgreSQL使用$n作为占位符
func (p Postgresql) Placeholder(index int) string {
	return "$" + strconv.Itoa(index)
}

// Concat PostgreSQL使用||作为字符串连接符
func (p Postgresql) Concat(items ...string) string {
	return strings.Join(items, " || ")
}

func (p Postgresql) Operator(lookupName string) (string, bool) {
	op, ok := postgresOperators[lookupName]
	return op, ok
}

func (p Postgresql) PatternOperator(lookupName string) (string, bool) {
	op, ok := postgresPatternOps[lookupName]
	return op, ok
}

// LookupCast 文本类操作符需要把左值转换为 text
func (p Postgresql) LookupCast(lookupName string) string {
	switch lookupName {
	case "iexact", "icontains", "istartswith", "iendswith", "iregex":
		return "UPPER(%s::text)"
	case "contains", "startswith", "endswith", "regex":
		return "%s::text"
	case "search":
		return "to_tsvector(%s)"
	}
	return "%s"
}

// PrepForIExactQuery iexact 使用等号比较，不需要转义
func (p Postgresql) PrepForIExactQuery(s string) string {
	return s
}

func (p Postgresql) DatetimeExtract(part, sql, tzName string) (string, []any, error) {
	if !ValidDatePart(part) {
		return "", nil, ferr.ErrInvalidDatePart(part)
	}
	var args []any
	if tzName != "" {
		sql = sql + " AT TIME ZONE %s"
		args = append(args, tzName)
	}
	// PostgreSQL 的 dow 从 0 开始(周日)，统一为 1 表示周日
	if part == "week_day" {
		return "EXTRACT('dow' FROM " + sql + ") + 1", args, nil
	}
	return "EXTRACT('" + part + "' FROM " + sql + ")", args, nil
}

func init() {
	RegisterDialect("postgresql", Postgresql{})
}
