package lookup

import (
	"strings"

	"github.com/fyerfyer/fyer-lookup/lookup/internal/ferr"
)

type Sqlite struct {
	BaseDialect
}

// SQLite 的 LIKE 需要显式声明转义字符
var sqliteOperators = map[string]string{
	"exact":       "= %s",
	"iexact":      `LIKE %s ESCAPE '\'`,
	"contains":    `LIKE %s ESCAPE '\'`,
	"icontains":   `LIKE %s ESCAPE '\'`,
	"regex":       "REGEXP %s",
	"iregex":      "REGEXP '(?i)' || %s",
	"gt":          "> %s",
	"gte":         ">= %s",
	"lt":          "< %s",
	"lte":         "<= %s",
	"startswith":  `LIKE %s ESCAPE '\'`,
	"endswith":    `LIKE %s ESCAPE '\'`,
	"istartswith": `LIKE %s ESCAPE '\'`,
	"iendswith":   `LIKE %s ESCAPE '\'`,
}

var sqlitePatternOps = map[string]string{
	"contains":    `LIKE '%%' || %s || '%%' ESCAPE '\'`,
	"icontains":   `LIKE '%%' || %s || '%%' ESCAPE '\'`,
	"startswith":  `LIKE %s || '%%' ESCAPE '\'`,
	"istartswith": `LIKE %s || '%%' ESCAPE '\'`,
}

// strftime 格式，week_day 单独处理
var sqliteDateFormats = map[string]string{
	"year":   "%%Y",
	"month":  "%%m",
	"day":    "%%d",
	"hour":   "%%H",
	"minute": "%%M",
	"second": "%%S",
}

func (s Sqlite) Name() string {
	return "sqlite"
}

// Quote SQLite使用双引号
func (s Sqlite) Quote(name string) string {
	return `"` + name + `"`
}

// Placeholder SQLite使用问号作为占位符
func (s Sqlite) Placeholder(index int) string {
	return "?"
}

// Concat SQLite使用||作为字符串连接符
func (s Sqlite) Concat(items ...string) string {
	return strings.Join(items, " || ")
}

func (s Sqlite) Operator(lookupName string) (string, bool) {
	op, ok := sqliteOperators[lookupName]
	return op, ok
}

func (s Sqlite) PatternOperator(lookupName string) (string, bool) {
	op, ok := sqlitePatternOps[lookupName]
	return op, ok
}

// DatetimeExtract SQLite 没有时区支持，tzName 被忽略
func (s Sqlite) DatetimeExtract(part, sql, tzName string) (string, []any, error) {
	if part == "week_day" {
		return "CAST(STRFTIME('%%w', " + sql + ") AS INTEGER) + 1", nil, nil
	}
	format, ok := sqliteDateFormats[part]
	if !ok {
		return "", nil, ferr.ErrInvalidDatePart(part)
	}
	return "CAST(STRFTIME('" + format + "', " + sql + ") AS INTEGER)", nil, nil
}

func init() {
	RegisterDialect("sqlite", Sqlite{})
}
