package query

import (
	"strings"

	"github.com/fyerfyer/fyer-lookup/lookup"
)

// Rebind 把编译结果中的 %s 换成方言的占位符，%% 还原为 %
func Rebind(sql string, d lookup.Dialect) string {
	var sb strings.Builder
	sb.Grow(len(sql))
	index := 1
	for i := 0; i < len(sql); i++ {
		if sql[i] != '%' || i+1 >= len(sql) {
			sb.WriteByte(sql[i])
			continue
		}
		switch sql[i+1] {
		case 's':
			sb.WriteString(d.Placeholder(index))
			index++
			i++
		case '%':
			sb.WriteByte('%')
			i++
		default:
			sb.WriteByte(sql[i])
		}
	}
	return sb.String()
}
