package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// OutputFormatter 按 text 或 json 输出结果
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

func (o *OutputFormatter) json(v any) error {
	enc := json.NewEncoder(o.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (o *OutputFormatter) Compile(res CompileResult) error {
	if o.Format == "json" {
		return o.json(res)
	}
	if res.Empty {
		_, err := fmt.Fprintln(o.Writer, "-- empty result set, no query is needed")
		return err
	}
	_, err := fmt.Fprintf(o.Writer, "%s\n-- args: %v\n", res.SQL, res.Args)
	return err
}

// Rows cols 为空时按列名排序输出
func (o *OutputFormatter) Rows(cols []string, rows []map[string]any) error {
	if o.Format == "json" {
		return o.json(rows)
	}
	if len(cols) == 0 && len(rows) > 0 {
		for col := range rows[0] {
			cols = append(cols, col)
		}
		sort.Strings(cols)
	}

	tw := tabwriter.NewWriter(o.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	for _, row := range rows {
		vals := make([]string, len(cols))
		for i, col := range cols {
			vals[i] = fmt.Sprint(row[col])
		}
		fmt.Fprintln(tw, strings.Join(vals, "\t"))
	}
	fmt.Fprintf(tw, "(%d rows)\n", len(rows))
	return tw.Flush()
}

func (o *OutputFormatter) Lookups(entries []LookupEntry) error {
	if o.Format == "json" {
		return o.json(entries)
	}
	tw := tabwriter.NewWriter(o.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tOWNER")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Kind, e.Owner)
	}
	return tw.Flush()
}
