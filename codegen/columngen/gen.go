package columngen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/fyerfyer/fyer-lookup/lookup"
)

// Column 模型中一个导出字段对应的列
type Column struct {
	Field string
	Name  string
	Type  string
}

// Model 一个结构体对应的表
type Model struct {
	Name    string
	Table   string
	Pkg     string
	Columns []Column
}

// Generate 解析 inputFile 中的导出结构体，为每个结构体在 outputDir 下生成一个列定义文件
func Generate(inputFile string, outputDir string) ([]string, error) {
	models, err := Parse(inputFile, nil)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(models))
	for _, m := range models {
		src, err := Render(m)
		if err != nil {
			return nil, fmt.Errorf("generate code error: %w", err)
		}
		path := filepath.Join(outputDir, camelToSnake(m.Name)+".gen.go")
		if err = os.WriteFile(path, src, 0644); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

// Parse 解析 Go 源文件，src 为 nil 时从 filename 读取
func Parse(filename string, src any) ([]Model, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse file error: %w", err)
	}

	var models []Model
	for _, decl := range node.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			st, ok := ts.Type.(*ast.StructType)
			if !ok || !ast.IsExported(ts.Name.Name) {
				continue
			}
			m := Model{
				Name:  ts.Name.Name,
				Table: camelToSnake(ts.Name.Name),
				Pkg:   node.Name.Name,
			}
			for _, field := range st.Fields.List {
				cols, err := parseField(field)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", ts.Name.Name, err)
				}
				m.Columns = append(m.Columns, cols...)
			}
			if len(m.Columns) > 0 {
				models = append(models, m)
			}
		}
	}
	return models, nil
}

func parseField(field *ast.Field) ([]Column, error) {
	// 匿名字段不生成列
	if len(field.Names) == 0 {
		return nil, nil
	}

	tags, err := parseTag(field.Tag)
	if err != nil {
		return nil, err
	}
	typ := fieldType(field.Type)
	if t, ok := tags["type"]; ok {
		if _, known := lookup.FieldByName(t); !known {
			return nil, fmt.Errorf("unknown field type %q", t)
		}
		typ = t
		if t == "Field" {
			typ = "GenericField"
		}
	}

	var cols []Column
	for _, name := range field.Names {
		if !ast.IsExported(name.Name) {
			continue
		}
		col := Column{Field: name.Name, Name: camelToSnake(name.Name), Type: typ}
		if n, ok := tags["column_name"]; ok && len(field.Names) == 1 {
			col.Name = n
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// parseTag 解析tag
// tag格式：`orm:"column_name:col_name;type:DateField"`
func parseTag(lit *ast.BasicLit) (map[string]string, error) {
	if lit == nil {
		return nil, nil
	}
	raw, err := strconv.Unquote(lit.Value)
	if err != nil {
		return nil, err
	}
	tag := reflect.StructTag(raw).Get("orm")
	if tag == "" {
		return nil, nil
	}

	tags := make(map[string]string, 2)
	for _, kv := range strings.Split(tag, ";") {
		pair := strings.Split(kv, ":")
		if len(pair) != 2 || (pair[0] != "column_name" && pair[0] != "type") {
			return nil, fmt.Errorf("invalid tag %q", tag)
		}
		tags[pair[0]] = pair[1]
	}
	return tags, nil
}

// fieldType 根据 Go 类型推断输出类型名，指针按指向的类型处理
func fieldType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return fieldType(t.X)
	case *ast.Ident:
		switch t.Name {
		case "int", "int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64":
			return "IntegerField"
		case "float32", "float64":
			return "FloatField"
		case "string":
			return "CharField"
		case "bool":
			return "BooleanField"
		}
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			break
		}
		switch pkg.Name + "." + t.Sel.Name {
		case "time.Time", "sql.NullTime":
			return "DateTimeField"
		case "sql.NullString":
			return "CharField"
		case "sql.NullInt64", "sql.NullInt32", "sql.NullInt16", "sql.NullByte":
			return "IntegerField"
		case "sql.NullFloat64":
			return "FloatField"
		case "sql.NullBool":
			return "BooleanField"
		}
	}
	return "GenericField"
}

var columnTemplate = template.Must(template.New("columns").Parse(`// Code generated by lookupsql gen. DO NOT EDIT.

package {{.Pkg}}

import "github.com/fyerfyer/fyer-lookup/lookup"

// {{.Name}}Table {{.Name}} 对应的表名
const {{.Name}}Table = "{{.Table}}"

// {{.Name}} 的列
var (
{{- range .Columns}}
	{{$.Name}}{{.Field}} = lookup.Col("{{.Name}}").Typed(lookup.{{.Type}})
{{- end}}
)
`))

// Render 生成并格式化单个模型的代码
func Render(m Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := columnTemplate.Execute(&buf, m); err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

// camelToSnake 将驼峰式命名转换为下划线命名，连续大写视为一个单词
func camelToSnake(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}
