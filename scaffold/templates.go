package scaffold

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

// Template 表示一个模板文件
type Template struct {
	Path     string // 模板在FS中的路径
	DestPath string // 目标路径（相对于输出目录）
}

// TemplateData 生成文件需要的数据
type TemplateData struct {
	Dialect string
	DSN     string
	Table   string
	Model   string
	Package string
}

// templatesFor 模型文件按表名命名
func templatesFor(data TemplateData) []Template {
	return []Template{
		{Path: "templates/lookupsql.yaml.tmpl", DestPath: "lookupsql.yaml"},
		{Path: "templates/model.go.tmpl", DestPath: data.Package + "/" + data.Table + ".go"},
	}
}

// ParseTemplateContent 解析模板内容
func ParseTemplateContent(content string, data TemplateData) (string, error) {
	tmpl, err := template.New("template").Parse(content)
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err = tmpl.Execute(&result, data); err != nil {
		return "", err
	}
	return result.String(), nil
}

// GetTemplateContent 从嵌入式FS中读取模板内容
func GetTemplateContent(path string) (string, error) {
	content, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
