package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fyerfyer/fyer-lookup/lookup"
)

// Scaffolder 生成初始配置文件和示例模型
type Scaffolder struct {
	Dialect    string // 方言名
	DSN        string // 数据库连接串，可为空
	Table      string // 示例表名
	OutputPath string // 输出路径
	Force      bool   // 是否覆盖已存在的文件
}

// ScaffoldOption 定义脚手架选项函数
type ScaffoldOption func(*Scaffolder)

// WithDSN 设置数据库连接串
func WithDSN(dsn string) ScaffoldOption {
	return func(s *Scaffolder) {
		s.DSN = dsn
	}
}

// WithTable 设置示例表名
func WithTable(table string) ScaffoldOption {
	return func(s *Scaffolder) {
		s.Table = table
	}
}

// WithOutputPath 设置自定义输出路径
func WithOutputPath(outputPath string) ScaffoldOption {
	return func(s *Scaffolder) {
		s.OutputPath = outputPath
	}
}

// WithForce 覆盖已存在的文件
func WithForce(force bool) ScaffoldOption {
	return func(s *Scaffolder) {
		s.Force = force
	}
}

// NewScaffolder 创建一个新的脚手架实例
func NewScaffolder(dialect string, opts ...ScaffoldOption) *Scaffolder {
	s := &Scaffolder{
		Dialect:    dialect,
		Table:      "users",
		OutputPath: ".",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var tableNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateTableName 表名只允许小写字母、数字和下划线
func ValidateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name %q: must match %s", name, tableNamePattern)
	}
	return nil
}

// Generate 生成文件，返回写入的路径
func (s *Scaffolder) Generate() ([]string, error) {
	if _, err := lookup.GetDialect(s.Dialect); err != nil {
		return nil, err
	}
	if err := ValidateTableName(s.Table); err != nil {
		return nil, err
	}

	data := TemplateData{
		Dialect: s.Dialect,
		DSN:     s.DSN,
		Table:   s.Table,
		Model:   modelName(s.Table),
		Package: "models",
	}

	tmpls := templatesFor(data)
	// 先检查全部目标，避免只写入一部分文件
	if !s.Force {
		for _, tmpl := range tmpls {
			destPath := filepath.Join(s.OutputPath, tmpl.DestPath)
			if _, err := os.Stat(destPath); err == nil {
				return nil, fmt.Errorf("file %s already exists", destPath)
			}
		}
	}

	files := make([]string, 0, len(tmpls))
	for _, tmpl := range tmpls {
		content, err := GetTemplateContent(tmpl.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", tmpl.Path, err)
		}

		parsedContent, err := ParseTemplateContent(content, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", tmpl.Path, err)
		}

		destPath := filepath.Join(s.OutputPath, tmpl.DestPath)
		if err = os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(destPath), err)
		}
		if err = os.WriteFile(destPath, []byte(parsedContent), 0644); err != nil {
			return nil, fmt.Errorf("failed to write file %s: %w", destPath, err)
		}
		files = append(files, destPath)
	}
	return files, nil
}

// modelName order_items -> OrderItems
func modelName(table string) string {
	var sb strings.Builder
	for _, part := range strings.Split(table, "_") {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}
