package logger

import (
	"io"
	"time"
)

// LogLevel 定义日志级别
type LogLevel int

const (
	// DebugLevel 调试级别
	DebugLevel LogLevel = iota
	// InfoLevel 信息级别
	InfoLevel
	// WarnLevel 警告级别
	WarnLevel
	// ErrorLevel 错误级别
	ErrorLevel
	// Disabled 关闭日志输出
	Disabled
)

// Field 表示结构化日志的字段
type Field struct {
	Key   string
	Value interface{}
}

// Logger 定义日志接口
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithField 添加单个字段
	WithField(key string, value interface{}) Logger
	// WithFields 添加多个字段
	WithFields(fields ...Field) Logger

	// SetLevel 设置日志级别
	SetLevel(level LogLevel)
	// SetOutput 设置日志输出目标
	SetOutput(w io.Writer)
}

// Option 日志配置选项函数
type Option func(*LogConfig)

// LogConfig 日志配置
type LogConfig struct {
	Level  LogLevel
	Output io.Writer
}

// WithLevel 设置日志级别选项
func WithLevel(level LogLevel) Option {
	return func(cfg *LogConfig) {
		cfg.Level = level
	}
}

// WithOutput 设置日志输出选项
func WithOutput(w io.Writer) Option {
	return func(cfg *LogConfig) {
		cfg.Output = w
	}
}

func defaultConfig() *LogConfig {
	return &LogConfig{Level: InfoLevel}
}

// ParseLevel 将字符串转换为日志级别，无法识别时返回 InfoLevel
func ParseLevel(s string) LogLevel {
	switch s {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "disabled", "off":
		return Disabled
	default:
		return InfoLevel
	}
}

// String 创建字符串类型的日志字段
func String(key string, value string) Field {
	return Field{Key: key, Value: value}
}

// Int 创建整数类型的日志字段
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool 创建布尔类型的日志字段
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration 创建时间间隔类型的日志字段
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// FieldError 创建错误类型的日志字段
func FieldError(err error) Field {
	return Field{Key: "error", Value: err}
}

// SQL 编译出的语句
func SQL(sql string) Field {
	return Field{Key: "sql", Value: sql}
}

// Args 绑定参数，按数组输出
func Args(args []any) Field {
	return Field{Key: "args", Value: args}
}

// 全局默认日志实例，在 zerolog.go 的 init 中初始化
var defaultLogger Logger

// GetDefaultLogger 获取默认日志实例
func GetDefaultLogger() Logger {
	return defaultLogger
}

// SetDefaultLogger 设置默认日志实例
func SetDefaultLogger(logger Logger) {
	defaultLogger = logger
}
