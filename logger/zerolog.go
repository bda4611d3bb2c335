package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// zerologLogger 使用 zerolog 实现的日志记录器
type zerologLogger struct {
	mu    sync.RWMutex
	zlog  zerolog.Logger
	level LogLevel
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	defaultLogger = New()
}

// New 创建一个新的 zerolog 日志记录器
func New(opts ...Option) Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	zlog := zerolog.New(output).With().Timestamp().Logger()
	setZerologLevel(&zlog, cfg.Level)

	return &zerologLogger{
		zlog:  zlog,
		level: cfg.Level,
	}
}

// Nop 返回一个丢弃所有输出的日志记录器，测试中使用
func Nop() Logger {
	return &zerologLogger{
		zlog:  zerolog.Nop(),
		level: Disabled,
	}
}

func (l *zerologLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields)
}

func (l *zerologLogger) log(level LogLevel, msg string, fields []Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if level < l.level {
		return
	}

	var event *zerolog.Event
	switch level {
	case DebugLevel:
		event = l.zlog.Debug()
	case WarnLevel:
		event = l.zlog.Warn()
	case ErrorLevel:
		event = l.zlog.Error()
	default:
		event = l.zlog.Info()
	}

	for _, field := range fields {
		addFieldToEvent(event, field)
	}
	event.Msg(msg)
}

// WithField 添加单个字段
func (l *zerologLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(Field{Key: key, Value: value})
}

// WithFields 添加多个字段
func (l *zerologLogger) WithFields(fields ...Field) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ctx := l.zlog.With()
	for _, field := range fields {
		ctx = addFieldToContext(ctx, field)
	}

	return &zerologLogger{
		zlog:  ctx.Logger(),
		level: l.level,
	}
}

// SetLevel 设置日志级别
func (l *zerologLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	setZerologLevel(&l.zlog, level)
}

// SetOutput 设置日志输出目标
func (l *zerologLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zlog = l.zlog.Output(w)
}

// setZerologLevel 将内部日志级别转换为 zerolog 级别
func setZerologLevel(zlog *zerolog.Logger, level LogLevel) {
	var zerologLevel zerolog.Level
	switch level {
	case DebugLevel:
		zerologLevel = zerolog.DebugLevel
	case InfoLevel:
		zerologLevel = zerolog.InfoLevel
	case WarnLevel:
		zerologLevel = zerolog.WarnLevel
	case ErrorLevel:
		zerologLevel = zerolog.ErrorLevel
	case Disabled:
		zerologLevel = zerolog.Disabled
	default:
		zerologLevel = zerolog.InfoLevel
	}

	*zlog = zlog.Level(zerologLevel)
}

// addFieldToEvent 将字段添加到日志事件
func addFieldToEvent(event *zerolog.Event, field Field) {
	switch v := field.Value.(type) {
	case string:
		event.Str(field.Key, v)
	case int:
		event.Int(field.Key, v)
	case bool:
		event.Bool(field.Key, v)
	case time.Duration:
		event.Dur(field.Key, v)
	case error:
		event.Err(v)
	case []any:
		event.Array(field.Key, bindArgs(v))
	default:
		event.Interface(field.Key, v)
	}
}

func addFieldToContext(ctx zerolog.Context, field Field) zerolog.Context {
	switch v := field.Value.(type) {
	case string:
		return ctx.Str(field.Key, v)
	case int:
		return ctx.Int(field.Key, v)
	case bool:
		return ctx.Bool(field.Key, v)
	case time.Duration:
		return ctx.Dur(field.Key, v)
	case error:
		return ctx.Err(v)
	case []any:
		return ctx.Array(field.Key, bindArgs(v))
	default:
		return ctx.Interface(field.Key, v)
	}
}

// bindArgs 绑定参数数组，时间值按 RFC3339 输出
type bindArgs []any

func (a bindArgs) MarshalZerologArray(arr *zerolog.Array) {
	for _, v := range a {
		switch x := v.(type) {
		case string:
			arr.Str(x)
		case int:
			arr.Int(x)
		case int64:
			arr.Int64(x)
		case float64:
			arr.Float64(x)
		case bool:
			arr.Bool(x)
		case time.Time:
			arr.Time(x)
		case []byte:
			arr.Str(string(x))
		default:
			arr.Interface(x)
		}
	}
}
