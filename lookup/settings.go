package lookup

import (
	"sync/atomic"
	"time"

	"github.com/fyerfyer/fyer-lookup/logger"
)

// Settings 进程级配置，编译查询条件时读取
type Settings struct {
	// UseTZ 为 true 时日期时间按 UTC 存储，提取日期部分前转换到 TimeZone
	UseTZ    bool
	TimeZone *time.Location
	Registry *Registry
	Logger   logger.Logger
}

type SettingsOption func(*Settings)

func WithUseTZ(useTZ bool) SettingsOption {
	return func(s *Settings) {
		s.UseTZ = useTZ
	}
}

func WithTimeZone(loc *time.Location) SettingsOption {
	return func(s *Settings) {
		s.TimeZone = loc
	}
}

// WithRegistry 使用指定的注册表，注册表不会再被写入默认操作符
func WithRegistry(r *Registry) SettingsOption {
	return func(s *Settings) {
		s.Registry = r
	}
}

func WithLogger(l logger.Logger) SettingsOption {
	return func(s *Settings) {
		s.Logger = l
	}
}

var current atomic.Pointer[Settings]

// Init 构建并安装新的配置，未指定注册表时创建一个带默认操作符的注册表
func Init(opts ...SettingsOption) *Settings {
	s := &Settings{
		TimeZone: time.UTC,
		Logger:   logger.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.TimeZone == nil {
		s.TimeZone = time.UTC
	}
	if s.Registry == nil {
		s.Registry = NewRegistry(WithRegistryLogger(s.Logger))
		RegisterDefaults(s.Registry)
	}
	current.Store(s)
	return s
}

// CurrentSettings 返回当前生效的配置，返回值不应被修改
func CurrentSettings() *Settings {
	return current.Load()
}

// Reset 恢复默认配置，主要用于测试
func Reset() {
	Init()
}

// DefaultRegistry 当前配置中的注册表
func DefaultRegistry() *Registry {
	return CurrentSettings().Registry
}

// TimeZoneName 启用时区时返回当前时区名
func (s *Settings) TimeZoneName() string {
	if !s.UseTZ || s.TimeZone == nil {
		return ""
	}
	return s.TimeZone.String()
}

func init() {
	Init()
}
