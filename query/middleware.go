package query

import (
	"context"

	"github.com/fyerfyer/fyer-lookup/lookup"
)

// Handler 处理器接口定义
type Handler interface {
	Compile(ctx context.Context, cc *CompileContext) (*CompileResult, error)
}

// Middleware 中间件定义
type Middleware func(Handler) Handler

// HandlerFunc 用于将函数转换为 Handler 接口
type HandlerFunc func(ctx context.Context, cc *CompileContext) (*CompileResult, error)

func (h HandlerFunc) Compile(ctx context.Context, cc *CompileContext) (*CompileResult, error) {
	return h(ctx, cc)
}

// CompileContext 一次编译的上下文
type CompileContext struct {
	// ID 每次编译生成一个，便于日志和链路关联
	ID           string
	Dialect      lookup.Dialect
	Registry     *lookup.Registry
	TimeZoneName string
	Filters      []Filter
}

// CompileResult 编译结果
type CompileResult struct {
	Query *Query
}

// BuildChain 构建处理器调用链
func BuildChain(core Handler, ms []Middleware) Handler {
	h := core
	// 从后往前构建,保证最先添加的中间件最先执行
	for i := len(ms) - 1; i >= 0; i-- {
		h = ms[i](h)
	}
	return h
}

// coreHandler 调用链的最后一环，逐个构建查询条件并用 AND 连接
type coreHandler struct{}

func (coreHandler) Compile(_ context.Context, cc *CompileContext) (*CompileResult, error) {
	q, err := compileFilters(cc)
	if err != nil {
		return nil, err
	}
	return &CompileResult{Query: q}, nil
}
