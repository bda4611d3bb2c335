package accesslog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fyerfyer/fyer-lookup/logger"
	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/fyerfyer/fyer-lookup/query"
)

type MiddlewareBuilder struct {
	logger  logger.Logger
	logArgs bool
}

func NewMiddlewareBuilder() *MiddlewareBuilder {
	return &MiddlewareBuilder{
		logger: logger.GetDefaultLogger(),
	}
}

func (m *MiddlewareBuilder) SetLogger(l logger.Logger) *MiddlewareBuilder {
	m.logger = l
	return m
}

// LogArgs 是否记录绑定参数，参数可能包含敏感数据，默认不记录
func (m *MiddlewareBuilder) LogArgs(enabled bool) *MiddlewareBuilder {
	m.logArgs = enabled
	return m
}

func (m *MiddlewareBuilder) Build() query.Middleware {
	return func(next query.Handler) query.Handler {
		return query.HandlerFunc(func(ctx context.Context, cc *query.CompileContext) (*query.CompileResult, error) {
			start := time.Now()
			res, err := next.Compile(ctx, cc)

			l := m.logger.WithFields(
				logger.String("id", cc.ID),
				logger.String("dialect", cc.Dialect.Name()),
				logger.String("filters", paths(cc.Filters)),
				logger.Duration("duration", time.Since(start)),
			)
			switch {
			case errors.Is(err, lookup.ErrEmptyResultSet):
				l.Info("compile skipped", logger.Bool("empty_result", true))
			case err != nil:
				l.Error("compile failed", logger.FieldError(err))
			default:
				fields := []logger.Field{
					logger.SQL(res.Query.SQL),
					logger.Int("params", len(res.Query.Args)),
				}
				if m.logArgs {
					fields = append(fields, logger.Args(res.Query.Args))
				}
				l.Debug("compiled", fields...)
			}
			return res, err
		})
	}
}

func paths(filters []query.Filter) string {
	ps := make([]string, len(filters))
	for i, f := range filters {
		ps[i] = f.Path
		if ps[i] == "" {
			ps[i] = "exact"
		}
	}
	return strings.Join(ps, ",")
}
