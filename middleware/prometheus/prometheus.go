package prometheus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/fyerfyer/fyer-lookup/query"
	"github.com/prometheus/client_golang/prometheus"
)

type MiddlewareBuilder struct {
	NameSpace string
	Name      string
	SubSystem string
	Help      string
	// Registerer 为 nil 时不注册，由调用方自行处理
	Registerer prometheus.Registerer

	once  sync.Once
	vec   *prometheus.SummaryVec
	empty *prometheus.CounterVec
}

const (
	statusOK    = "ok"
	statusEmpty = "empty"
	statusError = "error"
)

// Build 可以多次调用，指标只创建和注册一次，所有返回的中间件共享同一组指标
func (m *MiddlewareBuilder) Build() query.Middleware {
	m.once.Do(m.init)

	return func(next query.Handler) query.Handler {
		return query.HandlerFunc(func(ctx context.Context, cc *query.CompileContext) (*query.CompileResult, error) {
			startTime := time.Now()
			res, err := next.Compile(ctx, cc)

			status := statusOK
			switch {
			case errors.Is(err, lookup.ErrEmptyResultSet):
				status = statusEmpty
				m.empty.WithLabelValues(cc.Dialect.Name()).Inc()
			case err != nil:
				status = statusError
			}
			duration := time.Since(startTime).Microseconds()
			m.vec.WithLabelValues(cc.Dialect.Name(), status).Observe(float64(duration))
			return res, err
		})
	}
}

func (m *MiddlewareBuilder) init() {
	m.vec = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name:      m.Name,
		Help:      m.Help,
		Namespace: m.NameSpace,
		Subsystem: m.SubSystem,
		Objectives: map[float64]float64{
			0.5:   0.05,
			0.9:   0.01,
			0.99:  0.001,
			0.999: 0.0001,
		},
	}, []string{"dialect", "status"})

	m.empty = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      m.Name + "_empty_result_total",
		Help:      "Number of compile passes short-circuited by an always-false filter.",
		Namespace: m.NameSpace,
		Subsystem: m.SubSystem,
	}, []string{"dialect"})

	if m.Registerer != nil {
		m.Registerer.MustRegister(m.vec, m.empty)
	}
}
