package opentracing

import (
	"context"
	"errors"

	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/fyerfyer/fyer-lookup/query"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type MiddlewareBuilder struct {
	Tracer trace.Tracer
}

var defaultInstrumentationName = "fyer-lookup"

func (m *MiddlewareBuilder) Build() query.Middleware {
	if m.Tracer == nil {
		m.Tracer = otel.GetTracerProvider().Tracer(defaultInstrumentationName)
	}

	return func(next query.Handler) query.Handler {
		return query.HandlerFunc(func(ctx context.Context, cc *query.CompileContext) (*query.CompileResult, error) {
			ctx, span := m.Tracer.Start(ctx, "lookup.compile")
			defer span.End()

			span.SetAttributes(attribute.String("compile.id", cc.ID))
			span.SetAttributes(attribute.String("db.system", cc.Dialect.Name()))
			span.SetAttributes(attribute.Int("lookup.filters", len(cc.Filters)))
			span.SetAttributes(attribute.String("component", "lookup"))

			res, err := next.Compile(ctx, cc)
			switch {
			case errors.Is(err, lookup.ErrEmptyResultSet):
				span.SetAttributes(attribute.Bool("lookup.empty_result", true))
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			default:
				span.SetAttributes(attribute.String("db.statement", res.Query.SQL))
			}
			return res, err
		})
	}
}
