package opentracing

import (
	"context"
	"testing"

	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/fyerfyer/fyer-lookup/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestMiddlewareBuilder_Build(t *testing.T) {
	testCases := []struct {
		name       string
		filter     query.Filter
		wantStatus codes.Code
		wantAttrs  map[attribute.Key]attribute.Value
	}{
		{
			name:       "compiled",
			filter:     query.Where(lookup.Col("age"), "gt", 18),
			wantStatus: codes.Unset,
			wantAttrs: map[attribute.Key]attribute.Value{
				"db.system":      attribute.StringValue("postgresql"),
				"lookup.filters": attribute.IntValue(1),
				"db.statement":   attribute.StringValue(`"age" > $1`),
			},
		},
		{
			name:       "empty result",
			filter:     query.Where(lookup.Col("age"), "in", []int{}),
			wantStatus: codes.Unset,
			wantAttrs: map[attribute.Key]attribute.Value{
				"lookup.empty_result": attribute.BoolValue(true),
			},
		},
		{
			name:       "error",
			filter:     query.Where(lookup.Col("age"), "bogus", 1),
			wantStatus: codes.Error,
			wantAttrs: map[attribute.Key]attribute.Value{
				"component": attribute.StringValue("lookup"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sr := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
			defer func() { _ = tp.Shutdown(context.Background()) }()

			m := &MiddlewareBuilder{Tracer: tp.Tracer("test")}
			b := query.NewBuilder(lookup.Postgresql{}, query.WithMiddlewares(m.Build()))
			_, _ = b.Build(context.Background(), tc.filter)

			spans := sr.Ended()
			require.Len(t, spans, 1)
			span := spans[0]
			assert.Equal(t, "lookup.compile", span.Name())
			assert.Equal(t, tc.wantStatus, span.Status().Code)

			attrs := make(map[attribute.Key]attribute.Value)
			for _, kv := range span.Attributes() {
				attrs[kv.Key] = kv.Value
			}
			assert.Len(t, attrs["compile.id"].AsString(), 36)
			for k, v := range tc.wantAttrs {
				assert.Equal(t, v, attrs[k], string(k))
			}
		})
	}
}

func TestMiddlewareBuilder_DefaultTracer(t *testing.T) {
	m := &MiddlewareBuilder{}
	m.Build()
	assert.NotNil(t, m.Tracer)
}
