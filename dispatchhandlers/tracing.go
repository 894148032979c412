package dispatchhandlers

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hashmux/hashmux/dispatch"
)

// defaultTracerName is the tracer name used when none is configured.
const defaultTracerName = "hashmux"

// TracingConfig configures the OpenTelemetry tracing middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "hashmux").
	TracerName string

	// Filter determines which requests to trace. Return true to trace
	// the request, false to skip. When nil, all requests are traced.
	Filter func(ctx *dispatch.Context) bool

	// AttributeExtractor extracts custom attributes from the context,
	// called for each traced request.
	AttributeExtractor func(ctx *dispatch.Context) []attribute.KeyValue
}

// TracingOption configures the OpenTelemetry tracing middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTraceFilter sets a filter function for requests.
func WithTraceFilter(filter func(ctx *dispatch.Context) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// WithTraceAttributes sets a custom attribute extractor.
func WithTraceAttributes(extractor func(ctx *dispatch.Context) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

// TracingMiddleware returns a middleware that opens one span per dispatched
// request, records the handler's status or error on it, and injects the
// span context into the request for downstream calls.
//
// The tracer comes from the global OpenTelemetry tracer provider; configure
// the provider in main() before serving traffic.
func TracingMiddleware(opts ...TracingOption) dispatch.Middleware {
	config := TracingConfig{
		TracerName: defaultTracerName,
	}
	for _, opt := range opts {
		opt(&config)
	}

	tracer := otel.Tracer(config.TracerName)

	filter := config.Filter
	extractor := config.AttributeExtractor

	return func(next dispatch.Handler) dispatch.Handler {
		return func(ctx *dispatch.Context) (*dispatch.Response, error) {
			if filter != nil && !filter(ctx) {
				return next(ctx)
			}

			attrs := []attribute.KeyValue{
				attribute.String("http.request.method", ctx.Request.Method),
				attribute.String("url.path", ctx.URL.Path),
			}
			if extractor != nil {
				attrs = append(attrs, extractor(ctx)...)
			}

			spanCtx, span := tracer.Start(
				ctx.Request.Context(),
				ctx.Request.Method+" "+ctx.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			ctx.Request = ctx.Request.WithContext(spanCtx)

			resp, err := next(ctx)

			switch {
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case resp != nil:
				status := resp.StatusCode
				if status == 0 {
					status = http.StatusOK
				}
				span.SetAttributes(attribute.Int("http.response.status_code", status))
			}

			return resp, err
		}
	}
}
