package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const handlerSpanPrefix = "httpapi.Handler."

var tracer = otel.Tracer("github.com/thedyrex/pickems/internal/interfaces/httpapi")

// startSpan opens a child span for handler work. Untraced requests such as
// /healthz and non-handler names get a no-op span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !tracesHandler(ctx, name) {
		return ctx, noop.Span{}
	}
	return tracer.Start(ctx, name)
}

func tracesHandler(ctx context.Context, name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && trace.SpanContextFromContext(ctx).IsValid()
}
