package mesh

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the OpenTelemetry instrumentation scope for this package.
// With no TracerProvider configured (the default), otel.Tracer returns a
// no-op tracer, so tracing costs nothing unless a caller opts in via
// WithTracerProvider.
const tracerName = "github.com/dashaylan/meshrelax/mesh"

func tracerFor(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		return otel.Tracer(tracerName)
	}
	return tp.Tracer(tracerName)
}

// startRelaxStepSpan opens the mesh.relax.step span a node's relaxation
// step runs inside, tagged with the node coordinate and run ID so a trace
// backend can break down latency per node.
func startRelaxStepSpan(ctx context.Context, tr trace.Tracer, runID string, ni, nj int) (context.Context, trace.Span) {
	return tr.Start(ctx, "mesh.relax.step", trace.WithAttributes(
		attribute.String("meshrelax.run_id", runID),
		attribute.Int("meshrelax.node.ni", ni),
		attribute.Int("meshrelax.node.nj", nj),
	))
}

// startExchangePhaseSpan opens a child span for one phase of one exchange.
func startExchangePhaseSpan(ctx context.Context, tr trace.Tracer, phase int, parity int) (context.Context, trace.Span) {
	return tr.Start(ctx, "mesh.exchange.phase", trace.WithAttributes(
		attribute.Int("meshrelax.phase", phase),
		attribute.Int("meshrelax.parity", parity),
	))
}
