package mesh

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// config collects the options a Simulate caller may set via functional
// options (WithX), separate from ApplicationDescriptor because these are
// ambient/observability knobs rather than part of the problem instance.
type config struct {
	ctx            context.Context
	boundsChecked  bool
	logLevel       Level
	causalLog      bool
	metricsReg     prometheus.Registerer
	tracerProvider trace.TracerProvider
}

func defaultConfig() *config {
	return &config{
		ctx:      context.Background(),
		logLevel: LevelError,
	}
}

// Option configures a Simulate call. See WithContext, WithBoundsChecking,
// WithLogLevel, WithCausalLog, WithMetricsRegisterer and WithTracerProvider.
type Option func(*config)

// WithContext makes the simulation cancellable: every node driver and the
// aggregator exit at their next channel suspension point once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

// WithBoundsChecking routes every transition call through a Window that
// panics if the transition reads outside Chebyshev distance 1 of the cell
// it was asked to compute. It requires ApplicationDescriptor.WindowTransition
// to be set. Intended for development and tests, not production hot loops.
func WithBoundsChecking(enabled bool) Option {
	return func(c *config) { c.boundsChecked = enabled }
}

// WithLogLevel sets the per-run log verbosity (default LevelError).
func WithLogLevel(level Level) Option {
	return func(c *config) { c.logLevel = level }
}

// WithCausalLog enables per-node vector-clock event logging via GoVector,
// for debugging exchange ordering. It is purely observational.
func WithCausalLog(enabled bool) Option {
	return func(c *config) { c.causalLog = enabled }
}

// WithMetricsRegisterer registers this run's Prometheus collectors against
// reg instead of leaving metrics unregistered. Pass prometheus.DefaultRegisterer
// to expose them on the process's default /metrics endpoint.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) { c.metricsReg = reg }
}

// WithTracerProvider sets the OpenTelemetry TracerProvider spans are
// started against. Without it, spans are no-ops.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.tracerProvider = tp }
}
