package telemetry

import (
	"naapi/app/config"

	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// NewNoop returns tracing and metrics that discard everything, for tests and
// one-shot CLI commands.
func NewNoop(cfg *config.Config) (*Tracing, *Metrics) {
	tracing := NewTracing(cfg, tracenoop.NewTracerProvider().Tracer(cfg.ServiceName))

	metrics, err := NewMetrics(cfg, metricnoop.NewMeterProvider().Meter(cfg.ServiceName))
	if err != nil {
		panic(err)
	}

	return tracing, metrics
}
