package telemetry

import (
	"context"
	"naapi/app/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Tracing struct {
	serviceName string
	tracer      trace.Tracer
}

func NewTracing(cfg *config.Config, tracer trace.Tracer) *Tracing {
	return &Tracing{
		serviceName: cfg.ServiceName,
		tracer:      tracer,
	}
}

func (t *Tracing) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name)
}

// StartServiceSpan names the span "<service>.<operation>".
func (t *Tracing) StartServiceSpan(ctx context.Context, service, operation string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, service+"."+operation, trace.WithAttributes(
		attribute.String("app.service", t.serviceName),
		attribute.String("app.component", service),
	))
}

func (t *Tracing) Error(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}

func (t *Tracing) Success(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}
