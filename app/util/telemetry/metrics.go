package telemetry

import (
	"context"
	"naapi/app/config"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	logins        metric.Int64Counter
	revalidations metric.Int64Counter
	redirects     metric.Int64Counter
}

func NewMetrics(cfg *config.Config, meter metric.Meter) (*Metrics, error) {
	logins, err := meter.Int64Counter(cfg.ServiceName+".session.logins",
		metric.WithDescription("Login attempts by outcome"),
	)
	if err != nil {
		return nil, oops.Errorf("failed to create logins counter: %w", err)
	}

	revalidations, err := meter.Int64Counter(cfg.ServiceName+".session.revalidations",
		metric.WithDescription("Session revalidations by outcome"),
	)
	if err != nil {
		return nil, oops.Errorf("failed to create revalidations counter: %w", err)
	}

	redirects, err := meter.Int64Counter(cfg.ServiceName+".guard.redirects",
		metric.WithDescription("Protected navigations redirected to the login view"),
	)
	if err != nil {
		return nil, oops.Errorf("failed to create redirects counter: %w", err)
	}

	return &Metrics{
		logins:        logins,
		revalidations: revalidations,
		redirects:     redirects,
	}, nil
}

func (m *Metrics) Login(ctx context.Context, success bool) {
	m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}

func (m *Metrics) Revalidation(ctx context.Context, success, initial bool) {
	m.revalidations.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("success", success),
		attribute.Bool("initial", initial),
	))
}

func (m *Metrics) GuardRedirect(ctx context.Context, path string) {
	m.redirects.Add(ctx, 1, metric.WithAttributes(attribute.String("path", path)))
}
