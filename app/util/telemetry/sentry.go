package telemetry

import (
	"naapi/app/config"

	"github.com/getsentry/sentry-go"
	"github.com/rofleksey/meg"
	"github.com/samber/oops"
	"go.szostok.io/version"
)

func InitSentry(cfg *config.Config) error {
	if cfg.Sentry.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      meg.Environment,
		Release:          cfg.ServiceName + "@" + version.Get().Version,
		AttachStacktrace: true,
	}); err != nil {
		return oops.Errorf("sentry.Init: %w", err)
	}

	return nil
}
