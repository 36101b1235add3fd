package middleware

import (
	"context"
	"log/slog"
	"naapi/app/config"
	"naapi/app/dto"
	"naapi/app/service/session"
	"naapi/app/util"
	"naapi/app/util/telemetry"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
	slogfiber "github.com/samber/slog-fiber"
)

// SessionGate is the part of the session store the guard depends on.
type SessionGate interface {
	AwaitReady(ctx context.Context) error
	IsLoggedIn() bool
	CurrentUser() *dto.User
}

type GuardConfig struct {
	LoginPath string
	// MaxWait bounds how long a request waits for session bootstrap
	MaxWait time.Duration
	Metrics *telemetry.Metrics
}

func NewGuard(di *do.Injector) fiber.Handler {
	cfg := do.MustInvoke[*config.Config](di)

	return Guard(do.MustInvoke[*session.Service](di), GuardConfig{
		LoginPath: cfg.Server.LoginPath,
		MaxWait:   time.Duration(cfg.Server.GuardTimeout) * time.Second,
		Metrics:   do.MustInvoke[*telemetry.Metrics](di),
	})
}

// Guard holds protected requests until the session store is ready, then lets
// authenticated ones through and redirects the rest to the login view.
func Guard(gate SessionGate, guardCfg GuardConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if guardCfg.MaxWait > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, guardCfg.MaxWait)
			defer cancel()
		}

		if err := gate.AwaitReady(ctx); err != nil {
			return oops.
				With("status_code", http.StatusServiceUnavailable).
				Public("Session is still initializing").
				Errorf("guard wait aborted: %w", err)
		}

		if !gate.IsLoggedIn() {
			if guardCfg.Metrics != nil {
				guardCfg.Metrics.GuardRedirect(c.UserContext(), c.Path())
			}

			return c.Redirect(guardCfg.LoginPath, fiber.StatusSeeOther)
		}

		usr := gate.CurrentUser()
		if usr != nil {
			slogfiber.AddCustomAttributes(c, slog.String("user", usr.Email))
		}
		c.SetUserContext(context.WithValue(c.UserContext(), util.UserContextKey, usr))

		return c.Next()
	}
}
