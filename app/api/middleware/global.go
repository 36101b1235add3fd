package middleware

import (
	"context"
	"log/slog"
	"naapi/app/config"
	"naapi/app/util"
	"naapi/app/util/telemetry"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/elliotchance/pie/v2"
	sentryotel "github.com/getsentry/sentry-go/otel"
	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rofleksey/meg"
	"github.com/samber/do"
	slogfiber "github.com/samber/slog-fiber"
)

// console dev servers
var devOrigins = []string{
	"http://localhost:4200", "http://127.0.0.1:4200",
	"http://localhost:5173", "http://127.0.0.1:5173",
}

func FiberMiddleware(app *fiber.App, di *do.Injector) {
	cfg := do.MustInvoke[*config.Config](di)
	tel := do.MustInvoke[*telemetry.Telemetry](di)

	app.Use(corsMiddleware(cfg))

	app.Use(otelfiber.Middleware(
		otelfiber.WithMeterProvider(tel.MeterProvider),
		otelfiber.WithTracerProvider(tel.TracerProvider),
		otelfiber.WithPropagators(sentryotel.NewSentryPropagator()),
		otelfiber.WithCollectClientIP(true),
		otelfiber.WithNext(func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/ws/")
		}),
	))

	app.Use(clientIP)
	app.Use(noStore)
	app.Use(accessLog(cfg.Server.LoginPath))
	app.Use(recoverMiddleware())
}

func corsMiddleware(cfg *config.Config) fiber.Handler {
	origins := append([]string{cfg.BaseURL}, devOrigins...)

	return cors.New(cors.Config{
		AllowHeaders:     "Origin, Content-Type, Accept, Sentry-Trace, Baggage",
		AllowMethods:     "POST, GET, OPTIONS, DELETE, PUT, PATCH, HEAD",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Disposition",
		AllowOriginsFunc: func(origin string) bool {
			return pie.Contains(origins, origin)
		},
	})
}

func clientIP(c *fiber.Ctx) error {
	c.SetUserContext(context.WithValue(c.UserContext(), util.IpContextKey, c.IP()))

	return c.Next()
}

// noStore keeps student records out of browser and proxy caches.
func noStore(c *fiber.Ctx) error {
	err := c.Next()
	c.Set(fiber.HeaderCacheControl, "no-store")

	return err
}

func accessLog(loginPath string) fiber.Handler {
	quiet := []string{"/v1/healthz", "/v1/session", loginPath}

	return slogfiber.NewWithConfig(slog.Default(), slogfiber.Config{
		Filters: []slogfiber.Filter{
			func(c *fiber.Ctx) bool {
				return !pie.Contains(quiet, c.Path())
			},
			// successful reads are noise, mutations and failures are not
			func(c *fiber.Ctx) bool {
				status := c.Response().StatusCode()
				read := c.Method() == fiber.MethodGet || c.Method() == fiber.MethodHead

				return !read || status >= http.StatusBadRequest
			},
		},
		WithTraceID: true,
	})
}

func recoverMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			slog.ErrorContext(c.UserContext(), "Panic",
				slog.Any("error", e),
				slog.String("path", c.Path()),
				slog.String("stack", meg.TrimSuffixToNRunes(string(debug.Stack()), 2048)),
			)
		},
	})
}
