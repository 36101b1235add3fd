package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"naapi/app/api/controller"
	"naapi/app/api/middleware"
	"naapi/app/api/routes"
	"naapi/app/client/naapi"
	"naapi/app/config"
	"naapi/app/dto"
	"naapi/app/service/alert"
	"naapi/app/service/auth"
	"naapi/app/service/limits"
	"naapi/app/service/pubsub"
	"naapi/app/service/session"
	"naapi/app/service/tokenstore"
	"naapi/app/service/websocket"
	"naapi/app/util/mylog"
	"naapi/app/util/telemetry"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

var configPath string

var Server = &cobra.Command{
	Use:   "server",
	Short: "Run the console gateway",
	Run:   runServer,
}

func init() {
	Server.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config yaml file")
}

func runServer(_ *cobra.Command, _ []string) {
	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	di := do.New()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config",
			slog.Any("error", err),
		)
		os.Exit(1) //nolint:gocritic
		return
	}
	do.ProvideValue(di, cfg)

	if err = telemetry.InitSentry(cfg); err != nil {
		slog.Error("Failed to init sentry",
			slog.Any("error", err),
		)
		os.Exit(1)
		return
	}
	defer sentry.Flush(3 * time.Second)

	tel, err := telemetry.Init(cfg)
	if err != nil {
		slog.Error("Failed to init telemetry",
			slog.Any("error", err),
		)
		os.Exit(1)
		return
	}
	defer tel.Shutdown(appCtx)
	do.ProvideValue(di, tel)

	if err = mylog.Init(cfg, tel); err != nil {
		slog.Error("Failed to init logging",
			slog.Any("error", err),
		)
		os.Exit(1)
		return
	}
	slog.InfoContext(appCtx, "Starting service...",
		slog.Bool(mylog.TelegramAttr, true),
	)

	metrics, err := telemetry.NewMetrics(cfg, tel.Meter)
	if err != nil {
		slog.Error("Failed to init metrics",
			slog.Any("error", err),
		)
		os.Exit(1)
		return
	}
	do.ProvideValue(di, metrics)

	tracing := telemetry.NewTracing(cfg, tel.Tracer)
	do.ProvideValue(di, tracing)

	do.Provide(di, naapi.NewClient)
	do.Provide(di, tokenstore.New)
	do.Provide(di, pubsub.New)
	do.Provide(di, limits.New)
	do.Provide(di, auth.New)
	do.Provide(di, session.New)
	do.Provide(di, websocket.New)
	do.Provide(di, alert.New)

	if err = do.MustInvoke[*naapi.Client](di).WaitHealthy(appCtx); err != nil {
		slog.Error("NAAPI backend is unreachable",
			slog.String("base_url", cfg.Backend.BaseURL),
			slog.Any("error", err),
		)
		os.Exit(1)
		return
	}

	sessionService := do.MustInvoke[*session.Service](di)
	unsubscribe := sessionService.SubscribeUser(func(usr *dto.User) {
		if usr == nil {
			slog.Info("Session is anonymous")
			return
		}

		slog.Info("Session user loaded",
			slog.String("email", usr.Email),
			slog.Any("roles", usr.Roles()),
		)
	})
	defer unsubscribe()

	do.MustInvoke[*alert.Service](di)
	sessionService.Bootstrap(appCtx)

	server := controller.NewServer(di)

	app := fiber.New(fiber.Config{
		AppName:               "NAAPI Console",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
		ReadTimeout:           time.Second * 60,
		WriteTimeout:          time.Second * 60,
		DisableKeepalive:      false,
	})

	middleware.FiberMiddleware(app, di)

	opts := routes.Options{
		LoginPath:   cfg.Server.LoginPath,
		Guard:       middleware.NewGuard(di),
		AuthService: do.MustInvoke[*auth.Service](di),
	}
	routes.PublicRoutes(app, opts, server)
	routes.WSRoutes(app, opts.Guard, controller.NewSessionStream(di))
	routes.ProtectedRoutes(app, opts, server)
	routes.NotFoundRoute(app)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		slog.Info("Shutting down server...")

		_ = app.Shutdown()
		cancel()
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HttpPort)
	slog.Info(fmt.Sprintf("Server started on %s", addr))
	if err := app.Listen(addr); err != nil {
		slog.Warn("Server stopped",
			slog.Any("error", err),
		)
	}

	slog.Info("Waiting for services to finish...")
	_ = di.Shutdown()
}
