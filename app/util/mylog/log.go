package mylog

import (
	"context"
	"log/slog"
	"naapi/app/config"
	"naapi/app/util/telemetry"
	"os"
	"time"

	"github.com/phsym/console-slog"
	"github.com/samber/oops"
	slogmulti "github.com/samber/slog-multi"
	slogtelegram "github.com/samber/slog-telegram/v2"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// TelegramAttr marks a record that should also reach the telegram chat.
const TelegramAttr = "telegram"

func newConsoleHandler() slog.Handler {
	return console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level:      slog.LevelDebug,
		TimeFormat: time.DateTime,
	})
}

// Preinit installs a console logger so that config and bootstrap errors are
// readable before Init runs.
func Preinit() {
	slog.SetDefault(slog.New(newConsoleHandler()))
}

func Init(cfg *config.Config, tel *telemetry.Telemetry) error {
	router := slogmulti.Router().Add(newConsoleHandler())

	if tel != nil && tel.Enabled {
		router = router.Add(otelslog.NewHandler(cfg.ServiceName,
			otelslog.WithLoggerProvider(tel.LoggerProvider),
		))
	}

	if cfg.Log.Telegram.Token != "" {
		if cfg.Log.Telegram.Username == "" {
			return oops.Errorf("telegram channel username is required when telegram token is set")
		}

		telegramHandler := slogtelegram.Option{
			Level:    slog.LevelInfo,
			Token:    cfg.Log.Telegram.Token,
			Username: cfg.Log.Telegram.Username,
		}.NewTelegramHandler()
		if telegramHandler == nil {
			return oops.Errorf("failed to connect telegram bot for %s", cfg.Log.Telegram.Username)
		}

		router = router.Add(telegramHandler, isTelegramRecord)
	}

	slog.SetDefault(slog.New(router.Handler()))

	return nil
}

func isTelegramRecord(_ context.Context, r slog.Record) bool {
	found := false

	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == TelegramAttr && attr.Value.Kind() == slog.KindBool && attr.Value.Bool() {
			found = true
			return false
		}

		return true
	})

	return found
}
