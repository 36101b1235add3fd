package mylog

import (
	"context"
	"log/slog"
	"naapi/app/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTelegramRecord(t *testing.T) {
	tests := []struct {
		name  string
		attrs []slog.Attr
		want  bool
	}{
		{name: "no attrs", want: false},
		{name: "flag set", attrs: []slog.Attr{slog.Bool(TelegramAttr, true)}, want: true},
		{name: "flag false", attrs: []slog.Attr{slog.Bool(TelegramAttr, false)}, want: false},
		{name: "string value", attrs: []slog.Attr{slog.String(TelegramAttr, "true")}, want: false},
		{name: "among others", attrs: []slog.Attr{slog.String("email", "a@b.c"), slog.Bool(TelegramAttr, true)}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := slog.NewRecord(time.Now(), slog.LevelInfo, "message", 0)
			r.AddAttrs(tt.attrs...)

			assert.Equal(t, tt.want, isTelegramRecord(context.Background(), r))
		})
	}
}

func TestInit(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})

	t.Run("console only", func(t *testing.T) {
		cfg := &config.Config{ServiceName: "naapi"}

		require.NoError(t, Init(cfg, nil))
		assert.NotSame(t, previous, slog.Default())
	})

	t.Run("telegram without channel", func(t *testing.T) {
		cfg := &config.Config{ServiceName: "naapi"}
		cfg.Log.Telegram.Token = "123:abc"

		err := Init(cfg, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "username")
	})
}
