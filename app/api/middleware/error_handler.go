// nolint: wrapcheck
package middleware

import (
	"errors"
	"log/slog"
	"naapi/app/api"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/oops"
)

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	statusCode := http.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		statusCode = fiberErr.Code
	}

	if oopsErr, ok := oops.AsOops(err); ok {
		statusCodeOpt := oopsErr.Context()["status_code"]
		if statusCodeOpt != nil {
			statusCode, _ = statusCodeOpt.(int)
		}
	}

	if statusCode >= http.StatusInternalServerError && statusCode != http.StatusServiceUnavailable {
		sentry.CaptureException(err)
		slog.ErrorContext(ctx.UserContext(), "Internal Server Error", slog.Any("error", err))
	}

	msg := http.StatusText(statusCode)
	if fiberErr != nil {
		msg = fiberErr.Message
	}

	general := api.General{
		Error:      true,
		Msg:        oops.GetPublic(err, msg),
		StatusCode: statusCode,
	}

	ctx.Response().Header.Set("Content-Type", "application/json")
	ctx.Status(general.StatusCode)
	return ctx.JSON(general)
}
