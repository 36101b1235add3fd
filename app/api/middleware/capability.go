package middleware

import (
	"naapi/app/dto"
	"naapi/app/service/auth"
	"net/http"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/oops"
)

// RequireCapability runs after Guard and rejects users lacking capability.
func RequireCapability(authService *auth.Service, capability dto.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usr := authService.ExtractFromCtx(c.UserContext())
		if !authService.Can(usr, capability) {
			return oops.
				With("status_code", http.StatusForbidden).
				Public("Insufficient permissions").
				Errorf("missing capability %s", capability)
		}

		return c.Next()
	}
}

func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}

		return fiber.ErrUpgradeRequired
	}
}
