package routes

import (
	"naapi/app/api/controller"
	"naapi/app/api/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// WSRoutes exposes the live session stream to the console.
func WSRoutes(app *fiber.App, guard fiber.Handler, stream *controller.SessionStream) {
	app.Get("/ws/session", guard, middleware.WebSocketUpgrade(), websocket.New(stream.Serve, websocket.Config{
		EnableCompression: true,
	}))
}
