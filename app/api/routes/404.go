package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/oops"
)

// NotFoundRoute answers everything no other route matched, in the common error shape.
func NotFoundRoute(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		return oops.
			With("status_code", http.StatusNotFound).
			Public("Route not found").
			Errorf("no route for %s %s", c.Method(), c.Path())
	})
}
