package controller

import (
	"context"
	"naapi/app/api"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.szostok.io/version"
)

const backendProbeTimeout = 3 * time.Second

// HealthCheck reports the build, the session state and whether the backend answers.
// It stays 200 while the backend is down so the console can still render the banner.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	info := version.Get()

	ctx, cancel := context.WithTimeout(c.UserContext(), backendProbeTimeout)
	defer cancel()

	return c.JSON(api.Health{
		Version:          info.Version,
		BuildDate:        info.BuildDate,
		BackendReachable: s.client.HealthCheck(ctx) == nil,
		Session:          s.sessionState(),
	})
}
