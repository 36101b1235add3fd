package controller

import (
	"naapi/app/api"
	"naapi/app/api/mapper"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/oops"
)

func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if !s.limitsService.AllowIpRpm(ctx, "login", s.cfg.Limits.LoginRpm) {
		return oops.
			With("status_code", http.StatusTooManyRequests).
			Public("Too many requests").
			New("Too many requests")
	}

	var req api.LoginRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	if !s.sessionService.Login(ctx, req.Email, req.Password) {
		return c.Status(http.StatusUnauthorized).JSON(api.LoginResponse{Success: false})
	}

	return c.JSON(api.LoginResponse{Success: true})
}

func (s *Server) Logout(c *fiber.Ctx) error {
	s.sessionService.Logout()

	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) sessionState() api.SessionState {
	return api.SessionState{
		Initializing:  s.sessionService.IsInitializing(),
		Authenticated: s.sessionService.IsLoggedIn(),
		User:          mapper.MapUserPtr(s.sessionService.CurrentUser()),
	}
}

func (s *Server) GetSession(c *fiber.Ctx) error {
	return c.JSON(s.sessionState())
}

// LoginView is where the guard sends anonymous visitors.
func (s *Server) LoginView(c *fiber.Ctx) error {
	return c.JSON(s.sessionState())
}
