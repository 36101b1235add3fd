package controller

import (
	"naapi/app/api"
	"naapi/app/api/mapper"
	"naapi/app/dto"
	"net/http"

	"github.com/elliotchance/pie/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/oops"
)

func (s *Server) GetMyself(c *fiber.Ctx) error {
	usr := s.authService.ExtractFromCtx(c.UserContext())
	if usr == nil {
		return oops.
			With("status_code", http.StatusUnauthorized).
			Public("Profile is not loaded").
			New("no user in context")
	}

	return c.JSON(api.Myself{
		User:         mapper.MapUser(*usr),
		Capabilities: mapper.MapCapabilities(s.authService.Capabilities(usr)),
	})
}

func (s *Server) GetMyCapabilities(c *fiber.Ctx) error {
	usr := s.authService.ExtractFromCtx(c.UserContext())

	return c.JSON(mapper.MapCapabilities(s.authService.Capabilities(usr)))
}

// UpdateMyDetails relays the change, then reloads the session user.
func (s *Server) UpdateMyDetails(c *fiber.Ctx) error {
	var req dto.UserSelfUpdate
	if err := s.bind(c, &req); err != nil {
		return err
	}

	if _, err := s.client.UpdateMyDetails(c.UserContext(), req); err != nil {
		return oops.Errorf("UpdateMyDetails: %w", err)
	}

	s.sessionService.ValidateSessionAndLoadUser(c.UserContext(), false)

	return c.JSON(s.sessionState())
}

func (s *Server) UpdateMyPassword(c *fiber.Ctx) error {
	var req dto.UserPasswordUpdate
	if err := s.bind(c, &req); err != nil {
		return err
	}

	if err := s.client.UpdateMyPassword(c.UserContext(), req); err != nil {
		return oops.Errorf("UpdateMyPassword: %w", err)
	}

	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) ListUsers(c *fiber.Ctx) error {
	list, err := s.client.Users.List(c.UserContext(), nil)
	if err != nil {
		return oops.Errorf("Users.List: %w", err)
	}

	return c.JSON(pie.Map(list, mapper.MapUser))
}

func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req dto.UserInsert
	if err := s.bind(c, &req); err != nil {
		return err
	}

	usr, err := s.client.Users.Create(c.UserContext(), req)
	if err != nil {
		return oops.Errorf("Users.Create: %w", err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.MapUser(usr))
}

func (s *Server) EditUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UserUpdate
	if err = s.bind(c, &req); err != nil {
		return err
	}

	usr, err := s.client.Users.Update(c.UserContext(), id, req)
	if err != nil {
		return oops.Errorf("Users.Update: %w", err)
	}

	return c.JSON(mapper.MapUser(usr))
}

func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err = s.client.Users.Delete(c.UserContext(), id); err != nil {
		return oops.Errorf("Users.Delete: %w", err)
	}

	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) ListRoles(c *fiber.Ctx) error {
	list, err := s.client.ListRoles(c.UserContext())
	if err != nil {
		return oops.Errorf("ListRoles: %w", err)
	}

	return c.JSON(list)
}
