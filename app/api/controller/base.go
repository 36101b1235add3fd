package controller

import (
	"context"
	"naapi/app/client/naapi"
	"naapi/app/config"
	"naapi/app/service/auth"
	"naapi/app/service/limits"
	"naapi/app/service/session"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
)

type Server struct {
	appCtx         context.Context
	cfg            *config.Config
	client         *naapi.Client
	authService    *auth.Service
	limitsService  *limits.Service
	sessionService *session.Service
	validate       *validator.Validate
}

func NewServer(di *do.Injector) *Server {
	return &Server{
		appCtx:         do.MustInvoke[context.Context](di),
		cfg:            do.MustInvoke[*config.Config](di),
		client:         do.MustInvoke[*naapi.Client](di),
		authService:    do.MustInvoke[*auth.Service](di),
		limitsService:  do.MustInvoke[*limits.Service](di),
		sessionService: do.MustInvoke[*session.Service](di),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Server) bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return oops.
			With("status_code", http.StatusBadRequest).
			Public("Malformed request body").
			Errorf("BodyParser: %w", err)
	}

	if err := s.validate.Struct(out); err != nil {
		return oops.
			With("status_code", http.StatusBadRequest).
			Public(err.Error()).
			Errorf("validation failed: %w", err)
	}

	return nil
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, oops.
			With("status_code", http.StatusBadRequest).
			Public("Invalid " + name).
			Errorf("invalid %s param %q", name, c.Params(name))
	}

	return id, nil
}
