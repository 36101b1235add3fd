package tokenstore

import (
	"errors"
	"io/fs"
	"naapi/app/config"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/samber/do"
	"github.com/samber/oops"
)

// Service persists the single durable key: the session token.
type Service struct {
	path string
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)
	return NewFile(cfg.Session.TokenFile), nil
}

func NewFile(path string) *Service {
	return &Service{path: path}
}

func (s *Service) Path() string {
	return s.path
}

// Load returns "" when nothing is persisted.
func (s *Service) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}

		return "", oops.Errorf("failed to read token file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func (s *Service) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return oops.Errorf("failed to create token directory: %w", err)
	}

	if err := atomic.WriteFile(s.path, strings.NewReader(token)); err != nil {
		return oops.Errorf("failed to write token file: %w", err)
	}

	if err := os.Chmod(s.path, 0o600); err != nil {
		return oops.Errorf("failed to restrict token file: %w", err)
	}

	return nil
}

func (s *Service) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return oops.Errorf("failed to remove token file: %w", err)
	}

	return nil
}
