package config

import (
	"errors"
	"io/fs"
	"naapi/app/dto"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const (
	AuthSchemeBearer = "bearer"
	AuthSchemeBasic  = "basic"
)

type Config struct {
	// Service name for telemetry and logs
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME" example:"naapi" validate:"required"`
	// Public URL of the console, allowed as CORS origin
	BaseURL   string    `yaml:"base_url" env:"BASE_URL" example:"http://localhost:8080" validate:"required"`
	Sentry    Sentry    `yaml:"sentry" envPrefix:"SENTRY_"`
	Log       Log       `yaml:"log" envPrefix:"LOG_"`
	Telemetry Telemetry `yaml:"telemetry" envPrefix:"TELEMETRY_"`
	Backend   Backend   `yaml:"backend" envPrefix:"BACKEND_"`
	Session   Session   `yaml:"session" envPrefix:"SESSION_"`
	Auth      Auth      `yaml:"auth" envPrefix:"AUTH_"`
	Limits    Limits    `yaml:"limits" envPrefix:"LIMITS_"`
	Server    Server    `yaml:"server" envPrefix:"SERVER_"`
}

type Sentry struct {
	DSN string `yaml:"dsn" env:"DSN" example:"https://a1b2c3d4e5f6g7h8a1b2c3d4e5f6g7h8@o123456.ingest.sentry.io/1234567"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram" envPrefix:"TELEGRAM_"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" env:"TOKEN" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Channel to send messages to, in the form of @username
	Username string `yaml:"username" env:"USERNAME" example:"@naapi_alerts" validate:"omitempty,startswith=@"`
}

type Telemetry struct {
	// Whether to enable opentelemetry logs/metrics/traces export
	Enabled bool `yaml:"enabled" env:"ENABLED" example:"false"`
}

type Backend struct {
	// Base URL of the NAAPI REST API
	BaseURL string `yaml:"base_url" env:"BASE_URL" example:"http://localhost:8081" validate:"required,url"`
	// How credentials are exchanged for a token: bearer or basic
	AuthScheme string `yaml:"auth_scheme" env:"AUTH_SCHEME" example:"bearer" validate:"required,oneof=bearer basic"`
	// Request timeout in seconds
	Timeout int `yaml:"timeout" env:"TIMEOUT" example:"30" validate:"required"`
	// Number of health probes before the server gives up on the backend, 0 disables the probe
	StartupProbes int `yaml:"startup_probes" env:"STARTUP_PROBES" example:"5"`
}

type Session struct {
	// File holding the persisted token
	TokenFile string `yaml:"token_file" env:"TOKEN_FILE" example:"/home/naapi/.config/naapi/naapi_auth_header" validate:"required"`
}

type Auth struct {
	// Custom grants object, keys - role authorities, values - array of granted capabilities
	// Example:
	// custom_roles:
	//   ROLE_COORDENADOR_NAAPI: ["*"]
	//   ROLE_MEMBRO_TECNICO: ["registries:manage", "students:edit"]
	CustomRoles map[string][]dto.Capability `yaml:"custom_roles"`
}

type Limits struct {
	// Login attempts allowed per minute per client IP
	LoginRpm int `yaml:"login_rpm" env:"LOGIN_RPM" example:"5" validate:"required"`
}

type Server struct {
	// Interface to bind to
	Host string `yaml:"host" env:"HOST" example:"127.0.0.1"`
	// Web server port
	HttpPort int `yaml:"http_port" env:"HTTP_PORT" example:"8080" validate:"required"`
	// Where the route guard sends anonymous visitors
	LoginPath string `yaml:"login_path" env:"LOGIN_PATH" example:"/login" validate:"required,startswith=/"`
	// Seconds a protected request may wait for session bootstrap
	GuardTimeout int `yaml:"guard_timeout" env:"GUARD_TIMEOUT" example:"30"`
}

// Load reads the YAML file (a missing file is not an error), applies NAAPI_ env
// overrides and defaults, then validates the result.
func Load(configPath string) (*Config, error) {
	var result Config

	data, err := os.ReadFile(configPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&result, env.Options{ //nolint:exhaustruct
		Prefix: "NAAPI_",
	}); err != nil {
		return nil, oops.Errorf("failed to parse environment variables: %w", err)
	}

	if result.ServiceName == "" {
		result.ServiceName = "naapi"
	}
	if result.Server.Host == "" {
		result.Server.Host = "127.0.0.1"
	}
	if result.Server.HttpPort == 0 {
		result.Server.HttpPort = 8080
	}
	if result.Server.LoginPath == "" {
		result.Server.LoginPath = "/login"
	}
	if result.Server.GuardTimeout == 0 {
		result.Server.GuardTimeout = 30
	}
	if result.BaseURL == "" {
		result.BaseURL = "http://localhost:8080"
	}
	if result.Backend.BaseURL == "" {
		result.Backend.BaseURL = "http://localhost:8081"
	}
	if result.Backend.AuthScheme == "" {
		result.Backend.AuthScheme = AuthSchemeBearer
	}
	if result.Backend.Timeout == 0 {
		result.Backend.Timeout = 30
	}
	if result.Limits.LoginRpm == 0 {
		result.Limits.LoginRpm = 5
	}
	if result.Session.TokenFile == "" {
		result.Session.TokenFile = defaultTokenFile()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}

	return filepath.Join(dir, "naapi", dto.AuthStorageKey)
}
