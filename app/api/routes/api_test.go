package routes

import (
	"context"
	"encoding/json"
	"io"
	"naapi/app/api"
	"naapi/app/api/controller"
	"naapi/app/api/middleware"
	"naapi/app/client/naapi"
	"naapi/app/config"
	"naapi/app/dto"
	"naapi/app/service/auth"
	"naapi/app/service/limits"
	"naapi/app/service/pubsub"
	"naapi/app/service/session"
	"naapi/app/service/tokenstore"
	"naapi/app/util/telemetry"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeBackend(t *testing.T) http.HandlerFunc {
	staff := dto.User{
		ID:     5,
		Name:   "Carla",
		Email:  "carla@naapi.br",
		Papeis: []dto.Papel{{ID: 2, Authority: string(dto.RoleTechnicalStaff)}},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/auth/login" {
			var req struct {
				Email string `json:"email"`
				Senha string `json:"senha"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			if req.Senha != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Credenciais inválidas"}`))
				return
			}

			_, _ = w.Write([]byte(`{"token":"staff-token"}`))
			return
		}

		if r.Header.Get("Authorization") != "Bearer staff-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/usuarios/me":
			_ = json.NewEncoder(w).Encode(staff)
		case "/alunos":
			assert.Equal(t, "Bia", r.URL.Query().Get("nome"))
			_, _ = w.Write([]byte(`[{"id":1,"nome":"Bia","matricula":"2024001"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestApp(t *testing.T, loginRpm int) *fiber.App {
	t.Helper()

	srv := httptest.NewServer(fakeBackend(t))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ServiceName: "naapi",
		Backend: config.Backend{
			BaseURL:    srv.URL,
			AuthScheme: config.AuthSchemeBearer,
			Timeout:    5,
		},
		Session: config.Session{TokenFile: filepath.Join(t.TempDir(), dto.AuthStorageKey)},
		Limits:  config.Limits{LoginRpm: loginRpm},
		Server:  config.Server{LoginPath: "/login", GuardTimeout: 1},
	}

	di := do.New()
	t.Cleanup(func() {
		_ = di.Shutdown()
	})

	do.ProvideValue(di, context.Background())
	do.ProvideValue(di, cfg)

	tracing, metrics := telemetry.NewNoop(cfg)
	do.ProvideValue(di, tracing)
	do.ProvideValue(di, metrics)

	do.Provide(di, naapi.NewClient)
	do.Provide(di, tokenstore.New)
	do.Provide(di, pubsub.New)
	do.Provide(di, limits.New)
	do.Provide(di, auth.New)
	do.Provide(di, session.New)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	server := controller.NewServer(di)
	opts := Options{
		LoginPath:   cfg.Server.LoginPath,
		Guard:       middleware.NewGuard(di),
		AuthService: do.MustInvoke[*auth.Service](di),
	}
	PublicRoutes(app, opts, server)
	ProtectedRoutes(app, opts, server)
	NotFoundRoute(app)

	return app
}

func login(t *testing.T, app *fiber.App, password string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"email":"carla@naapi.br","password":"`+password+`"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var res T
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &res), string(data))

	return res
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)

	return resp
}

func TestRoutes_SessionLifecycle(t *testing.T) {
	app := newTestApp(t, 10)

	resp := get(t, app, "/v1/students")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = login(t, app, "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, decode[api.LoginResponse](t, resp).Success)

	resp = login(t, app, "secret")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[api.LoginResponse](t, resp).Success)

	resp = get(t, app, "/v1/students?nome=Bia")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	students := decode[[]dto.Student](t, resp)
	require.Len(t, students, 1)
	assert.Equal(t, "2024001", students[0].Enrollment)

	resp = get(t, app, "/v1/me")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[api.Myself](t, resp)
	assert.Equal(t, "Carla", me.Name)
	assert.Equal(t, []string{string(dto.RoleTechnicalStaff)}, me.Roles)
	assert.True(t, me.Capabilities[string(dto.CapabilityManageRegistries)])
	assert.False(t, me.Capabilities[string(dto.CapabilityManageUsers)])

	resp = get(t, app, "/v1/users")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Insufficient permissions", decode[api.General](t, resp).Msg)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	state := decode[api.SessionState](t, get(t, app, "/v1/session"))
	assert.False(t, state.Authenticated)
	assert.False(t, state.Initializing)
	assert.Nil(t, state.User)

	resp = get(t, app, "/v1/students")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestRoutes_LoginThrottle(t *testing.T) {
	app := newTestApp(t, 2)

	assert.Equal(t, http.StatusUnauthorized, login(t, app, "wrong").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, login(t, app, "wrong").StatusCode)

	resp := login(t, app, "secret")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too many requests", decode[api.General](t, resp).Msg)
}

func TestRoutes_NotFound(t *testing.T) {
	app := newTestApp(t, 10)

	resp := get(t, app, "/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[api.General](t, resp)
	assert.True(t, body.Error)
	assert.Equal(t, "Route not found", body.Msg)
	assert.Equal(t, http.StatusNotFound, body.StatusCode)

	// unknown paths under guarded prefixes are not redirected or gated
	resp = get(t, app, "/v1/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))

	require.Equal(t, http.StatusOK, login(t, app, "secret").StatusCode)

	resp = get(t, app, "/v1/users/1/sessions")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = get(t, app, "/v1/users")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
