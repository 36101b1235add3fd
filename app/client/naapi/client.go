package naapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"naapi/app/config"
	"naapi/app/dto"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/samber/do"
	"github.com/samber/oops"
)

const maxErrorBody = 64 << 10

// TokenSource yields the token attached to protected requests, "" when anonymous.
type TokenSource interface {
	Token() string
}

type Client struct {
	cfg    *config.Config
	client *http.Client

	mu     sync.RWMutex
	tokens TokenSource

	Students         Resource[dto.Student]
	Courses          Resource[dto.Course]
	Classes          Resource[dto.Class]
	Diagnoses        Resource[dto.Diagnosis]
	AppointmentTypes Resource[dto.AppointmentType]
	Appointments     Resource[dto.Appointment]
	MedicalReports   Resource[dto.MedicalReport]
	PEIs             Resource[dto.PEI]
	History          Resource[dto.AcademicHistory]
	Users            Resource[dto.User]
}

func NewClient(di *do.Injector) (*Client, error) {
	return New(do.MustInvoke[*config.Config](di)), nil
}

func New(cfg *config.Config) *Client {
	c := &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Backend.Timeout) * time.Second,
		},
	}

	c.Students = Resource[dto.Student]{client: c, path: "/alunos"}
	c.Courses = Resource[dto.Course]{client: c, path: "/cursos"}
	c.Classes = Resource[dto.Class]{client: c, path: "/turmas"}
	c.Diagnoses = Resource[dto.Diagnosis]{client: c, path: "/diagnosticos"}
	c.AppointmentTypes = Resource[dto.AppointmentType]{client: c, path: "/tipos-atendimento"}
	c.Appointments = Resource[dto.Appointment]{client: c, path: "/atendimentos"}
	c.MedicalReports = Resource[dto.MedicalReport]{client: c, path: "/laudos"}
	c.PEIs = Resource[dto.PEI]{client: c, path: "/peis"}
	c.History = Resource[dto.AcademicHistory]{client: c, path: "/historico-academico"}
	c.Users = Resource[dto.User]{client: c, path: "/usuarios"}

	return c
}

func (c *Client) SetTokenSource(tokens TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tokens = tokens
}

// AuthorizationHeader renders the header value for a held token.
func (c *Client) AuthorizationHeader(token string) string {
	if c.cfg.Backend.AuthScheme == config.AuthSchemeBasic {
		return "Basic " + token
	}

	return "Bearer " + token
}

func (c *Client) heldToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.tokens == nil {
		return ""
	}

	return c.tokens.Token()
}

// Authenticate exchanges credentials for a token. It never attaches the held token.
// The basic scheme validates credentials by loading the profile, which is
// returned alongside the token; the bearer scheme returns a nil user.
func (c *Client) Authenticate(ctx context.Context, email, password string) (string, *dto.User, error) {
	if c.cfg.Backend.AuthScheme == config.AuthSchemeBasic {
		token := base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
		usr, err := c.Me(ctx, token)
		if err != nil {
			return "", nil, oops.Errorf("Me: %w", err)
		}

		return token, &usr, nil
	}

	var resp loginResponse
	err := c.call(ctx, call{
		method:    http.MethodPost,
		path:      "/auth/login",
		body:      loginRequest{Email: email, Password: password},
		anonymous: true,
	}, &resp)
	if err != nil {
		return "", nil, oops.Errorf("login: %w", err)
	}

	if resp.Token == "" {
		return "", nil, oops.
			With("status_code", http.StatusBadGateway).
			Public("Backend returned an empty token").
			Errorf("empty token in login response")
	}

	return resp.Token, nil, nil
}

// Me fetches the profile bound to an explicit token.
func (c *Client) Me(ctx context.Context, token string) (dto.User, error) {
	var usr dto.User
	err := c.call(ctx, call{
		method:        http.MethodGet,
		path:          "/usuarios/me",
		authorization: c.AuthorizationHeader(token),
	}, &usr)
	if err != nil {
		return dto.User{}, oops.Errorf("GET /usuarios/me: %w", err)
	}

	return usr, nil
}

// HealthCheck treats any non-5xx answer from the backend root as reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Backend.BaseURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}

	return nil
}

// WaitHealthy probes the backend up to backend.startup_probes times.
func (c *Client) WaitHealthy(ctx context.Context) error {
	if c.cfg.Backend.StartupProbes <= 0 {
		return nil
	}

	return retry.Do(
		func() error {
			return c.HealthCheck(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.cfg.Backend.StartupProbes)),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.WarnContext(ctx, "Backend is not ready yet",
				slog.Int("attempt", int(n)+1),
				slog.Any("error", err),
			)
		}),
	)
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
	// authorization overrides the held token when set
	authorization string
	anonymous     bool
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := strings.TrimSuffix(c.cfg.Backend.BaseURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, oops.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) authorize(req *http.Request, cl call) {
	if cl.anonymous {
		return
	}

	if cl.authorization != "" {
		req.Header.Set("Authorization", cl.authorization)
		return
	}

	if token := c.heldToken(); token != "" {
		req.Header.Set("Authorization", c.AuthorizationHeader(token))
	}
}

func (c *Client) call(ctx context.Context, cl call, out any) error {
	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return oops.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, cl.method, cl.path, cl.query, body)
	if err != nil {
		return err
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req, cl)

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeBody(resp, out)
}

// decodeBody reads a JSON answer into out. An empty body leaves out untouched.
func decodeBody(resp *http.Response, out any) error {
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return oops.
			With("status_code", http.StatusBadGateway).
			Errorf("failed to decode %s %s response: %w", resp.Request.Method, resp.Request.URL.Path, err)
	}

	return nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, oops.
			With("status_code", http.StatusBadGateway).
			Public("NAAPI backend is unavailable").
			Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, readError(req, resp)
	}

	return resp, nil
}

func readError(req *http.Request, resp *http.Response) error {
	var body errorResponse

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(data, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return oops.
		With("status_code", resp.StatusCode).
		Public(msg).
		Errorf("%s %s: backend responded with status %d: %s", req.Method, req.URL.Path, resp.StatusCode, msg)
}
