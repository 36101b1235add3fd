package session

import (
	"context"
	"log/slog"
	"naapi/app/client/naapi"
	"naapi/app/dto"
	"naapi/app/service/pubsub"
	"naapi/app/service/tokenstore"
	"naapi/app/util/telemetry"
	"sync"

	"github.com/samber/do"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel/attribute"
)

var serviceName = "session"

type Backend interface {
	// Authenticate may return the profile it already loaded, nil otherwise.
	Authenticate(ctx context.Context, email, password string) (string, *dto.User, error)
	Me(ctx context.Context, token string) (dto.User, error)
}

type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type Service struct {
	backend      Backend
	tokens       TokenStore
	users        pubsub.Topic[*dto.User]
	initializing pubsub.Topic[bool]
	tracing      *telemetry.Tracing
	metrics      *telemetry.Metrics

	mu    sync.RWMutex
	token string
	user  *dto.User

	ready *latch
}

func New(di *do.Injector) (*Service, error) {
	client := do.MustInvoke[*naapi.Client](di)

	s, err := NewWith(
		client,
		do.MustInvoke[*tokenstore.Service](di),
		do.MustInvoke[*pubsub.Service](di),
		do.MustInvoke[*telemetry.Tracing](di),
		do.MustInvoke[*telemetry.Metrics](di),
	)
	if err != nil {
		return nil, err
	}

	client.SetTokenSource(s)

	return s, nil
}

// NewWith reads the persisted token once: a present token starts the store in
// the initializing state.
func NewWith(
	backend Backend,
	tokens TokenStore,
	bus *pubsub.Service,
	tracing *telemetry.Tracing,
	metrics *telemetry.Metrics,
) (*Service, error) {
	token, err := tokens.Load()
	if err != nil {
		return nil, oops.Errorf("failed to load persisted token: %w", err)
	}

	return &Service{
		backend:      backend,
		tokens:       tokens,
		users:        bus.SessionUser(),
		initializing: bus.SessionInitializing(),
		tracing:      tracing,
		metrics:      metrics,
		token:        token,
		ready:        newLatch(token == ""),
	}, nil
}

// Login never returns an error: every failure ends in the anonymous state.
func (s *Service) Login(ctx context.Context, email, password string) bool {
	ctx, span := s.tracing.StartServiceSpan(ctx, serviceName, "login")
	defer span.End()

	token, usr, err := s.backend.Authenticate(ctx, email, password)
	if err != nil {
		_ = s.tracing.Error(span, err)
		slog.WarnContext(ctx, "Login failed",
			slog.String("email", email),
			slog.Any("error", err),
		)
		s.Logout()
		s.metrics.Login(ctx, false)
		return false
	}

	if err = s.tokens.Save(token); err != nil {
		_ = s.tracing.Error(span, err)
		slog.ErrorContext(ctx, "Failed to persist token", slog.Any("error", err))
		s.Logout()
		s.metrics.Login(ctx, false)
		return false
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if usr != nil {
		s.applyUser(usr)
	} else {
		s.ValidateSessionAndLoadUser(ctx, false)
	}

	success := s.IsLoggedIn()
	s.metrics.Login(ctx, success)
	span.SetAttributes(attribute.Bool("success", success))

	if success {
		s.tracing.Success(span)
		slog.InfoContext(ctx, "User logged in", slog.String("email", email))
	}

	return success
}

// Logout is local only and idempotent.
func (s *Service) Logout() {
	if err := s.tokens.Clear(); err != nil {
		slog.Error("Failed to clear persisted token", slog.Any("error", err))
	}

	s.mu.Lock()
	hadUser := s.user != nil || s.token != ""
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if hadUser {
		s.users.Publish(nil)
	}
}

func (s *Service) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token != ""
}

// Token is the held token, "" when anonymous.
func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *Service) CurrentUser() *dto.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user
}

// SubscribeUser delivers the current user, then every change. Call the returned
// func to stop.
func (s *Service) SubscribeUser(callback func(usr *dto.User)) func() {
	unsubscribe := s.users.Subscribe(callback)
	callback(s.CurrentUser())

	return unsubscribe
}

func (s *Service) IsInitializing() bool {
	return !s.ready.IsReleased()
}

// Ready is closed once the bootstrap revalidation has been applied.
func (s *Service) Ready() <-chan struct{} {
	return s.ready.Done()
}

func (s *Service) AwaitReady(ctx context.Context) error {
	select {
	case <-s.ready.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SubscribeInitializing delivers the current flag, then the single true->false
// transition.
func (s *Service) SubscribeInitializing(callback func(initializing bool)) func() {
	unsubscribe := s.initializing.Subscribe(callback)
	callback(s.IsInitializing())

	return unsubscribe
}

// Bootstrap starts the initial revalidation in the background.
func (s *Service) Bootstrap(ctx context.Context) {
	if !s.IsInitializing() {
		return
	}

	go s.ValidateSessionAndLoadUser(context.WithoutCancel(ctx), true)
}

// ValidateSessionAndLoadUser refreshes the user from the held token. Any failure
// logs out. The initial load releases the ready latch after its outcome is applied.
func (s *Service) ValidateSessionAndLoadUser(ctx context.Context, isInitialLoad bool) {
	if isInitialLoad {
		defer s.finishInitializing()
	}

	ctx, span := s.tracing.StartServiceSpan(ctx, serviceName, "validate")
	defer span.End()
	span.SetAttributes(attribute.Bool("initial", isInitialLoad))

	token := s.Token()
	if token == "" {
		s.Logout()
		s.metrics.Revalidation(ctx, false, isInitialLoad)
		return
	}

	usr, err := s.whoami(ctx, token)
	if err != nil {
		_ = s.tracing.Error(span, err)
		slog.WarnContext(ctx, "Session is no longer valid",
			slog.Bool("initial", isInitialLoad),
			slog.Any("error", err),
		)
		s.Logout()
		s.metrics.Revalidation(ctx, false, isInitialLoad)
		return
	}

	s.applyUser(&usr)
	s.metrics.Revalidation(ctx, true, isInitialLoad)
	s.tracing.Success(span)
}

func (s *Service) applyUser(usr *dto.User) {
	s.mu.Lock()
	s.user = usr
	s.mu.Unlock()

	s.users.Publish(usr)
}

// whoami turns a backend panic into an ordinary revalidation failure.
func (s *Service) whoami(ctx context.Context, token string) (usr dto.User, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = oops.Errorf("panic while loading user: %v", r)
		}
	}()

	return s.backend.Me(ctx, token)
}

func (s *Service) finishInitializing() {
	if s.ready.Release() {
		s.initializing.Publish(false)
	}
}
