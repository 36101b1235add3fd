package websocket

import (
	"context"
	"log/slog"
	"naapi/app/api"
	"naapi/app/service/session"
	"sync/atomic"

	"github.com/gofiber/contrib/websocket"
	"github.com/samber/do"
)

const writeBufferSize = 16

// Service hands out session stream handlers. Every stream is bound to the
// service context and ends when the service shuts down.
type Service struct {
	sessionService *session.Service

	ctx    context.Context
	cancel context.CancelFunc
	active atomic.Int64
}

func New(di *do.Injector) (*Service, error) {
	ctx, cancel := context.WithCancel(do.MustInvoke[context.Context](di))

	return &Service{
		sessionService: do.MustInvoke[*session.Service](di),
		ctx:            ctx,
		cancel:         cancel,
	}, nil
}

func (s *Service) NewHandler(conn *websocket.Conn) *ConnectionHandler {
	ctx, cancel := context.WithCancel(s.ctx)

	return &ConnectionHandler{
		conn:      conn,
		session:   s.sessionService,
		writeChan: make(chan api.IdMessage, writeBufferSize),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Serve streams session events over conn until either side goes away.
func (s *Service) Serve(conn *websocket.Conn) {
	count := s.active.Add(1)
	defer s.active.Add(-1)

	slog.Debug("Session stream opened",
		slog.String("ip", conn.IP()),
		slog.Int64("active", count),
	)

	s.NewHandler(conn).Handle()

	slog.Debug("Session stream closed",
		slog.String("ip", conn.IP()),
	)
}

func (s *Service) Shutdown() error {
	if n := s.active.Load(); n > 0 {
		slog.Info("Closing session streams",
			slog.Int64("count", n),
		)
	}

	s.cancel()

	return nil
}
