package websocket

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"naapi/app/api"
	"naapi/app/api/mapper"
	"naapi/app/dto"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/jellydator/ttlcache/v3"
)

var pingMsg = []byte("ping")

// SessionSource is the part of the session store a connection streams from.
type SessionSource interface {
	SubscribeUser(callback func(usr *dto.User)) func()
	SubscribeInitializing(callback func(initializing bool)) func()
}

// Conn is the subset of *websocket.Conn the handler uses.
type Conn interface {
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	WriteJSON(v any) error
}

var _ Conn = (*websocket.Conn)(nil)

type ConnectionHandler struct {
	conn      Conn
	session   SessionSource
	writeChan chan api.IdMessage
	ctx       context.Context
	cancel    context.CancelFunc
}

func (h *ConnectionHandler) Handle() {
	defer h.cleanup()

	unsubscribe := h.setupSubscriptions()
	defer unsubscribe()

	stopWriter := h.startWriter()
	defer stopWriter()

	h.runReader()
}

func (h *ConnectionHandler) writeMessage(msg api.IdMessage) bool {
	select {
	case <-h.ctx.Done():
		return false
	case h.writeChan <- msg:
	default:
		slog.Warn("Write channel full, dropping message")
	}

	return true
}

func (h *ConnectionHandler) setupSubscriptions() func() {
	recoverPanic := func() {
		if err := recover(); err != nil {
			slog.Error("Panic in subscription handler", slog.Any("error", err))
		}
	}

	unsubscribeUser := h.session.SubscribeUser(func(usr *dto.User) {
		defer recoverPanic()

		h.writeMessage(&api.WsMessage{
			Event: api.WsEventUser,
			Data:  mapper.MapUserPtr(usr),
		})
	})

	unsubscribeReady := h.session.SubscribeInitializing(func(initializing bool) {
		defer recoverPanic()

		// the current value and the transition may both report false
		h.writeMessage(&api.WsMessage{
			Id:    fmt.Sprintf("initializing:%t", initializing),
			Event: api.WsEventReady,
			Data:  !initializing,
		})
	})

	return func() {
		unsubscribeUser()
		unsubscribeReady()
	}
}

func (h *ConnectionHandler) startWriter() func() {
	idCache := ttlcache.New[string, struct{}]()
	go idCache.Start()

	go func() {
		for {
			select {
			case <-h.ctx.Done():
				// unblock the reader
				_ = h.conn.SetReadDeadline(time.Now())
				return
			case data := <-h.writeChan:
				id := data.GetId()

				if id != "" {
					if idCache.Has(id) {
						continue
					}
					idCache.Set(id, struct{}{}, time.Minute)
				}

				_ = h.conn.SetWriteDeadline(time.Now().Add(1 * time.Minute))
				_ = h.conn.WriteJSON(data)
			}
		}
	}()

	return idCache.Stop
}

func (h *ConnectionHandler) runReader() {
	for h.ctx.Err() == nil {
		_ = h.conn.SetReadDeadline(time.Now().Add(1 * time.Minute))

		_, msg, err := h.conn.ReadMessage()
		if err != nil {
			return
		}

		if bytes.Equal(msg, pingMsg) {
			if !h.writeMessage(&api.WsMessage{
				Event: api.WsEventPong,
			}) {
				return
			}
		}
	}
}

func (h *ConnectionHandler) cleanup() {
	h.cancel()
}
