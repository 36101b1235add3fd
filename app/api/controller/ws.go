package controller

import (
	"naapi/app/service/websocket"

	"github.com/samber/do"
)

// SessionStream serves /ws/session.
type SessionStream struct {
	*websocket.Service
}

func NewSessionStream(di *do.Injector) *SessionStream {
	return &SessionStream{
		Service: do.MustInvoke[*websocket.Service](di),
	}
}
