package api

// General is the body of every error response.
type General struct {
	Error      bool   `json:"error"`
	Msg        string `json:"msg"`
	StatusCode int    `json:"statusCode"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success bool `json:"success"`
}

type User struct {
	Id    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type Capabilities map[string]bool

type Myself struct {
	User
	Capabilities Capabilities `json:"capabilities"`
}

type SessionState struct {
	Initializing  bool  `json:"initializing"`
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user"`
}

type Health struct {
	Version          string       `json:"version"`
	BuildDate        string       `json:"buildDate"`
	BackendReachable bool         `json:"backendReachable"`
	Session          SessionState `json:"session"`
}

type IdMessage interface {
	GetId() string
}

const (
	WsEventUser  = "user"
	WsEventReady = "ready"
	WsEventPong  = "pong"
)

type WsMessage struct {
	Id    string `json:"-"`
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

func (m *WsMessage) GetId() string {
	return m.Id
}
