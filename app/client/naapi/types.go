package naapi

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// RawResponse is a relayed body kept byte-for-byte.
type RawResponse struct {
	ContentType        string
	ContentDisposition string
	Body               []byte
}
