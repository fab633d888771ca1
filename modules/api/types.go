package api

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the body returned by register and login.
type AuthResult struct {
	Success bool     `json:"success"`
	Token   string   `json:"token,omitempty"`
	Email   string   `json:"email,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// ProblemDetails is an RFC 9457 problem document.
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Code   string `json:"code,omitempty"`
}
