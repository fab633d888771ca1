package auth

import "time"

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the reply of register and login. Refusals are carried in
// Errors with Success=false rather than as a service error.
type AuthResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token,omitempty"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	Code      string    `json:"code,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response.
type ValidateTokenResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Refusal codes carried in AuthResponse.Code.
const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeValidationFailed   = "validation_failed"
	CodeDuplicateEmail     = "duplicate_email"
)
