package dto

// SessionResponse sesión nueva con su token Bearer.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
