package types

// AuthSession is the token pair handed back after a successful sign-in or
// refresh against the identity provider.
type AuthSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	UserID       string `json:"user_id,omitempty"`
	Email        string `json:"email,omitempty"`
}

// SessionInfo reports the gate's current state for a presented token.
type SessionInfo struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
}

// LoginRequest is the credential pair presented to the identity provider.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token for session renewal.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
