package middleware

import (
	"errors"
	"fmt"

	"github.com/CampusVoice/campus-voice-backend/config"
	"github.com/CampusVoice/campus-voice-backend/logger"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	// ErrTokenExpired is returned when JWT validation fails due to expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for general token validation failures (signature, format).
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenMissingClaim is returned if a required claim (like 'sub') is missing.
	ErrTokenMissingClaim = errors.New("token missing required claim")
)

// Validator defines the interface for validating tokens.
type Validator interface {
	Validate(tokenString string) (string, error)
}

// JWTValidator validates HS256-signed Supabase access tokens.
type JWTValidator struct {
	secret []byte
}

var _ Validator = (*JWTValidator)(nil)

// NewJWTValidator creates a validator instance using application configuration.
func NewJWTValidator(cfg *config.Config) (Validator, error) {
	if cfg.ExternalServices.SupabaseJWTSecret == "" {
		return nil, fmt.Errorf("JWT validator configuration error: SUPABASE_JWT_SECRET must be set")
	}
	logger.GetLogger().Info("JWT Validator: HS256 validation enabled.")
	return &JWTValidator{secret: []byte(cfg.ExternalServices.SupabaseJWTSecret)}, nil
}

// Validate parses and validates the token, returning the subject claim.
// Returns ErrTokenExpired, ErrTokenMissingClaim, or ErrTokenInvalid.
func (v *JWTValidator) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse([]byte(tokenString),
		jwt.WithKey(jwa.HS256, v.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return "", fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	sub := token.Subject()
	if sub == "" {
		return "", ErrTokenMissingClaim
	}
	return sub, nil
}
