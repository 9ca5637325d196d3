package middleware

import (
	"testing"
	"time"

	"github.com/CampusVoice/campus-voice-backend/config"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestValidator(t *testing.T) Validator {
	t.Helper()
	v, err := NewJWTValidator(&config.Config{
		ExternalServices: config.ExternalServices{SupabaseJWTSecret: testSecret},
	})
	require.NoError(t, err)
	return v
}

func signToken(t *testing.T, subject string, expiry time.Time, secret string) string {
	t.Helper()
	builder := jwt.NewBuilder().
		IssuedAt(time.Now().Add(-time.Minute)).
		Expiration(expiry)
	if subject != "" {
		builder = builder.Subject(subject)
	}
	tok, err := builder.Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, []byte(secret)))
	require.NoError(t, err)
	return string(signed)
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(&config.Config{})
	assert.Error(t, err)
}

func TestJWTValidator_Validate(t *testing.T) {
	v := newTestValidator(t)

	t.Run("valid token yields the subject", func(t *testing.T) {
		token := signToken(t, "user-1", time.Now().Add(time.Hour), testSecret)

		sub, err := v.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", sub)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, "user-1", time.Now().Add(-time.Hour), testSecret)

		_, err := v.Validate(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		token := signToken(t, "user-1", time.Now().Add(time.Hour), "another-secret-another-secret-xx")

		_, err := v.Validate(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("missing subject claim", func(t *testing.T) {
		token := signToken(t, "", time.Now().Add(time.Hour), testSecret)

		_, err := v.Validate(token)
		assert.ErrorIs(t, err, ErrTokenMissingClaim)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := v.Validate("not.a.jwt")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
