package services

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
	"github.com/CampusVoice/campus-voice-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentityProvider struct {
	session    *types.AuthSession
	signInErr  error
	refreshErr error
	signOutErr error
	revoked    []string
}

func (f *fakeIdentityProvider) SignIn(_ context.Context, _, _ string) (*types.AuthSession, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeIdentityProvider) Refresh(_ context.Context, _ string) (*types.AuthSession, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.session, nil
}

func (f *fakeIdentityProvider) SignOut(_ context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	return f.signOutErr
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the provider session", func(t *testing.T) {
		provider := &fakeIdentityProvider{session: &types.AuthSession{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    3600,
			TokenType:    "bearer",
			UserID:       "user-1",
		}}
		svc := NewAuthService(provider)

		session, err := svc.SignIn(ctx, "mod@campus.example", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "access", session.AccessToken)
		assert.Equal(t, "user-1", session.UserID)
	})

	t.Run("any provider failure becomes the generic credential error", func(t *testing.T) {
		for _, providerErr := range []error{
			errors.New("invalid_grant: user not found"),
			errors.New("invalid_grant: wrong password"),
			errors.New("network timeout"),
		} {
			provider := &fakeIdentityProvider{signInErr: providerErr}
			svc := NewAuthService(provider)

			_, err := svc.SignIn(ctx, "mod@campus.example", "pw")
			require.Error(t, err)
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.AuthError, appErr.Type)
			assert.Equal(t, "Email or password incorrect", appErr.Message)
			// The upstream failure never leaks into the response error.
			assert.NotContains(t, appErr.Message, providerErr.Error())
			assert.NotContains(t, appErr.Detail, providerErr.Error())
		}
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the refreshed session", func(t *testing.T) {
		provider := &fakeIdentityProvider{session: &types.AuthSession{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
		}}
		svc := NewAuthService(provider)

		session, err := svc.Refresh(ctx, "old-refresh")
		require.NoError(t, err)
		assert.Equal(t, "new-access", session.AccessToken)
	})

	t.Run("rejected refresh is unauthorized", func(t *testing.T) {
		provider := &fakeIdentityProvider{refreshErr: errors.New("token revoked")}
		svc := NewAuthService(provider)

		_, err := svc.Refresh(ctx, "old-refresh")
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.AuthError, appErr.Type)
	})
}

func TestAuthService_SignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes through the provider", func(t *testing.T) {
		provider := &fakeIdentityProvider{}
		svc := NewAuthService(provider)

		svc.SignOut(ctx, "access-token")
		assert.Equal(t, []string{"access-token"}, provider.revoked)
	})

	t.Run("revocation failure is swallowed", func(t *testing.T) {
		provider := &fakeIdentityProvider{signOutErr: errors.New("already revoked")}
		svc := NewAuthService(provider)

		// Must not panic or propagate.
		svc.SignOut(ctx, "access-token")
	})
}
