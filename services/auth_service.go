package services

import (
	"context"

	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
	"github.com/CampusVoice/campus-voice-backend/logger"
	"github.com/CampusVoice/campus-voice-backend/types"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

// IdentityProvider is the slice of the identity backend the auth service uses.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*types.AuthSession, error)
	Refresh(ctx context.Context, refreshToken string) (*types.AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthService brokers moderator credentials against the identity provider.
// Credential failures collapse into a single generic error so responses never
// reveal whether the email or the password was wrong.
type AuthService struct {
	provider IdentityProvider
	log      *zap.SugaredLogger
}

func NewAuthService(provider IdentityProvider) *AuthService {
	return &AuthService{
		provider: provider,
		log:      logger.GetLogger(),
	}
}

// SignIn exchanges an email and password for a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*types.AuthSession, error) {
	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.log.Warnw("Sign-in rejected", "email", logger.MaskEmail(email), "error", err)
		return nil, apperrors.InvalidCredential()
	}

	s.log.Infow("Moderator signed in", "userId", session.UserID)
	return session, nil
}

// Refresh exchanges a refresh token for a fresh session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*types.AuthSession, error) {
	session, err := s.provider.Refresh(ctx, refreshToken)
	if err != nil {
		s.log.Warnw("Token refresh rejected", "error", err)
		return nil, apperrors.Unauthorized("refresh_failed", "Failed to refresh token")
	}
	return session, nil
}

// SignOut revokes the session behind the given access token. Revocation
// failures are logged but not surfaced: the client discards its tokens either
// way, and the token still expires on its own.
func (s *AuthService) SignOut(ctx context.Context, accessToken string) {
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		s.log.Warnw("Sign-out revocation failed", "error", err)
	}
}

// supabaseIdentity adapts the Supabase GoTrue client to IdentityProvider.
type supabaseIdentity struct {
	client *supabase.Client
}

// NewSupabaseIdentity wraps a Supabase client as an IdentityProvider.
func NewSupabaseIdentity(client *supabase.Client) IdentityProvider {
	return &supabaseIdentity{client: client}
}

func (p *supabaseIdentity) SignIn(_ context.Context, email, password string) (*types.AuthSession, error) {
	resp, err := p.client.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, err
	}
	return &types.AuthSession{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    int(resp.ExpiresIn),
		TokenType:    "bearer",
		UserID:       resp.User.ID.String(),
		Email:        resp.User.Email,
	}, nil
}

func (p *supabaseIdentity) Refresh(_ context.Context, refreshToken string) (*types.AuthSession, error) {
	resp, err := p.client.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &types.AuthSession{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    int(resp.ExpiresIn),
		TokenType:    "bearer",
		UserID:       resp.User.ID.String(),
		Email:        resp.User.Email,
	}, nil
}

func (p *supabaseIdentity) SignOut(_ context.Context, accessToken string) error {
	return p.client.Auth.WithToken(accessToken).Logout()
}
