package handlers

import (
	"net/http"

	"github.com/CampusVoice/campus-voice-backend/middleware"
	"github.com/CampusVoice/campus-voice-backend/services"
	"github.com/CampusVoice/campus-voice-backend/types"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles the moderator sign-in endpoints.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges an email and password for a session. A failed sign-in
// always produces the same generic error regardless of which credential
// was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// RefreshToken exchanges a refresh token for a fresh session.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req types.RefreshRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	session, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Logout revokes the presented session. The response is 200 either way:
// once the client discards its tokens the session is gone from its side,
// and revocation failure upstream changes nothing for it.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
		h.authService.SignOut(c.Request.Context(), authHeader[len(prefix):])
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "Signed out"})
}

// Session reports whether the presented token is currently accepted. This
// is the state the dashboard consults on load to decide between rendering
// and bouncing to the login page.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, types.SessionInfo{
		Authenticated: true,
		UserID:        c.GetString(middleware.UserIDKey),
	})
}
