package handlers

import (
	"errors"
	"net/http"

	"github.com/amanbabu2004/web-application-students/internal/auth"
	"github.com/amanbabu2004/web-application-students/internal/dto"
	"github.com/amanbabu2004/web-application-students/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, logout and verify.
type AuthHandler struct {
	sessions *service.SessionService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/login [post]
//
// A rejected credential still answers 200; success=false carries the
// failure so the client cannot tell unknown user from wrong password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusOK, dto.LoginResponse{Success: false, Message: "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Success: true, Message: "Login successful", Token: token})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Param        token  query  string  true  "Session token"
// @Success      200    {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := auth.TokenFromRequest(c)
	ok, err := h.sessions.Logout(c.Request.Context(), token)
	if err != nil || !ok {
		c.JSON(http.StatusOK, gin.H{"message": "Invalid session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Verify godoc
// @Summary      Verify a session token
// @Tags         auth
// @Produce      json
// @Param        token  query  string  true  "Session token"
// @Success      200    {object}  dto.VerifyResponse
// @Router       /auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	token := auth.TokenFromRequest(c)
	username, ok, err := h.sessions.Verify(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verify failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, dto.VerifyResponse{Valid: false})
		return
	}
	c.JSON(http.StatusOK, dto.VerifyResponse{Valid: true, Username: username})
}
