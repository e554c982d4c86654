package auth

import (
	"net/http"
	"strings"

	"github.com/amanbabu2004/web-application-students/internal/service"

	"github.com/gin-gonic/gin"
)

const contextKeyUsername = "session_username"

// UsernameFromContext returns the username set by RequireSession. Empty if not set.
func UsernameFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyUsername)
	if !ok {
		return ""
	}
	username, ok := v.(string)
	if !ok {
		return ""
	}
	return username
}

// TokenFromRequest reads the session token from the "token" query parameter
// or an "Authorization: Bearer" header.
func TokenFromRequest(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// RequireSession returns a middleware that verifies the request's session
// token and sets the session username in context. If missing, expired or
// invalid, responds with 401.
func RequireSession(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		username, ok, err := sessions.Verify(c.Request.Context(), token)
		if err != nil || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Set(contextKeyUsername, username)
		c.Next()
	}
}
