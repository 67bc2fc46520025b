package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"profilehub/internal/app"
	"profilehub/internal/session"
	"profilehub/internal/transport/http/response"
)

const (
	ContextUserIDKey    = "user_id"
	ContextSessionIDKey = "session_id"
)

// RequireSession resolves the signed session cookie into a user id and
// injects it into the request context. Requests without a live session are
// rejected before any handler runs.
func RequireSession(auth *app.AuthService, codec *session.CookieCodec, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(cookieName)
		if err != nil || value == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "login required")
			c.Abort()
			return
		}

		sid, err := codec.Decode(value)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "invalid or expired session")
			c.Abort()
			return
		}

		userID, err := auth.ResolveSession(c.Request.Context(), sid)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextSessionIDKey, sid)
		c.Next()
	}
}

// UserID reads the authenticated user id placed by RequireSession.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// SessionID reads the session id placed by RequireSession.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionIDKey)
}
