package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"docuchat/internal/app"
	"docuchat/internal/pkg/jwtutil"
	"docuchat/internal/transport/http/response"
)

const ContextSessionKey = "session"

// SessionAuth resolves the bearer token to an in-memory session. Tokens from
// before a restart parse fine but resolve to nothing; the client just opens a
// new session.
func SessionAuth(secret []byte, sessions *app.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired session token")
			c.Abort()
			return
		}

		sess, ok := sessions.Get(claims.SessionID)
		if !ok {
			response.Error(c, 401, response.CodeUnauthorized, "session no longer exists")
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// SessionFromContext retrieves the session placed by SessionAuth.
func SessionFromContext(c *gin.Context) (*app.Session, bool) {
	v, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*app.Session)
	return sess, ok
}
