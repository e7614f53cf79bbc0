package middleware

import (
	"strings"

	"pos-admin-gateway/internal/shared/response"
	"pos-admin-gateway/internal/shared/session"
	"pos-admin-gateway/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const ContextKeySession = "session"

// AuthMiddleware validates the Bearer token and puts the resulting
// Session into both the gin context and the request context, so that
// services reached via context.Context see the same identity.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify and parse JWT
		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		sess := &session.Session{
			UserID:   claims.UserID,
			Username: claims.Username,
			FullName: claims.FullName,
		}

		c.Set(ContextKeySession, sess)
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))

		c.Next()
	}
}

// GetSession returns the session stored by AuthMiddleware.
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(ContextKeySession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}
