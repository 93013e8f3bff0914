package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"community-board/pkg/helpers"
	"community-board/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// Auth is the gate in front of every protected notice operation. It reads
// the bearer token from the Authorization header (raw token; a "Bearer "
// prefix is tolerated) and rejects with a uniform 403 whether the token is
// missing, malformed, forged, or expired. On success the claims are placed
// in the Gin context for downstream handlers.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization"))
		token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
		if token == "" {
			response.Error[any](c, http.StatusForbidden, "access denied", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusForbidden, "access denied", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}
