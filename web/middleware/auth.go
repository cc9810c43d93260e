// Package middleware holds the gin middleware shared by the todo API routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/todoapp/todo-api/web/entity"

	"github.com/gin-gonic/gin"
)

const (
	userIdKey    = "user_id"
	bearerPrefix = "Bearer "
)

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (int, error)
}

// TokenAuth rejects requests without a valid "Authorization: Bearer <token>"
// header and stores the token's user id for downstream handlers.
func TokenAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), bearerPrefix)
		if !ok || token == "" {
			abortUnauthorized(c)
			return
		}

		userId, err := verifier.VerifyToken(token)
		if err != nil {
			RequestLog(c).Debugf("token rejected: %v", err)
			abortUnauthorized(c)
			return
		}

		c.Set(userIdKey, userId)
		c.Next()
	}
}

// GetUserId returns the principal stored by TokenAuth.
func GetUserId(c *gin.Context) (int, bool) {
	v, exists := c.Get(userIdKey)
	if !exists {
		return 0, false
	}
	userId, ok := v.(int)
	return userId, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorMsg{Error: "Unauthorized"})
}
