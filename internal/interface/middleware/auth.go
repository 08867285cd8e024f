package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"expense-tracker-api/pkg/helpers"
	"expense-tracker-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth resolves the bearer credential to a user id and injects it into
// the Gin context. The token is read from the Authorization header
// first, then from the access_token cookie for browser clients.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if t, err := c.Cookie("access_token"); err == nil {
		return t
	}
	return ""
}
