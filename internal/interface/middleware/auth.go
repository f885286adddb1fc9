package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"inkpress/internal/domain/apperr"
	"inkpress/pkg/helpers"
	"inkpress/pkg/response"
)

// Auth validates the signed credential and puts the caller's identity into
// the Gin context. The token comes from the Authorization header (Bearer)
// with the access_token cookie as a browser-friendly fallback.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			response.AbortFromError(c, apperr.Unauthorized("missing access token"))
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortFromError(c, apperr.Unauthorized("invalid access token"))
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if strings.HasPrefix(h, "Bearer ") {
			return strings.TrimPrefix(h, "Bearer ")
		}
	}
	if tok, err := c.Cookie("access_token"); err == nil {
		return tok
	}
	return ""
}
