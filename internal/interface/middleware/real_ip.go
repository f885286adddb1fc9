package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP resolves the client IP behind proxies: first X-Forwarded-For hop,
// then X-Real-IP, then the socket address. The result is stored in the Gin
// context for rate limiting and logging.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ""
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			ip = strings.TrimSpace(parts[0])
		}
		if ip == "" {
			ip = c.GetHeader("X-Real-IP")
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set("real_ip", ip)
		c.Next()
	}
}
