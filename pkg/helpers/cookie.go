package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieManager mirrors the login token into an HttpOnly cookie so browser
// clients don't have to store it themselves. API clients keep using the
// Authorization header.
type CookieManager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

func (m *CookieManager) SetToken(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", token, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
