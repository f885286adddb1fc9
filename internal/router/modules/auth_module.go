package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"inkpress/internal/container"
	handlers "inkpress/internal/interface/http"
	"inkpress/internal/interface/middleware"
	"inkpress/pkg/helpers"
)

// AuthModule wires account routes.
// Public: POST /api/register, POST /api/login
// Protected: POST /api/logout, GET /api/profile, POST /api/profile/avatar
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public with strict IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
	}
}
