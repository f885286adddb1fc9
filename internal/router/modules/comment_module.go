package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"inkpress/internal/application"
	"inkpress/internal/container"
	handlers "inkpress/internal/interface/http"
	"inkpress/internal/interface/middleware"
	"inkpress/pkg/helpers"
)

// CommentModule wires comment mutation routes. Every route goes through the
// comment ownership guard, which admits admins, the comment's author and the
// parent post's author.
type CommentModule struct {
	Handler *handlers.CommentHandler
	JWT     *helpers.JWTManager
	Guard   *application.CommentOwnershipGuard
}

func NewCommentModule(h *handlers.CommentHandler, jwt *helpers.JWTManager, guard *application.CommentOwnershipGuard) *CommentModule {
	return &CommentModule{Handler: h, JWT: jwt, Guard: guard}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	auth.Use(middleware.RequireCommentOwnership(m.Guard))
	{
		auth.PUT("/comments/:id", m.Handler.Update)
		auth.DELETE("/comments/:id", m.Handler.Delete)
	}
}
