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

// PostModule wires post routes.
// Public reads: GET /api/posts, GET /api/posts/slug/:slug,
// GET /api/posts/slug-check, GET /api/posts/search,
// GET /api/posts/:id/comments
// Protected writes go through the post ownership guard where the target is
// an existing post.
type PostModule struct {
	Posts    *handlers.PostHandler
	Comments *handlers.CommentHandler
	JWT      *helpers.JWTManager
	Guard    *application.PostOwnershipGuard
}

func NewPostModule(p *handlers.PostHandler, c *handlers.CommentHandler, jwt *helpers.JWTManager, guard *application.PostOwnershipGuard) *PostModule {
	return &PostModule{Posts: p, Comments: c, JWT: jwt, Guard: guard}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP())

	rg.GET("/posts", readLimiter, m.Posts.List)
	rg.GET("/posts/slug/:slug", readLimiter, m.Posts.GetBySlug)
	rg.GET("/posts/slug-check", readLimiter, m.Posts.CheckSlug)
	rg.GET("/posts/search", readLimiter, m.Posts.Search)
	rg.GET("/posts/:id/comments", readLimiter, m.Comments.ListByPost)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/posts", m.Posts.Create)
		auth.POST("/posts/:id/comments", m.Comments.Create)

		owned := auth.Group("/")
		owned.Use(middleware.RequirePostOwnership(m.Guard))
		{
			owned.PUT("/posts/:id", m.Posts.Update)
			owned.DELETE("/posts/:id", m.Posts.Delete)
			owned.POST("/posts/:id/publish", m.Posts.TogglePublish)
		}
	}
}
