package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inkpress/internal/application"
	"inkpress/internal/domain/apperr"
	"inkpress/internal/domain/valueobject"
	"inkpress/pkg/response"
)

// IdentityFrom rebuilds the authenticated identity the Auth middleware stored
// in the context. Returns nil when the request is unauthenticated.
func IdentityFrom(c *gin.Context) *application.Identity {
	uid := c.GetInt64("userID")
	if uid == 0 {
		return nil
	}
	role, err := valueobject.NewRole(c.GetString("userRole"))
	if err != nil {
		return nil
	}
	return &application.Identity{
		UserID: uid,
		Email:  c.GetString("userEmail"),
		Role:   role,
	}
}

func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid id")
	}
	return id, nil
}

// RequirePostOwnership runs the post ownership guard against the :id route
// parameter before the handler executes.
func RequirePostOwnership(guard *application.PostOwnershipGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := idParam(c, "id")
		if err != nil {
			response.AbortFromError(c, err)
			return
		}
		if err := guard.Authorize(c.Request.Context(), IdentityFrom(c), postID); err != nil {
			response.AbortFromError(c, err)
			return
		}
		c.Next()
	}
}

// RequireCommentOwnership runs the comment ownership guard against the :id
// route parameter before the handler executes.
func RequireCommentOwnership(guard *application.CommentOwnershipGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		commentID, err := idParam(c, "id")
		if err != nil {
			response.AbortFromError(c, err)
			return
		}
		if err := guard.Authorize(c.Request.Context(), IdentityFrom(c), commentID); err != nil {
			response.AbortFromError(c, err)
			return
		}
		c.Next()
	}
}
