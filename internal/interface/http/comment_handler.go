package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inkpress/internal/application"
	"inkpress/pkg/response"
	"inkpress/pkg/validation"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type createCommentRequest struct {
	Body string `json:"body" binding:"required,max=10000"`
}

type updateCommentRequest struct {
	Body *string `json:"body" binding:"omitempty,max=10000"`
}

type listCommentsQuery struct {
	Page     int    `form:"page" binding:"omitempty,gte=1"`
	Limit    int    `form:"limit" binding:"omitempty,gte=1"`
	AuthorID *int64 `form:"author_id" binding:"omitempty,gte=1"`
	Sort     string `form:"sort" binding:"omitempty,commentsort"`
	Order    string `form:"order" binding:"omitempty,sortorder"`
}

// Create adds a comment under the post named by the :id route parameter.
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	comment, err := h.Svc.Create(c.Request.Context(), postID, c.GetInt64("userID"), req.Body)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, comment, "comment created", nil)
}

func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	comment, err := h.Svc.Update(c.Request.Context(), commentID, req.Body)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comment, "comment updated", nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), commentID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "comment deleted", nil)
}

// ListByPost lists comments under the post named by the :id route parameter.
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	var q listCommentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.ListByPost(c.Request.Context(), postID, application.ListCommentsInput{
		Page:     q.Page,
		Limit:    q.Limit,
		AuthorID: q.AuthorID,
		Sort:     q.Sort,
		Order:    q.Order,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res.Comments, "comments", response.Pagination{
		Total:      res.Pagination.Total,
		Page:       res.Pagination.Page,
		Limit:      res.Pagination.Limit,
		TotalPages: res.Pagination.TotalPages,
	})
}
