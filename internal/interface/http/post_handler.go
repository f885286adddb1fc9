package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inkpress/internal/application"
	"inkpress/pkg/response"
	"inkpress/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Title     string `json:"title" binding:"required,max=255"`
	Slug      string `json:"slug" binding:"required,slug"`
	Markdown  string `json:"markdown" binding:"required"`
	Published bool   `json:"published"`
}

type updatePostRequest struct {
	Title     *string `json:"title" binding:"omitempty,max=255"`
	Slug      *string `json:"slug" binding:"omitempty,slug"`
	Markdown  *string `json:"markdown"`
	Published *bool   `json:"published"`
}

type listPostsQuery struct {
	Page      int    `form:"page" binding:"omitempty,gte=1"`
	Limit     int    `form:"limit" binding:"omitempty,gte=1"`
	AuthorID  *int64 `form:"author_id" binding:"omitempty,gte=1"`
	Published *bool  `form:"published"`
	Search    string `form:"search"`
	Sort      string `form:"sort" binding:"omitempty,postsort"`
	Order     string `form:"order" binding:"omitempty,sortorder"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	post, err := h.Svc.Create(c.Request.Context(), c.GetInt64("userID"), application.CreatePostInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Markdown:  req.Markdown,
		Published: req.Published,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, post, "post created", nil)
}

func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	post, err := h.Svc.Update(c.Request.Context(), postID, application.UpdatePostInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Markdown:  req.Markdown,
		Published: req.Published,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post, "post updated", nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), postID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "post deleted", nil)
}

func (h *PostHandler) TogglePublish(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	post, err := h.Svc.TogglePublish(c.Request.Context(), postID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post, "publish state updated", nil)
}

func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.Svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post, "post", nil)
}

// CheckSlug reports slug availability without requiring authentication.
func (h *PostHandler) CheckSlug(c *gin.Context) {
	available, err := h.Svc.CheckSlug(c.Request.Context(), c.Query("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, map[string]any{"available": available}, "slug availability", nil)
}

func (h *PostHandler) List(c *gin.Context) {
	var q listPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.List(c.Request.Context(), application.ListPostsInput{
		Page:      q.Page,
		Limit:     q.Limit,
		AuthorID:  q.AuthorID,
		Published: q.Published,
		Search:    q.Search,
		Sort:      q.Sort,
		Order:     q.Order,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res.Posts, "posts", response.Pagination{
		Total:      res.Pagination.Total,
		Page:       res.Pagination.Page,
		Limit:      res.Pagination.Limit,
		TotalPages: res.Pagination.TotalPages,
	})
}

// Search queries the Elasticsearch index for published posts.
func (h *PostHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("post search failed")
		}
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}
