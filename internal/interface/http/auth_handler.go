package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inkpress/internal/application"
	"inkpress/pkg/helpers"
	"inkpress/pkg/response"
	"inkpress/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user, "account created", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetToken(c, res.AccessToken, res.ExpiresAt)
	response.Success(c, http.StatusOK, res, "login successful", map[string]any{"expires_at": res.ExpiresAt})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.Svc.GetProfile(c.Request.Context(), c.GetInt64("userID"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "profile", nil)
}

// UploadAvatar accepts a multipart file under the "avatar" field.
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing avatar file", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetInt64("userID"), f,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, map[string]any{"avatar_url": url}, "avatar uploaded", nil)
}
