package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/realworld-go/conduit/internal/application"
	"github.com/realworld-go/conduit/internal/interface/middleware"
	"github.com/realworld-go/conduit/pkg/response"
	"github.com/realworld-go/conduit/pkg/validation"
)

// CommentHandler serves the comment thread under each article.
type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type addCommentRequest struct {
	Comment struct {
		Body string `json:"body" binding:"required"`
	} `json:"comment" binding:"required"`
}

// List GET /api/articles/:slug/comments
func (h *CommentHandler) List(c *gin.Context) {
	viewer := c.GetString(middleware.CtxUserIDKey)
	views, err := h.Svc.List(c.Request.Context(), viewer, c.Param("slug"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, views, "comments", nil)
}

// Add POST /api/articles/:slug/comments
func (h *CommentHandler) Add(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	author := c.GetString(middleware.CtxUserIDKey)
	view, err := h.Svc.Add(c.Request.Context(), author, c.Param("slug"), req.Comment.Body)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, view, "comment added", nil)
}

// Delete DELETE /api/articles/:slug/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	actor := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), actor, c.Param("slug"), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "comment deleted", nil)
}
