package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/realworld-go/conduit/internal/application"
	"github.com/realworld-go/conduit/internal/interface/middleware"
	"github.com/realworld-go/conduit/pkg/response"
)

// ProfileHandler serves public profiles and the follow relation.
type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

// Get GET /api/profiles/:username
func (h *ProfileHandler) Get(c *gin.Context) {
	viewer := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Get(c.Request.Context(), viewer, c.Param("username"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

// Follow POST /api/profiles/:username/follow
func (h *ProfileHandler) Follow(c *gin.Context) {
	viewer := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Follow(c.Request.Context(), viewer, c.Param("username"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "followed", nil)
}

// Unfollow DELETE /api/profiles/:username/follow
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	viewer := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Unfollow(c.Request.Context(), viewer, c.Param("username"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "unfollowed", nil)
}
