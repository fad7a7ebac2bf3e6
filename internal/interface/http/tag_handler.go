package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/realworld-go/conduit/internal/application"
	"github.com/realworld-go/conduit/pkg/response"
)

// TagHandler serves the tag cloud.
type TagHandler struct {
	Svc    *application.TagService
	Logger *logrus.Logger
}

func NewTagHandler(svc *application.TagService, logger *logrus.Logger) *TagHandler {
	return &TagHandler{Svc: svc, Logger: logger}
}

// List GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, tags, "tags", nil)
}
