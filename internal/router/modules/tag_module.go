package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realworld-go/conduit/internal/container"

	handlers "github.com/realworld-go/conduit/internal/interface/http"
	"github.com/realworld-go/conduit/internal/interface/middleware"
)

// TagModule wires GET /api/tags, the public tag cloud.

type TagModule struct {
	Handler *handlers.TagHandler
}

func NewTagModule(h *handlers.TagHandler) *TagModule {
	return &TagModule{Handler: h}
}

func (m *TagModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/tags", readLimiter, m.Handler.List)
}
