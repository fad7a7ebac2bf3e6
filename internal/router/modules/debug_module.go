package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realworld-go/conduit/internal/container"
	"github.com/realworld-go/conduit/internal/interface/middleware"
)

// DebugModule exposes process counters at GET /api/debug/vars. It is
// only added to the registry when DEBUG_METRICS_ENABLED is set.

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
