package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realworld-go/conduit/internal/container"

	handlers "github.com/realworld-go/conduit/internal/interface/http"
	"github.com/realworld-go/conduit/internal/interface/middleware"
)

// ProfileModule wires the public profile and follow routes.
// Public: GET /api/profiles/:username
// Protected: POST and DELETE /api/profiles/:username/follow

type ProfileModule struct {
	Handler *handlers.ProfileHandler
}

func NewProfileModule(h *handlers.ProfileHandler) *ProfileModule {
	return &ProfileModule{Handler: h}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	// The following flag in the payload depends on who is asking, so the
	// read route resolves the token when one is present.
	rg.GET("/profiles/:username", readLimiter, middleware.OptionalAuth(container.GetTokens()), m.Handler.Get)

	auth := rg.Group("/profiles/:username")
	auth.Use(middleware.Auth(container.GetTokens()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/follow", m.Handler.Follow)
		auth.DELETE("/follow", m.Handler.Unfollow)
	}
}
