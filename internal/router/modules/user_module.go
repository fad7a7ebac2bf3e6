package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realworld-go/conduit/internal/container"

	handlers "github.com/realworld-go/conduit/internal/interface/http"
	"github.com/realworld-go/conduit/internal/interface/middleware"
)

// UserModule wires the account routes.
// Public: POST /api/users, POST /api/users/login
// Protected: GET /api/user, PUT /api/user, POST /api/user/image

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Registration and login take the brunt of credential stuffing, so
	// they get their own tight per-IP budgets.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/user")
	auth.Use(middleware.Auth(container.GetTokens()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.Current)
		auth.PUT("", m.Handler.Update)
		auth.POST("/image", m.Handler.UploadImage)
	}
}
