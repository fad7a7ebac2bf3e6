package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realworld-go/conduit/internal/container"

	handlers "github.com/realworld-go/conduit/internal/interface/http"
	"github.com/realworld-go/conduit/internal/interface/middleware"
)

// ArticleModule wires the article and comment routes. Reads are public
// with optional token resolution; writes, the personal feed and
// favoriting require a token.

type ArticleModule struct {
	Articles *handlers.ArticleHandler
	Comments *handlers.CommentHandler
}

func NewArticleModule(a *handlers.ArticleHandler, c *handlers.CommentHandler) *ArticleModule {
	return &ArticleModule{Articles: a, Comments: c}
}

func (m *ArticleModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	optional := middleware.OptionalAuth(container.GetTokens())

	rg.GET("/articles", readLimiter, optional, m.Articles.List)
	rg.GET("/articles/search", readLimiter, m.Articles.Search)
	rg.GET("/articles/:slug", readLimiter, optional, m.Articles.Get)
	rg.GET("/articles/:slug/comments", readLimiter, optional, m.Comments.List)

	auth := rg.Group("/articles")
	auth.Use(middleware.Auth(container.GetTokens()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/feed", m.Articles.Feed)
		auth.POST("", m.Articles.Create)
		auth.PUT("/:slug", m.Articles.Update)
		auth.DELETE("/:slug", m.Articles.Delete)
		auth.POST("/:slug/favorite", m.Articles.Favorite)
		auth.DELETE("/:slug/favorite", m.Articles.Unfavorite)
		auth.POST("/:slug/comments", m.Comments.Add)
		auth.DELETE("/:slug/comments/:id", m.Comments.Delete)
	}
}
