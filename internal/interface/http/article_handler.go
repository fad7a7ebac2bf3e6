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

// ArticleHandler serves the article CRUD, feed, favorites and search
// endpoints. Reads are public; the viewer identity, when present, only
// changes the favorited/following flags in the views.
type ArticleHandler struct {
	Svc    *application.ArticleService
	Logger *logrus.Logger
}

func NewArticleHandler(svc *application.ArticleService, logger *logrus.Logger) *ArticleHandler {
	return &ArticleHandler{Svc: svc, Logger: logger}
}

type createArticleRequest struct {
	Article struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Body        string   `json:"body" binding:"required"`
		TagList     []string `json:"tagList"`
	} `json:"article" binding:"required"`
}

// updateArticleRequest fields are pointers: absent keeps the current
// value, and an empty body ({"article":{}}) is a legal touch.
type updateArticleRequest struct {
	Article struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Body        *string `json:"body"`
	} `json:"article"`
}

type listArticlesQuery struct {
	Tag       string `form:"tag"`
	Author    string `form:"author"`
	Favorited string `form:"favorited"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

type feedQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// List GET /api/articles
func (h *ArticleHandler) List(c *gin.Context) {
	var q listArticlesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	viewer := c.GetString(middleware.CtxUserIDKey)
	views, total, err := h.Svc.List(c.Request.Context(), viewer, application.ListArticlesInput{
		Tag:         q.Tag,
		Author:      q.Author,
		FavoritedBy: q.Favorited,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, views, "articles", map[string]any{"articlesCount": total})
}

// Feed GET /api/articles/feed
func (h *ArticleHandler) Feed(c *gin.Context) {
	var q feedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	viewer := c.GetString(middleware.CtxUserIDKey)
	views, total, err := h.Svc.Feed(c.Request.Context(), viewer, q.Limit, q.Offset)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, views, "feed", map[string]any{"articlesCount": total})
}

// Get GET /api/articles/:slug
func (h *ArticleHandler) Get(c *gin.Context) {
	viewer := c.GetString(middleware.CtxUserIDKey)
	view, err := h.Svc.Get(c.Request.Context(), viewer, c.Param("slug"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, view, "article", nil)
}

// Create POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	author := c.GetString(middleware.CtxUserIDKey)
	view, err := h.Svc.Create(c.Request.Context(), author, application.CreateArticleInput{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		TagList:     req.Article.TagList,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, view, "article created", nil)
}

// Update PUT /api/articles/:slug
func (h *ArticleHandler) Update(c *gin.Context) {
	var req updateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	actor := c.GetString(middleware.CtxUserIDKey)
	view, err := h.Svc.Update(c.Request.Context(), actor, c.Param("slug"), application.UpdateArticleInput{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, view, "article updated", nil)
}

// Delete DELETE /api/articles/:slug
func (h *ArticleHandler) Delete(c *gin.Context) {
	actor := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), actor, c.Param("slug")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "article deleted", nil)
}

// Favorite POST /api/articles/:slug/favorite
func (h *ArticleHandler) Favorite(c *gin.Context) {
	viewer := c.GetString(middleware.CtxUserIDKey)
	view, err := h.Svc.Favorite(c.Request.Context(), viewer, c.Param("slug"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, view, "favorited", nil)
}

// Unfavorite DELETE /api/articles/:slug/favorite
func (h *ArticleHandler) Unfavorite(c *gin.Context) {
	viewer := c.GetString(middleware.CtxUserIDKey)
	view, err := h.Svc.Unfavorite(c.Request.Context(), viewer, c.Param("slug"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, view, "unfavorited", nil)
}

// Search GET /api/articles/search?q=...&limit=...
func (h *ArticleHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	var limits feedQuery
	_ = c.ShouldBindQuery(&limits)
	hits, err := h.Svc.Search(c.Request.Context(), q, limits.Limit)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
