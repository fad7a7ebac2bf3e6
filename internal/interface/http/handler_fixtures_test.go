package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/realworld-go/conduit/internal/application"
	"github.com/realworld-go/conduit/internal/infrastructure/memory"
	"github.com/realworld-go/conduit/internal/interface/middleware"
	"github.com/realworld-go/conduit/pkg/helpers"
	"github.com/realworld-go/conduit/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

// testServer mounts the REST routes the way the router modules do,
// minus the Redis rate limiters, over an in-memory store.
type testServer struct {
	router *gin.Engine
	tokens *helpers.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	tokens := helpers.NewTokenService("handler-secret-0123456789abcdef01", time.Hour)

	userSvc := application.NewUserService(store.Users(), tokens, nil, nil, "", nil, "conduit", "http://localhost:3000")
	profileSvc := application.NewProfileService(store.Users(), nil)
	articleSvc := application.NewArticleService(store.Articles(), store.Users(), store.Favorites(), nil, nil, nil, "")
	commentSvc := application.NewCommentService(store.Comments(), store.Articles(), store.Users(), nil, nil, "conduit", "http://localhost:3000")
	tagSvc := application.NewTagService(store.Tags(), nil, nil)

	uh := NewUserHandler(userSvc, nil)
	ph := NewProfileHandler(profileSvc, nil)
	ah := NewArticleHandler(articleSvc, nil)
	ch := NewCommentHandler(commentSvc, nil)
	th := NewTagHandler(tagSvc, nil)

	r := gin.New()
	api := r.Group("/api")
	optional := middleware.OptionalAuth(tokens)

	api.POST("/users", uh.Register)
	api.POST("/users/login", uh.Login)
	user := api.Group("/user", middleware.Auth(tokens))
	user.GET("", uh.Current)
	user.PUT("", uh.Update)
	user.POST("/image", uh.UploadImage)

	api.GET("/profiles/:username", optional, ph.Get)
	profiles := api.Group("/profiles/:username", middleware.Auth(tokens))
	profiles.POST("/follow", ph.Follow)
	profiles.DELETE("/follow", ph.Unfollow)

	api.GET("/articles", optional, ah.List)
	api.GET("/articles/:slug", optional, ah.Get)
	api.GET("/articles/:slug/comments", optional, ch.List)
	articles := api.Group("/articles", middleware.Auth(tokens))
	articles.GET("/feed", ah.Feed)
	articles.POST("", ah.Create)
	articles.PUT("/:slug", ah.Update)
	articles.DELETE("/:slug", ah.Delete)
	articles.POST("/:slug/favorite", ah.Favorite)
	articles.DELETE("/:slug/favorite", ah.Unfavorite)
	articles.POST("/:slug/comments", ch.Add)
	articles.DELETE("/:slug/comments/:id", ch.Delete)

	api.GET("/tags", th.List)

	return &testServer{router: r, tokens: tokens}
}

// envelope mirrors response.APIResponse with lazy payload decoding.
type envelope struct {
	Status  int               `json:"status"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    map[string]any    `json:"meta"`
	Error   map[string]string `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (s *testServer) decodeData(t *testing.T, env envelope, into any) {
	t.Helper()
	require.NotEmpty(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, into))
}

// register creates an account through the API and returns its token.
func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/users", "", gin.H{
		"user": gin.H{
			"username": username,
			"email":    username + "@example.com",
			"password": "password123",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var view application.UserView
	s.decodeData(t, env, &view)
	require.NotEmpty(t, view.Token)
	return view.Token
}

// createArticle publishes through the API and returns the view.
func (s *testServer) createArticle(t *testing.T, token, title string, tags ...string) application.ArticleView {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/articles", token, gin.H{
		"article": gin.H{
			"title":       title,
			"description": "desc",
			"body":        "body",
			"tagList":     tags,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var view application.ArticleView
	s.decodeData(t, env, &view)
	return view
}
