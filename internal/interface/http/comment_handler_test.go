package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/realworld-go/conduit/internal/application"
)

func TestCommentEndpoints(t *testing.T) {
	s := newTestServer(t)
	aliceToken := s.register(t, "alice")
	bobToken := s.register(t, "bob")
	created := s.createArticle(t, aliceToken, "Discussable")

	w, env := s.do(t, http.MethodPost, "/api/articles/"+created.Slug+"/comments", bobToken, gin.H{
		"comment": gin.H{"body": "Great article."},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment application.CommentView
	s.decodeData(t, env, &comment)
	require.Equal(t, "Great article.", comment.Body)
	require.Equal(t, "bob", comment.Author.Username)

	// The thread is public.
	w, env = s.do(t, http.MethodGet, "/api/articles/"+created.Slug+"/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []application.CommentView
	s.decodeData(t, env, &list)
	require.Len(t, list, 1)
	require.Equal(t, comment.ID, list[0].ID)

	// Deleting takes the comment author or the article author.
	carolToken := s.register(t, "carol")
	w, _ = s.do(t, http.MethodDelete, "/api/articles/"+created.Slug+"/comments/"+comment.ID, carolToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodDelete, "/api/articles/"+created.Slug+"/comments/"+comment.ID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/articles/"+created.Slug+"/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	s.decodeData(t, env, &list)
	require.Empty(t, list)
}

func TestAddCommentValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice")
	created := s.createArticle(t, token, "Discussable")

	w, env := s.do(t, http.MethodPost, "/api/articles/"+created.Slug+"/comments", token, gin.H{
		"comment": gin.H{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, env.Error, "body")
}

func TestAddCommentUnknownArticleEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice")

	w, env := s.do(t, http.MethodPost, "/api/articles/no-such-slug/comments", token, gin.H{
		"comment": gin.H{"body": "hello?"},
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, env.Success)
}
