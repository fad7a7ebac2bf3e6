package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/realworld-go/conduit/internal/application"
)

func TestProfileEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice")
	bobToken := s.register(t, "bob")

	// Anonymous read.
	w, env := s.do(t, http.MethodGet, "/api/profiles/alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p application.Profile
	s.decodeData(t, env, &p)
	require.Equal(t, "alice", p.Username)
	require.False(t, p.Following)

	// Following needs a token.
	w, _ = s.do(t, http.MethodPost, "/api/profiles/alice/follow", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(t, http.MethodPost, "/api/profiles/alice/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	s.decodeData(t, env, &p)
	require.True(t, p.Following)

	// The flag follows the viewer.
	w, env = s.do(t, http.MethodGet, "/api/profiles/alice", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	s.decodeData(t, env, &p)
	require.True(t, p.Following)

	w, env = s.do(t, http.MethodGet, "/api/profiles/alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	s.decodeData(t, env, &p)
	require.False(t, p.Following)

	w, env = s.do(t, http.MethodDelete, "/api/profiles/alice/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	s.decodeData(t, env, &p)
	require.False(t, p.Following)
}

func TestProfileNotFoundEndpoint(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/profiles/ghost", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, env.Success)
}

func TestFollowSelfEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice")

	w, env := s.do(t, http.MethodPost, "/api/profiles/alice/follow", token, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, env.Error, "username")
}
