package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/realworld-go/conduit/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testTokens() *helpers.TokenService {
	return helpers.NewTokenService("middleware-secret-0123456789abcdef", time.Hour)
}

// probe mounts mw before a handler that echoes the resolved user id.
func probe(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/probe", mw, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return r
}

func getProbe(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenFromHeader(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"token scheme", "Token abc.def.ghi", "abc.def.ghi"},
		{"bearer scheme", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"case insensitive scheme", "token abc.def.ghi", "abc.def.ghi"},
		{"surrounding space", "  Token abc.def.ghi  ", "abc.def.ghi"},
		{"no scheme", "abc.def.ghi", ""},
		{"scheme only", "Token ", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			require.Equal(t, tc.want, TokenFromHeader(c))
		})
	}
}

func TestAuthRequiresToken(t *testing.T) {
	r := probe(Auth(testTokens()))

	w := getProbe(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = getProbe(r, "Token not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	expired := helpers.NewTokenService("middleware-secret-0123456789abcdef", -time.Minute)
	token, _, err := expired.Issue("user-1")
	require.NoError(t, err)

	r := probe(Auth(testTokens()))
	w := getProbe(r, "Token "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthPassesUserID(t *testing.T) {
	tokens := testTokens()
	token, _, err := tokens.Issue("user-42")
	require.NoError(t, err)

	r := probe(Auth(tokens))

	w := getProbe(r, "Token "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "user-42", w.Body.String())

	w = getProbe(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "user-42", w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	tokens := testTokens()
	token, _, err := tokens.Issue("user-42")
	require.NoError(t, err)

	r := probe(OptionalAuth(tokens))

	// Anonymous requests pass with no identity.
	w := getProbe(r, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())

	// A bad token does not block the request either.
	w = getProbe(r, "Token garbage")
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())

	w = getProbe(r, "Token "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "user-42", w.Body.String())
}
