package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndValidate(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)

	token, exp, err := ts.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, exp.After(time.Now()))

	uid, ok := ts.Validate(token)
	require.True(t, ok)
	require.Equal(t, "user-1", uid)
}

func TestValidateGarbage(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	token, _, err := ts.Issue("user-1")
	require.NoError(t, err)

	cases := map[string]string{
		"empty":     "",
		"not a jwt": "definitely-not-a-token",
		"reversed":  reverse(token),
		"truncated": token[:len(token)/2],
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			uid, ok := ts.Validate(raw)
			require.False(t, ok)
			require.Empty(t, uid)
		})
	}
}

func TestValidateWrongSecret(t *testing.T) {
	a := NewTokenService(testSecret, time.Hour)
	b := NewTokenService("fedcba9876543210fedcba9876543210", time.Hour)

	token, _, err := a.Issue("user-1")
	require.NoError(t, err)

	_, ok := b.Validate(token)
	require.False(t, ok)
}

func TestValidateExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ts := NewTokenService(testSecret, time.Minute)
	ts.now = func() time.Time { return issued }

	token, exp, err := ts.Issue("user-1")
	require.NoError(t, err)
	require.True(t, exp.Equal(issued.Add(time.Minute)))

	ts.now = func() time.Time { return exp.Add(-time.Second) }
	_, ok := ts.Validate(token)
	require.True(t, ok)

	ts.now = func() time.Time { return exp.Add(time.Second) }
	_, ok = ts.Validate(token)
	require.False(t, ok)
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, ok := ts.Validate(raw)
	require.False(t, ok)
}

func TestValidateRequiresExpiryClaim(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-1",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, ok := ts.Validate(raw)
	require.False(t, ok)
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
