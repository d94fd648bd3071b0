package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T, secret string) *Guard {
	t.Helper()
	g := NewGuard(newTestVerifier(t, secret), "")
	g.now = func() time.Time { return testNow }
	return g
}

// protectedPath is the route the middleware tests mount the guard on.
const protectedPath = "/posts"

func requestWithCookie(name, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, protectedPath, nil)
	req.AddCookie(&http.Cookie{Name: name, Value: value})
	return req
}

func TestAuthenticate_NoCookie(t *testing.T) {
	g := newTestGuard(t, "S")

	res := g.Authenticate(httptest.NewRequest(http.MethodGet, protectedPath, nil))
	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, ErrMissingCredential)
	assert.NotErrorIs(t, res.Err, ErrInvalidCredential)
}

func TestAuthenticate_EmptyCookieCountsAsMissing(t *testing.T) {
	g := newTestGuard(t, "S")

	res := g.Authenticate(requestWithCookie(DefaultCookieName, ""))
	assert.ErrorIs(t, res.Err, ErrMissingCredential)
}

func TestAuthenticate_OtherCookiesIgnored(t *testing.T) {
	g := newTestGuard(t, "S")
	tok := sign(t, jwt.SigningMethodHS256, "S", userClaims("u123", testNow.Add(time.Hour)))

	res := g.Authenticate(requestWithCookie("session", tok))
	assert.ErrorIs(t, res.Err, ErrMissingCredential)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	g := newTestGuard(t, "S")
	tok := sign(t, jwt.SigningMethodHS256, "S", userClaims("u123", testNow.Add(time.Hour)))

	res := g.Authenticate(requestWithCookie(DefaultCookieName, tok))
	require.True(t, res.OK())
	assert.Equal(t, "u123", res.Identity.SubjectID)
}

func TestAuthenticate_CustomCookieName(t *testing.T) {
	g := NewGuard(newTestVerifier(t, "S"), "sid")
	g.now = func() time.Time { return testNow }
	tok := sign(t, jwt.SigningMethodHS256, "S", userClaims("u123", testNow.Add(time.Hour)))

	assert.True(t, g.Authenticate(requestWithCookie("sid", tok)).OK())
	assert.False(t, g.Authenticate(requestWithCookie(DefaultCookieName, tok)).OK())
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	g := newTestGuard(t, "S")
	tok := sign(t, jwt.SigningMethodHS256, "T", userClaims("u123", testNow.Add(time.Hour)))

	res := g.Authenticate(requestWithCookie(DefaultCookieName, tok))
	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, ErrInvalidCredential)
	assert.Empty(t, res.Identity.SubjectID)
}

func TestAuthenticate_SameTokenTwice(t *testing.T) {
	g := newTestGuard(t, "S")
	tok := sign(t, jwt.SigningMethodHS256, "S", userClaims("u123", testNow.Add(time.Hour)))

	first := g.Authenticate(requestWithCookie(DefaultCookieName, tok))
	second := g.Authenticate(requestWithCookie(DefaultCookieName, tok))
	assert.Equal(t, first, second)
	assert.True(t, second.OK())
}

func TestIdentityContext(t *testing.T) {
	_, err := SubjectID(context.Background())
	assert.Error(t, err)

	ctx := WithIdentity(context.Background(), Identity{SubjectID: "u1"})
	id, err := SubjectID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	_, ok := IdentityFrom(WithIdentity(context.Background(), Identity{}))
	assert.False(t, ok)
}
