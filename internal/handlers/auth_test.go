package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/diewo77/case-archive/internal/auth"
	"github.com/diewo77/case-archive/internal/config"
)

func loginReq(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	h := NewAuthHandler(config.Config{AdminPassword: "hunter2", SessionSecret: "secret"})
	w := httptest.NewRecorder()
	h.Login(w, loginReq(`{"password":"hunter2"}`))

	require.Equal(t, http.StatusOK, w.Code)
	c := sessionCookie(w.Result())
	require.NotNil(t, c, "expected %s cookie", auth.CookieName)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.WithinDuration(t, time.Now().Add(auth.SessionTTL), c.Expires, time.Minute)
}

func TestLoginWrongPassword(t *testing.T) {
	h := NewAuthHandler(config.Config{AdminPassword: "hunter2", SessionSecret: "secret"})
	w := httptest.NewRecorder()
	h.Login(w, loginReq(`{"password":"letmein"}`))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "incorrect_password")
	assert.Nil(t, sessionCookie(w.Result()), "failed login must not set a cookie")
}

func TestLoginEmptyPassword(t *testing.T) {
	h := NewAuthHandler(config.Config{AdminPassword: "hunter2", SessionSecret: "secret"})
	w := httptest.NewRecorder()
	h.Login(w, loginReq(`{}`))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w.Result()))
}

// With no password configured at all, login fails closed with a
// condition distinct from a wrong password.
func TestLoginUnconfigured(t *testing.T) {
	h := NewAuthHandler(config.Config{SessionSecret: "secret"})
	w := httptest.NewRecorder()
	h.Login(w, loginReq(`{"password":""}`))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_not_configured")
	assert.Nil(t, sessionCookie(w.Result()))
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func TestLoginAcceptsBcryptHash(t *testing.T) {
	h := NewAuthHandler(config.Config{AdminPasswordHash: mustHash(t, "hunter2"), SessionSecret: "secret"})
	w := httptest.NewRecorder()
	h.Login(w, loginReq(`{"password":"hunter2"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, sessionCookie(w.Result()))
}

func TestLogoutClearsCookie(t *testing.T) {
	h := NewAuthHandler(config.Config{AdminPassword: "hunter2", SessionSecret: "secret"})
	w := httptest.NewRecorder()
	h.Logout(w, httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil))

	require.Equal(t, http.StatusOK, w.Code)
	c := sessionCookie(w.Result())
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}
