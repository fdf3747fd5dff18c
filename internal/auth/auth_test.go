package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, p Provider) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	p.LoginHandler(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func protected(p Provider, group string) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(UserFrom(r.Context()).Username))
	})
	if group == "" {
		return p.Middleware(ok)
	}
	return p.Middleware(RequireGroup(group)(ok))
}

func TestMockAuthSession(t *testing.T) {
	m := NewMockAuth("commissioners")
	cookie := login(t, m)

	req := httptest.NewRequest(http.MethodPost, "/api/draft/reset", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	protected(m, "commissioners").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "devuser", rec.Body.String())
}

func TestMiddlewareRejectsMissingSession(t *testing.T) {
	m := NewMockAuth()
	rec := httptest.NewRecorder()
	protected(m, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsExpiredSession(t *testing.T) {
	m := NewMockAuth()
	cookie := login(t, m)
	m.sessions.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	protected(m, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireGroupForbidsOtherUsers(t *testing.T) {
	m := NewMockAuth()
	cookie := login(t, m)

	req := httptest.NewRequest(http.MethodPost, "/api/rankings/cache/clear", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	protected(m, "commissioners").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogoutDropsSession(t *testing.T) {
	m := NewMockAuth()
	cookie := login(t, m)

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	req.AddCookie(cookie)
	m.LogoutHandler(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	protected(m, "").ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthentikLoginRedirect(t *testing.T) {
	a := NewAuthentikAuth(AuthentikConfig{
		BaseURL:     "https://sso.example.com",
		ClientID:    "draft",
		RedirectURL: "http://localhost:3000/auth/callback",
	})

	rec := httptest.NewRecorder()
	a.LoginHandler(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	loc := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "https://sso.example.com/application/o/authorize/"), loc)
	assert.Contains(t, loc, "client_id=draft")
}

func TestAuthentikCallbackStateMismatch(t *testing.T) {
	a := NewAuthentikAuth(AuthentikConfig{BaseURL: "https://sso.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=forged&code=x", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "real"})
	rec := httptest.NewRecorder()
	a.CallbackHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthentikCallbackCreatesSession(t *testing.T) {
	idp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/application/o/token/":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
		case "/application/o/userinfo/":
			if r.Header.Get("Authorization") != "Bearer tok" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"sub":"42","preferred_username":"commish","groups":["commissioners"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer idp.Close()

	a := NewAuthentikAuth(AuthentikConfig{BaseURL: idp.URL, ClientID: "draft", ClientSecret: "s"})

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=abc&code=xyz", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "abc"})
	rec := httptest.NewRecorder()
	a.CallbackHandler(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)

	req = httptest.NewRequest(http.MethodPost, "/api/draft/reset", nil)
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	protected(a, "commissioners").ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "commish", rec.Body.String())
}
