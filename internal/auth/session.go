package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

const sessionCookie = "session_id"

// User represents an authenticated user
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Groups   []string `json:"groups"`
}

// Session represents a user session
type Session struct {
	ID        string
	User      *User
	Token     *oauth2.Token
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Provider is a common interface for authentication providers
type Provider interface {
	LoginHandler(w http.ResponseWriter, r *http.Request)
	CallbackHandler(w http.ResponseWriter, r *http.Request)
	LogoutHandler(w http.ResponseWriter, r *http.Request)
	// Middleware rejects requests without a live session.
	Middleware(next http.Handler) http.Handler
}

type ctxKey struct{}

// WithUser returns a context carrying user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFrom retrieves the authenticated user from a context.
func UserFrom(ctx context.Context) *User {
	user, _ := ctx.Value(ctxKey{}).(*User)
	return user
}

// InGroup checks whether user belongs to group.
func InGroup(user *User, group string) bool {
	return user != nil && slices.Contains(user.Groups, group)
}

// RequireGroup lets through only users in group; it must run after a
// provider's Middleware.
func RequireGroup(group string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !InGroup(UserFrom(r.Context()), group) {
				writeError(w, http.StatusForbidden, "commissioner access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sessions is the in-memory session table shared by both providers.
type sessions struct {
	mu   sync.RWMutex
	byID map[string]*Session
	now  func() time.Time
}

func newSessions() *sessions {
	return &sessions{byID: make(map[string]*Session), now: time.Now}
}

func (s *sessions) create(w http.ResponseWriter, user *User, token *oauth2.Token, expires time.Time, secure bool) *Session {
	session := &Session{
		ID:        randomString(),
		User:      user,
		Token:     token,
		CreatedAt: s.now(),
		ExpiresAt: expires,
	}

	s.mu.Lock()
	s.byID[session.ID] = session
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
	return session
}

func (s *sessions) lookup(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}

	s.mu.RLock()
	session, ok := s.byID[cookie.Value]
	s.mu.RUnlock()

	if !ok || s.now().After(session.ExpiresAt) {
		return nil, false
	}
	return session, true
}

func (s *sessions) destroy(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.byID, cookie.Value)
		s.mu.Unlock()
	}

	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

func (s *sessions) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.lookup(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), session.User)))
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func randomString() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
