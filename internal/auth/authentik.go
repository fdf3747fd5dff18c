package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
)

// AuthentikConfig holds the configuration for Authentik OAuth2/OIDC
type AuthentikConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	// AppSlug is the Authentik application slug used for end-session.
	AppSlug string
}

// AuthentikAuth manages authentication with Authentik
type AuthentikAuth struct {
	config       AuthentikConfig
	oauth2Config *oauth2.Config
	sessions     *sessions
	httpClient   *http.Client
}

// NewAuthentikAuth creates a new Authentik authentication handler
func NewAuthentikAuth(config AuthentikConfig) *AuthentikAuth {
	if len(config.Scopes) == 0 {
		config.Scopes = []string{"openid", "profile", "email"}
	}
	if config.AppSlug == "" {
		config.AppSlug = "ff-draft-assistant"
	}

	return &AuthentikAuth{
		config: config,
		oauth2Config: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURL,
			Scopes:       config.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  config.BaseURL + "/application/o/authorize/",
				TokenURL: config.BaseURL + "/application/o/token/",
			},
		},
		sessions:   newSessions(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// LoginHandler initiates the OAuth2 login flow
func (a *AuthentikAuth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	state := randomString()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})

	http.Redirect(w, r, a.oauth2Config.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// CallbackHandler handles the OAuth2 callback from Authentik
func (a *AuthentikAuth) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil {
		http.Error(w, "Missing state cookie", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	token, err := a.oauth2Config.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		logger.Warn("Authentik token exchange failed", "error", err)
		http.Error(w, "Failed to exchange token", http.StatusBadGateway)
		return
	}

	user, err := a.userInfo(r.Context(), token)
	if err != nil {
		logger.Warn("Authentik userinfo failed", "error", err)
		http.Error(w, "Failed to get user info", http.StatusBadGateway)
		return
	}

	expires := token.Expiry
	if expires.IsZero() {
		expires = time.Now().Add(24 * time.Hour)
	}
	a.sessions.create(w, user, token, expires, true)
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1})

	logger.Info("User logged in", "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LogoutHandler handles user logout
func (a *AuthentikAuth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	a.sessions.destroy(w, r)
	logoutURL := fmt.Sprintf("%s/application/o/%s/end-session/", a.config.BaseURL, a.config.AppSlug)
	http.Redirect(w, r, logoutURL, http.StatusSeeOther)
}

func (a *AuthentikAuth) Middleware(next http.Handler) http.Handler {
	return a.sessions.middleware(next)
}

func (a *AuthentikAuth) userInfo(ctx context.Context, token *oauth2.Token) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.BaseURL+"/application/o/userinfo/", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("failed to get user info: %s - %s", resp.Status, string(body))
	}

	var info struct {
		Sub               string   `json:"sub"`
		Email             string   `json:"email"`
		Name              string   `json:"name"`
		PreferredUsername string   `json:"preferred_username"`
		Groups            []string `json:"groups"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}

	return &User{
		ID:       info.Sub,
		Email:    info.Email,
		Name:     info.Name,
		Username: info.PreferredUsername,
		Groups:   info.Groups,
	}, nil
}

// MockAuth signs everyone in as a local commissioner. Development only.
type MockAuth struct {
	sessions *sessions
	user     User
}

// NewMockAuth creates a new mock authentication handler whose user belongs
// to groups.
func NewMockAuth(groups ...string) *MockAuth {
	return &MockAuth{
		sessions: newSessions(),
		user: User{
			ID:       "dev-user-123",
			Email:    "dev@draft.local",
			Name:     "Dev User",
			Username: "devuser",
			Groups:   append([]string{"users"}, groups...),
		},
	}
}

// LoginHandler creates a session without any credential check.
func (m *MockAuth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	user := m.user
	m.sessions.create(w, &user, nil, m.sessions.now().Add(24*time.Hour), false)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (m *MockAuth) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (m *MockAuth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	m.sessions.destroy(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (m *MockAuth) Middleware(next http.Handler) http.Handler {
	return m.sessions.middleware(next)
}
