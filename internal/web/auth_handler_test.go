package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

type stubAuth struct {
	resp        *domain.LoginResponse
	loginErr    error
	logoutToken string
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	return s.resp, s.loginErr
}

func (s *stubAuth) Logout(ctx context.Context, token string) error {
	s.logoutToken = token
	return nil
}

func newAuthHandler(t *testing.T, auth Authenticator) *AuthHandler {
	t.Helper()
	return NewAuthHandler(auth, cart.NewMemoryStorage(), testRenderer(t))
}

func TestLoginPageRedirectsAuthenticated(t *testing.T) {
	cases := []struct {
		role     string
		location string
	}{
		{"admin", "/admin/orders"},
		{"farmer", "/admin/inventory"},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			h := newAuthHandler(t, &stubAuth{})

			req := httptest.NewRequest(http.MethodGet, "/login", nil)
			req.AddCookie(&http.Cookie{Name: "access_token", Value: "tok-123"})
			req.AddCookie(&http.Cookie{Name: "user_role", Value: tc.role})

			rec := httptest.NewRecorder()
			Auth(http.HandlerFunc(h.Show)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
		})
	}
}

func TestLoginPageRendersForAnonymous(t *testing.T) {
	h := newAuthHandler(t, &stubAuth{})

	rec := httptest.NewRecorder()
	h.Show(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
}

func TestLoginSetsSessionCookies(t *testing.T) {
	h := newAuthHandler(t, &stubAuth{resp: &domain.LoginResponse{
		AccessToken: "tok-456",
		TokenType:   "bearer",
		Role:        domain.RoleAdmin,
		Email:       "admin@kaayaka.in",
	}})

	form := url.Values{"email": {"admin@kaayaka.in"}, "password": {"StrongPass1"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/orders", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	byName := make(map[string]*http.Cookie, len(cookies))
	for _, c := range cookies {
		byName[c.Name] = c
	}

	token := byName["access_token"]
	require.NotNil(t, token)
	assert.Equal(t, "tok-456", token.Value)
	assert.True(t, token.HttpOnly)

	role := byName["user_role"]
	require.NotNil(t, role)
	assert.Equal(t, "admin", role.Value)
}

func TestLoginFailureRerendersForm(t *testing.T) {
	h := newAuthHandler(t, &stubAuth{loginErr: errors.New("Incorrect username or password")})

	form := url.Values{"email": {"admin@kaayaka.in"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Incorrect username or password")
	// The email the visitor typed survives the round trip.
	assert.Contains(t, body, "admin@kaayaka.in")
}

func TestLogoutClearsSessionCookies(t *testing.T) {
	auth := &stubAuth{}
	h := newAuthHandler(t, auth)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "tok-789"})
	rec := httptest.NewRecorder()
	Auth(http.HandlerFunc(h.Logout)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "tok-789", auth.logoutToken, "token must be invalidated server-side")

	for _, c := range rec.Result().Cookies() {
		if c.Name == "access_token" || c.Name == "user_role" {
			assert.Negative(t, c.MaxAge, "cookie %s must be expired", c.Name)
		}
	}
}
