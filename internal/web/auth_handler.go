package web

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

// Authenticator is the backend auth surface.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	auth   Authenticator
	carts  cart.Storage
	render *Renderer
}

func NewAuthHandler(auth Authenticator, carts cart.Storage, render *Renderer) *AuthHandler {
	return &AuthHandler{auth: auth, carts: carts, render: render}
}

type loginPage struct {
	basePage
	Email string
	Error string
}

// Show renders the login form. A visitor who already holds a token is sent
// straight to their landing page.
func (h *AuthHandler) Show(w http.ResponseWriter, r *http.Request) {
	if Token(r.Context()) != "" {
		http.Redirect(w, r, landingPage(Role(r.Context())), http.StatusSeeOther)
		return
	}
	page := loginPage{basePage: newBasePage(r.Context(), "Sign in", h.carts)}
	h.render.HTML(w, http.StatusOK, "login.html", page)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	resp, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		Logger(r.Context()).Info("login failed", zap.String("email", email), zap.Error(err))
		page := loginPage{
			basePage: newBasePage(r.Context(), "Sign in", h.carts),
			Email:    email,
			Error:    err.Error(),
		}
		h.render.HTML(w, http.StatusUnauthorized, "login.html", page)
		return
	}

	setSessionCookie(w, tokenCookieName, resp.AccessToken, true)
	setSessionCookie(w, roleCookieName, string(resp.Role), false)
	http.Redirect(w, r, landingPage(resp.Role), http.StatusSeeOther)
}

// Logout invalidates the token server-side on a best-effort basis and
// always clears the local session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := Token(r.Context()); token != "" {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			Logger(r.Context()).Warn("server-side logout failed, clearing local session", zap.Error(err))
		}
	}

	clearCookie(w, tokenCookieName)
	clearCookie(w, roleCookieName)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func landingPage(role domain.UserRole) string {
	if role == domain.RoleAdmin {
		return "/admin/orders"
	}
	return "/admin/inventory"
}

func setSessionCookie(w http.ResponseWriter, name, value string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: httpOnly,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:   name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
