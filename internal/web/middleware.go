package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/domain"
	"github.com/NaveenSasalu/organic-farm/pkg/logger"
)

type ctxKey int

const (
	ctxKeyCartID ctxKey = iota
	ctxKeyToken
	ctxKeyRole
	ctxKeyLogger
)

const (
	cartCookieName  = "cart_id"
	tokenCookieName = "access_token"
	roleCookieName  = "user_role"
)

// RequestID tags every request with an id, echoes it back in the response
// header and stores a request-scoped logger in the context.
func RequestID(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := context.WithValue(r.Context(), ctxKeyLogger, logger.WithRequestID(log, requestID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccessLog writes one structured line per request.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		Logger(r.Context()).Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// CartCookie makes sure every visitor carries a cart id. The id is random
// and HttpOnly; the cart content itself lives server-side.
func CartCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartID := ""
		if c, err := r.Cookie(cartCookieName); err == nil && c.Value != "" {
			cartID = c.Value
		} else {
			cartID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     cartCookieName,
				Value:    cartID,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), ctxKeyCartID, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Auth copies the login cookies into the context. The token is opaque here;
// the backend validates it on every API call.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c, err := r.Cookie(tokenCookieName); err == nil && c.Value != "" {
			ctx = context.WithValue(ctx, ctxKeyToken, c.Value)
		}
		if c, err := r.Cookie(roleCookieName); err == nil && c.Value != "" {
			ctx = context.WithValue(ctx, ctxKeyRole, domain.UserRole(c.Value))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth gates the back office: without a token the visitor is sent to
// the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Token(r.Context()) == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin restricts a subtree to the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Role(r.Context()) != domain.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func CartID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKeyCartID).(string); ok {
		return id
	}
	return ""
}

func Token(ctx context.Context) string {
	if t, ok := ctx.Value(ctxKeyToken).(string); ok {
		return t
	}
	return ""
}

func Role(ctx context.Context) domain.UserRole {
	if role, ok := ctx.Value(ctxKeyRole).(domain.UserRole); ok {
		return role
	}
	return ""
}

// Logger returns the request-scoped logger, falling back to a no-op.
func Logger(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKeyLogger).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
