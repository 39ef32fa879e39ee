// internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/tenderdesk/tenderdesk/internal/auth"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/model"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "td_session"

type contextKey string

const (
	principalKey contextKey = "principal"
	userKey      contextKey = "user"
	tenantKey    contextKey = "tenant"
)

// TokenValidator checks a session token and returns the principal in it.
type TokenValidator interface {
	Validate(token string) (*auth.Principal, error)
}

// UserAuthenticator maps a principal onto a known user.
type UserAuthenticator interface {
	Authenticate(ctx context.Context, p auth.Principal) (*model.User, error)
}

// RequirePrincipal validates the session token and stores the principal on
// the request context. It does not require the user to exist yet.
func RequirePrincipal(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				respondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "No session token")
				return
			}

			principal, err := tokens.Validate(token)
			if err != nil {
				slog.InfoContext(r.Context(), "Rejected session token", "error", err, "requestID", chmw.GetReqID(r.Context()))
				respondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid session token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate validates the session token and loads the user behind it.
// Principals that never logged in are refused.
func Authenticate(tokens TokenValidator, users UserAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequirePrincipal(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())

			user, err := users.Authenticate(r.Context(), *principal)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					respondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unknown user, log in first")
					return
				}
				slog.ErrorContext(r.Context(), "Authenticating user failed", "error", err, "requestID", chmw.GetReqID(r.Context()))
				respondWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		}))
	}
}

func sessionToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func PrincipalFromContext(ctx context.Context) *auth.Principal {
	p, _ := ctx.Value(principalKey).(*auth.Principal)
	return p
}

func UserFromContext(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}

// WithUser returns a copy of ctx carrying user. Used by tests and by the
// login handler once the user row exists.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

type errorBody struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"error_code"`
}

// respondWithError writes the same envelope the handlers use.
func respondWithError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message, Code: code})
}
