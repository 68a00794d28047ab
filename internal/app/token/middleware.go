package token

import (
	"context"
	"net/http"
	"strings"

	"accountd/internal/app/account"
	"accountd/internal/pkg/errs"
	"accountd/internal/pkg/logx"
	"accountd/internal/pkg/resp"
)

// Define Context Key for storing the Session struct, preventing key collisions with other packages.
type contextKey string

// contextSessionKey is the key used to store the resolved Session in the request Context.
const contextSessionKey contextKey = "auth_session"

// Session is the resolved identity attached to an authenticated request:
// the loaded user together with the exact token string that proved it.
// Handlers need the token so that logout can revoke only the current session.
type Session struct {
	User  *account.User
	Token string
}

// Middleware gates requests behind bearer authentication. A missing or
// malformed Authorization header, a token that fails verification, a user
// that no longer exists, or a revoked token all end the request with 401;
// the wrapped handler never runs. On success the Session is injected into
// the request Context. The middleware itself never mutates state.
func (s *Service) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			u, err := s.Authenticate(r.Context(), tokenString)
			if err != nil {
				logx.Warn("Rejected bearer token", "path", r.URL.Path, "error", err)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), contextSessionKey, &Session{
				User:  u,
				Token: tokenString,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the authenticated Session from the request
// Context. Behind Middleware it is always present; a nil return means the
// route was wired without authentication.
func SessionFromContext(r *http.Request) *Session {
	sess, ok := r.Context().Value(contextSessionKey).(*Session)
	if !ok {
		return nil
	}
	return sess
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
