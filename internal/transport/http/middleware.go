package http

import (
	"context"
	"net/http"
	"strings"

	"guildchat/internal/domain"
	"guildchat/internal/service"
)

type ctxKey string

const ctxKeyUser ctxKey = "authenticated_user"

// SessionTokenCookie is the cookie checked before the Authorization
// header; when both carry a token, the cookie wins.
const SessionTokenCookie = "session_token"

func bearerToken(r *http.Request) string {
	if c, err := r.Cookie(SessionTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if rest, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(rest)
	}
	return ""
}

// RequireAuth gates read paths: token-only verification, no ledger lookup.
func RequireAuth(auth service.AuthService) func(http.Handler) http.Handler {
	return requireAuth(auth.VerifyJWT)
}

// RequireAuthStrict gates mutating paths: token verification plus a
// session-ledger check, so revoked sessions are rejected immediately.
func RequireAuthStrict(auth service.AuthService) func(http.Handler) http.Handler {
	return requireAuth(auth.VerifyJWTAndSession)
}

func requireAuth(verify func(ctx context.Context, token string) (*domain.User, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			user, err := verify(r.Context(), token)
			if err != nil {
				// Every failure shape gets the same response.
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(*domain.User)
	return u, ok
}
