package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"guildchat/internal/domain"
	"guildchat/internal/dto"

	"github.com/google/uuid"
)

// stubAuth records which verifier ran and with what token.
type stubAuth struct {
	user        *domain.User
	lastToken   string
	jwtCalls    int
	strictCalls int
}

func (s *stubAuth) Login(context.Context, dto.LoginRequest, string, string) (*dto.LoginResponse, error) {
	return nil, domain.ErrInvalidCredentials
}
func (s *stubAuth) Refresh(context.Context, string) (*dto.TokenResponse, error) {
	return nil, domain.ErrUnauthorized
}
func (s *stubAuth) Logout(context.Context, string) error { return nil }

func (s *stubAuth) VerifyJWT(_ context.Context, token string) (*domain.User, error) {
	s.jwtCalls++
	s.lastToken = token
	if s.user == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.user, nil
}

func (s *stubAuth) VerifyJWTAndSession(_ context.Context, token string) (*domain.User, error) {
	s.strictCalls++
	s.lastToken = token
	if s.user == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.user, nil
}

func echoUser(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			t.Error("no user in request context")
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireAuthAcceptsBearerHeader(t *testing.T) {
	auth := &stubAuth{user: &domain.User{ID: uuid.New(), Username: "alice"}}
	h := RequireAuth(auth)(echoUser(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if auth.lastToken != "header-token" {
		t.Fatalf("token = %q, want header-token", auth.lastToken)
	}
	if auth.jwtCalls != 1 || auth.strictCalls != 0 {
		t.Fatalf("wrong verifier: jwt=%d strict=%d", auth.jwtCalls, auth.strictCalls)
	}
}

// When both the cookie and the Authorization header carry a token, the
// cookie is the one verified.
func TestCookieWinsOverBearerHeader(t *testing.T) {
	auth := &stubAuth{user: &domain.User{ID: uuid.New(), Username: "alice"}}
	h := RequireAuth(auth)(echoUser(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: SessionTokenCookie, Value: "cookie-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if auth.lastToken != "cookie-token" {
		t.Fatalf("token = %q, want cookie-token", auth.lastToken)
	}
}

func TestRequireAuthStrictUsesLedgerVerifier(t *testing.T) {
	auth := &stubAuth{user: &domain.User{ID: uuid.New(), Username: "alice"}}
	h := RequireAuthStrict(auth)(echoUser(t))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if auth.strictCalls != 1 || auth.jwtCalls != 0 {
		t.Fatalf("wrong verifier: jwt=%d strict=%d", auth.jwtCalls, auth.strictCalls)
	}
}

// Missing, malformed, and rejected tokens all collapse to a bare 401.
func TestRequireAuthUniformRejection(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran without authentication")
	})

	cases := map[string]func(*http.Request){
		"no credentials":  func(r *http.Request) {},
		"empty cookie":    func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionTokenCookie, Value: ""}) },
		"wrong scheme":    func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
		"rejected token":  func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
		"rejected cookie": func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionTokenCookie, Value: "nope"}) },
	}
	for name, arm := range cases {
		for mode, mw := range map[string]func(http.Handler) http.Handler{
			"read":   RequireAuth(&stubAuth{}),
			"strict": RequireAuthStrict(&stubAuth{}),
		} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			arm(req)
			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("%s/%s: status = %d, want 401", name, mode, rec.Code)
			}
		}
	}
}
