package impl

import (
	"testing"
	"time"

	"guildchat/internal/domain"
	"guildchat/internal/service"
)

func TestTokenIssueAndVerify(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue("alice", service.TokenClassAccess, 15*time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := ts.Verify(token, service.TokenClassAccess)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("subject = %q, want alice", claims.Subject)
	}
	if claims.Class != service.TokenClassAccess {
		t.Errorf("class = %q, want access", claims.Class)
	}
	if remaining := time.Until(claims.ExpiresAt); remaining <= 0 || remaining > 15*time.Minute {
		t.Errorf("expiry out of range: %v", claims.ExpiresAt)
	}
}

// A token whose ttl has elapsed is rejected even though its signature is valid.
func TestTokenExpiryRejected(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue("alice", service.TokenClassAccess, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// exp == iat; move the clock past it.
	ts.now = func() time.Time { return time.Now().Add(time.Second) }
	if _, err := ts.Verify(token, service.TokenClassAccess); err != domain.ErrInvalidToken {
		t.Fatalf("verify expired token: err = %v, want ErrInvalidToken", err)
	}
}

// Class isolation: a refresh token never authenticates as access and vice versa.
func TestTokenClassIsolation(t *testing.T) {
	ts := newTestTokenService(t)

	refresh, err := ts.Issue("alice", service.TokenClassRefresh, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ts.Verify(refresh, service.TokenClassAccess); err != domain.ErrInvalidToken {
		t.Fatalf("refresh token accepted as access: err = %v", err)
	}

	access, err := ts.Issue("alice", service.TokenClassAccess, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ts.Verify(access, service.TokenClassRefresh); err != domain.ErrInvalidToken {
		t.Fatalf("access token accepted as refresh: err = %v", err)
	}
}

func TestTokenTamperedSignatureRejected(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue("alice", service.TokenClassAccess, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ts.Verify(tampered, service.TokenClassAccess); err != domain.ErrInvalidToken {
		t.Fatalf("tampered token accepted: err = %v", err)
	}

	other, err := NewTokenService(TokenConfig{
		Issuer:     "guildchat-test",
		Algorithm:  "HS256",
		SigningKey: []byte("a-completely-different-secret!!!"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Verify(token, service.TokenClassAccess); err != domain.ErrInvalidToken {
		t.Fatalf("token signed with another key accepted: err = %v", err)
	}
}

func TestTokenFingerprint(t *testing.T) {
	ts := newTestTokenService(t)

	a, err := ts.Issue("alice", service.TokenClassAccess, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ts.Issue("bob", service.TokenClassAccess, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if ts.Fingerprint(a) != ts.Fingerprint(a) {
		t.Error("fingerprint is not deterministic")
	}
	if ts.Fingerprint(a) == ts.Fingerprint(b) {
		t.Error("distinct tokens share a fingerprint")
	}
	if ts.Fingerprint(a) == a {
		t.Error("fingerprint equals the raw token")
	}
}

func TestTokenServiceRejectsNonHMAC(t *testing.T) {
	if _, err := NewTokenService(TokenConfig{
		Issuer:     "guildchat-test",
		Algorithm:  "RS256",
		SigningKey: []byte("key"),
	}); err == nil {
		t.Fatal("expected an error for a non-HMAC algorithm")
	}
	if _, err := NewTokenService(TokenConfig{
		Issuer:    "guildchat-test",
		Algorithm: "HS256",
	}); err == nil {
		t.Fatal("expected an error for an empty signing key")
	}
}
