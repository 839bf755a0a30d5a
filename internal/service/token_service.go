package service

import "time"

type TokenClass string

const (
	TokenClassAccess  TokenClass = "access"
	TokenClassRefresh TokenClass = "refresh"
)

// TokenClaims is the verified content of a bearer token. Verify returns it
// whole or not at all.
type TokenClaims struct {
	Subject   string
	Class     TokenClass
	ExpiresAt time.Time
}

type TokenService interface {
	Issue(subject string, class TokenClass, ttl time.Duration) (string, error)
	Verify(token string, expected TokenClass) (*TokenClaims, error)
	// Fingerprint is the one-way digest persisted in place of the raw token.
	Fingerprint(token string) string
}
