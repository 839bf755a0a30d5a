package impl

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"guildchat/internal/domain"
	"guildchat/internal/service"

	"github.com/golang-jwt/jwt/v5"
)

type TokenConfig struct {
	Issuer     string
	Algorithm  string // HS256, HS384 or HS512
	SigningKey []byte
}

type tokenClaims struct {
	Class string `json:"class"`
	jwt.RegisteredClaims
}

type TokenServiceImpl struct {
	cfg    TokenConfig
	method jwt.SigningMethod
	now    func() time.Time
}

// NewTokenService pins the HMAC signing method named by cfg.Algorithm;
// tokens signed with any other method fail verification.
func NewTokenService(cfg TokenConfig) (*TokenServiceImpl, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	if len(cfg.SigningKey) == 0 {
		return nil, fmt.Errorf("empty signing key")
	}
	return &TokenServiceImpl{cfg: cfg, method: method, now: time.Now}, nil
}

func (t *TokenServiceImpl) Issue(subject string, class service.TokenClass, ttl time.Duration) (string, error) {
	now := t.now().UTC()
	claims := tokenClaims{
		Class: string(class),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(t.method, claims).SignedString(t.cfg.SigningKey)
}

// Verify checks signature, expiry, class and subject. Every failure mode
// collapses to domain.ErrInvalidToken; callers never see a partial result.
func (t *TokenServiceImpl) Verify(token string, expected service.TokenClass) (*service.TokenClaims, error) {
	claims := &tokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Class != string(expected) || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return &service.TokenClaims{
		Subject:   claims.Subject,
		Class:     service.TokenClass(claims.Class),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (t *TokenServiceImpl) Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
