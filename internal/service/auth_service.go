package service

import (
	"context"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
)

type AuthService interface {
	Login(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	// VerifyJWT authenticates a request from the token alone (read paths).
	// A revoked session keeps passing this check until the access token's
	// natural expiry; that gap is bounded by the short access TTL.
	VerifyJWT(ctx context.Context, token string) (*domain.User, error)

	// VerifyJWTAndSession additionally checks the session ledger by the
	// access token's fingerprint (mutating paths), rejecting revoked or
	// missing sessions immediately.
	VerifyJWTAndSession(ctx context.Context, token string) (*domain.User, error)
}
