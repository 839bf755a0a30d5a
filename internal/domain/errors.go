package domain

import "errors"

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong
	// password" so callers cannot tell which credential failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is the single outcome of every request-authentication
	// failure: missing token, bad signature, expiry, wrong class, revoked
	// session. The specific cause is logged, never returned.
	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidToken = errors.New("invalid token")

	ErrUserNotFound    = errors.New("user not found")
	ErrChannelNotFound = errors.New("channel not found")
	ErrGuildNotFound   = errors.New("guild not found")

	ErrForbidden = errors.New("forbidden")
)
