package impl

import (
	"context"
	"log/slog"
	"time"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
	"guildchat/internal/observability/metrics"
	"guildchat/internal/observability/middleware"
	"guildchat/internal/service"
	"guildchat/internal/store"
)

type AuthConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthServiceImpl struct {
	cfg      AuthConfig
	store    *store.Store
	password service.PasswordService
	tokens   service.TokenService
	now      func() time.Time
}

func NewAuthServiceImpl(cfg AuthConfig, st *store.Store, password service.PasswordService, tokens service.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{
		cfg:      cfg,
		store:    st,
		password: password,
		tokens:   tokens,
		now:      time.Now,
	}
}

// Login verifies the credentials and, on success, mints an access+refresh
// pair and persists their fingerprints as a new session row. The raw
// tokens exist only in the response; the ledger sees fingerprints.
// Unknown username and wrong password are indistinguishable to the caller.
func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.LoginResponse, error) {
	result := "success"
	defer func() { metrics.AuthLoginsTotal.WithLabelValues(result).Inc() }()

	if r.Username == "" || r.Password == "" {
		result = "failure"
		return nil, ErrEmptyCredential
	}

	user, err := a.store.Users().GetByUsername(ctx, r.Username)
	if err != nil {
		result = "failure"
		slog.Debug("login: user lookup failed", "username", r.Username, "error", err)
		return nil, domain.ErrInvalidCredentials
	}
	if !a.password.Verify(user.PasswordHash, r.Password) {
		result = "failure"
		slog.Debug("login: password mismatch", "user_id", user.ID)
		return nil, domain.ErrInvalidCredentials
	}

	now := a.now().UTC()
	access, err := a.tokens.Issue(user.Username, service.TokenClassAccess, a.cfg.AccessTTL)
	if err != nil {
		result = "failure"
		return nil, err
	}
	refresh, err := a.tokens.Issue(user.Username, service.TokenClassRefresh, a.cfg.RefreshTTL)
	if err != nil {
		result = "failure"
		return nil, err
	}

	sess := &domain.Session{
		UserID:           user.ID,
		AccessTokenHash:  a.tokens.Fingerprint(access),
		RefreshTokenHash: a.tokens.Fingerprint(refresh),
		AccessExpiresAt:  now.Add(a.cfg.AccessTTL),
		RefreshExpiresAt: now.Add(a.cfg.RefreshTTL),
		UserAgent:        ua,
		IPAddress:        ip,
		CreatedAt:        now,
	}
	if err := a.store.Sessions().Create(ctx, sess); err != nil {
		result = "failure"
		return nil, err
	}

	metrics.TokensIssuedTotal.WithLabelValues("login", "success").Inc()
	slog.Info("issued token pair",
		"session_id", sess.ID,
		"user_id", user.ID,
		"request_id", middleware.RequestIDFromContext(ctx))

	return &dto.LoginResponse{
		User: dto.UserSummary{
			ID:          user.ID.String(),
			Name:        user.Name,
			Username:    user.Username,
			Description: user.Description,
			CreatedAt:   user.CreatedAt,
		},
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(a.cfg.AccessTTL.Seconds()),
	}, nil
}

// Refresh mints a new access token against a live session. Only the access
// fingerprint and expiry change; the refresh token is reused, not rotated.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	result := "success"
	defer func() { metrics.TokensIssuedTotal.WithLabelValues("refresh", result).Inc() }()

	claims, err := a.tokens.Verify(refreshToken, service.TokenClassRefresh)
	if err != nil {
		result = "failure"
		slog.Debug("refresh: token verification failed", "error", err)
		return nil, domain.ErrUnauthorized
	}

	sess, err := a.store.Sessions().GetByRefreshHash(ctx, a.tokens.Fingerprint(refreshToken))
	if err != nil {
		result = "failure"
		slog.Debug("refresh: session lookup failed", "error", err)
		return nil, domain.ErrUnauthorized
	}
	now := a.now().UTC()
	if sess.Revoked() || now.After(sess.RefreshExpiresAt) {
		result = "failure"
		slog.Debug("refresh: session dead", "session_id", sess.ID, "revoked", sess.Revoked())
		return nil, domain.ErrUnauthorized
	}

	access, err := a.tokens.Issue(claims.Subject, service.TokenClassAccess, a.cfg.AccessTTL)
	if err != nil {
		result = "failure"
		return nil, err
	}
	if err := a.store.Sessions().RotateAccess(ctx, sess.ID, a.tokens.Fingerprint(access), now.Add(a.cfg.AccessTTL)); err != nil {
		result = "failure"
		return nil, err
	}

	slog.Info("refreshed access token",
		"session_id", sess.ID,
		"user_id", sess.UserID,
		"request_id", middleware.RequestIDFromContext(ctx))

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(a.cfg.AccessTTL.Seconds()),
	}, nil
}

// Logout revokes the session behind the presented refresh token. Revoking
// an already-dead or unknown session is a no-op.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := a.tokens.Verify(refreshToken, service.TokenClassRefresh); err != nil {
		return domain.ErrUnauthorized
	}
	sess, err := a.store.Sessions().GetByRefreshHash(ctx, a.tokens.Fingerprint(refreshToken))
	if err != nil {
		if err == store.ErrRecordNotFound {
			return nil
		}
		return err
	}
	return a.store.Sessions().Revoke(ctx, sess.ID, a.now().UTC())
}

// VerifyJWT authenticates from the token alone: signature, expiry, class,
// then a user lookup by subject. The session ledger is not consulted, so a
// revoked session's access token keeps working until it expires.
func (a *AuthServiceImpl) VerifyJWT(ctx context.Context, token string) (*domain.User, error) {
	claims, err := a.tokens.Verify(token, service.TokenClassAccess)
	if err != nil {
		slog.Debug("authenticate: token verification failed", "error", err)
		return nil, domain.ErrUnauthorized
	}
	user, err := a.store.Users().GetByUsername(ctx, claims.Subject)
	if err != nil {
		slog.Debug("authenticate: subject not resolvable", "subject", claims.Subject, "error", err)
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// VerifyJWTAndSession is the deeper mode for mutating paths: the token
// check plus a ledger lookup by the access fingerprint, so revocation
// takes effect before the token's natural expiry.
func (a *AuthServiceImpl) VerifyJWTAndSession(ctx context.Context, token string) (*domain.User, error) {
	user, err := a.VerifyJWT(ctx, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	sess, err := a.store.Sessions().GetByAccessHash(ctx, a.tokens.Fingerprint(token))
	if err != nil {
		slog.Debug("authenticate: no session for access token", "user_id", user.ID, "error", err)
		return nil, domain.ErrUnauthorized
	}
	if sess.Revoked() {
		slog.Debug("authenticate: session revoked", "session_id", sess.ID)
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
