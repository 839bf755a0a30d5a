package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
	"guildchat/internal/observability/metrics"
	"guildchat/internal/service"
	"guildchat/internal/store"
)

type UserServiceImpl struct {
	store    *store.Store
	password service.PasswordService
	now      func() time.Time
}

func NewUserServiceImpl(st *store.Store, password service.PasswordService) *UserServiceImpl {
	return &UserServiceImpl{store: st, password: password, now: time.Now}
}

// Register creates the user, their private "@me" guild, and the owner
// membership in one transaction. The private guild anchors every DM
// channel the friend saga will later create for this user.
func (u *UserServiceImpl) Register(ctx context.Context, r dto.RegisterRequest) (*dto.RegisterResponse, error) {
	result := "success"
	defer func() { metrics.AuthRegistrationsTotal.WithLabelValues(result).Inc() }()

	if r.Username == "" || r.Email == "" || r.Name == "" {
		result = "failure"
		return nil, ErrEmptyCredential
	}
	if len(r.Password) < 8 {
		result = "failure"
		return nil, ErrPasswordLength
	}

	// Hashing is CPU-bound; keep it outside the transaction.
	hash, err := u.password.Hash(r.Password)
	if err != nil {
		result = "failure"
		return nil, err
	}

	var (
		user  *domain.User
		guild *domain.Guild
	)
	err = u.store.WithTx(ctx, func(tx *store.Store) error {
		now := u.now().UTC()
		user = &domain.User{
			Name:         r.Name,
			Username:     r.Username,
			Email:        r.Email,
			PasswordHash: hash,
			Description:  r.Description,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("creating user: %w", err)
		}

		guild = &domain.Guild{
			Name:        domain.PrivateGuildName,
			OwnerUserID: user.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Guilds().Create(ctx, guild); err != nil {
			return fmt.Errorf("creating private guild: %w", err)
		}

		if err := tx.GuildMembers().Create(ctx, &domain.GuildMember{
			GuildID:   guild.ID,
			UserID:    user.ID,
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("creating owner membership: %w", err)
		}
		return nil
	})
	if err != nil {
		result = "failure"
		slog.Warn("registration rolled back", "username", r.Username, "error", err)
		return nil, err
	}

	slog.Info("registered user", "user_id", user.ID, "guild_id", guild.ID)

	return &dto.RegisterResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Username:    user.Username,
		Email:       user.Email,
		Description: user.Description,
		GuildID:     guild.ID.String(),
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (u *UserServiceImpl) GetByUsername(ctx context.Context, username string) (*dto.UserSummary, error) {
	user, err := u.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if err == store.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &dto.UserSummary{
		ID:          user.ID.String(),
		Name:        user.Name,
		Username:    user.Username,
		Description: user.Description,
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (u *UserServiceImpl) UpdateProfile(ctx context.Context, id domain.UserID, r dto.UserUpdateRequest) error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if err := u.store.Users().UpdateProfile(ctx, id, r.Name, r.Description); err != nil {
		if err == store.ErrRecordNotFound {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (u *UserServiceImpl) Delete(ctx context.Context, id domain.UserID) error {
	if err := u.store.Users().SoftDelete(ctx, id); err != nil {
		if err == store.ErrRecordNotFound {
			return domain.ErrUserNotFound
		}
		return err
	}
	// Dead users should not keep live sessions.
	if _, err := u.store.Sessions().RevokeAllForUser(ctx, id, u.now().UTC()); err != nil {
		return err
	}
	return nil
}
