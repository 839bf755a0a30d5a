package service

import (
	"context"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
)

type UserService interface {
	// Register creates the user, their private "@me" guild, and the owner
	// membership in one transaction.
	Register(ctx context.Context, r dto.RegisterRequest) (*dto.RegisterResponse, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserSummary, error)
	UpdateProfile(ctx context.Context, id domain.UserID, r dto.UserUpdateRequest) error
	Delete(ctx context.Context, id domain.UserID) error
}
