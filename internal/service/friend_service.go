package service

import (
	"context"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
)

type FriendService interface {
	// Create runs the friend-creation saga: one edge, two reciprocal
	// memberships, two DM channels, all in a single transaction.
	Create(ctx context.Context, r dto.FriendCreateRequest) (*dto.FriendCreateResponse, error)
	List(ctx context.Context, userID domain.UserID) ([]dto.FriendEntry, error)
}
