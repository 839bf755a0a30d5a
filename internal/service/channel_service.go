package service

import (
	"context"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
)

type ChannelService interface {
	GetWithMessages(ctx context.Context, channelID domain.ChannelID) (*dto.ChannelResponse, error)
	// CheckAccess returns domain.ErrForbidden unless userID owns the
	// channel or belongs to one of its referenced guilds.
	CheckAccess(ctx context.Context, userID domain.UserID, channelID domain.ChannelID) error
}
