package service

import (
	"context"

	"guildchat/internal/dto"
)

type MessageService interface {
	// Create appends the message and advances the channel's last-message
	// pointer in one transaction.
	Create(ctx context.Context, r dto.MessageCreateRequest) (*dto.MessageResponse, error)
}
