package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
	"guildchat/internal/observability/metrics"
	"guildchat/internal/store"

	"github.com/google/uuid"
)

type MessageServiceImpl struct {
	store *store.Store
	now   func() time.Time
}

func NewMessageServiceImpl(st *store.Store) *MessageServiceImpl {
	return &MessageServiceImpl{store: st, now: time.Now}
}

// Create appends a message and advances the channel's last-message pointer
// as one transaction: either both writes land or neither does. A missing
// channel is reported as domain.ErrChannelNotFound, not as a storage error.
func (m *MessageServiceImpl) Create(ctx context.Context, r dto.MessageCreateRequest) (*dto.MessageResponse, error) {
	result := "success"
	defer func() { metrics.MessagesCreatedTotal.WithLabelValues(result).Inc() }()

	channelID, err := uuid.Parse(r.ChannelID)
	if err != nil {
		result = "failure"
		return nil, fmt.Errorf("%w: invalid channelId", ErrInvalidRequest)
	}
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		result = "failure"
		return nil, fmt.Errorf("%w: invalid userId", ErrInvalidRequest)
	}
	var refID *domain.MessageID
	if r.ReferencedMessageID != "" {
		id, err := uuid.Parse(r.ReferencedMessageID)
		if err != nil {
			result = "failure"
			return nil, fmt.Errorf("%w: invalid referencedMessageId", ErrInvalidRequest)
		}
		refID = &id
	}

	msg := &domain.Message{
		ChannelID:           channelID,
		UserID:              userID,
		Type:                r.Type,
		Content:             r.Content,
		ReferencedMessageID: refID,
	}
	err = m.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.Channels().GetByID(ctx, channelID); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrChannelNotFound
			}
			return fmt.Errorf("resolving channel: %w", err)
		}

		now := m.now().UTC()
		msg.CreatedAt = now
		msg.UpdatedAt = now
		if err := tx.Messages().Create(ctx, msg); err != nil {
			return fmt.Errorf("creating message: %w", err)
		}
		if err := tx.Channels().UpdateLastMessage(ctx, channelID, msg.ID); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrChannelNotFound
			}
			return fmt.Errorf("advancing last message pointer: %w", err)
		}
		return nil
	})
	if err != nil {
		result = "failure"
		slog.Warn("message saga rolled back", "channel_id", channelID, "error", err)
		return nil, err
	}

	resp := &dto.MessageResponse{
		ID:        msg.ID.String(),
		ChannelID: msg.ChannelID.String(),
		UserID:    msg.UserID.String(),
		Type:      msg.Type,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
	if msg.ReferencedMessageID != nil {
		resp.ReferencedMessageID = msg.ReferencedMessageID.String()
	}
	return resp, nil
}
