package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
	"guildchat/internal/store"
)

type ChannelServiceImpl struct {
	store *store.Store
}

func NewChannelServiceImpl(st *store.Store) *ChannelServiceImpl {
	return &ChannelServiceImpl{store: st}
}

func (c *ChannelServiceImpl) GetWithMessages(ctx context.Context, channelID domain.ChannelID) (*dto.ChannelResponse, error) {
	channel, err := c.store.Channels().GetByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrChannelNotFound
		}
		return nil, fmt.Errorf("resolving channel: %w", err)
	}

	// last_message_id is a weak reference; the target may be soft-deleted
	// by now. A miss is expected, not an error.
	if channel.LastMessageID != nil {
		if _, err := c.store.Messages().GetByID(ctx, *channel.LastMessageID); err != nil {
			if !errors.Is(err, store.ErrRecordNotFound) {
				return nil, fmt.Errorf("resolving last message: %w", err)
			}
			slog.Debug("last message no longer visible",
				"channel_id", channel.ID, "last_message_id", *channel.LastMessageID)
		}
	}

	msgs, err := c.store.Messages().ListByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	out := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		msg := &msgs[i]
		entry := dto.MessageResponse{
			ID:        msg.ID.String(),
			ChannelID: msg.ChannelID.String(),
			UserID:    msg.UserID.String(),
			Type:      msg.Type,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
			UpdatedAt: msg.UpdatedAt,
		}
		if msg.ReferencedMessageID != nil {
			entry.ReferencedMessageID = msg.ReferencedMessageID.String()
		}
		out = append(out, entry)
	}

	resp := &dto.ChannelResponse{
		ID:       channel.ID.String(),
		Name:     channel.Name,
		Messages: out,
	}
	if channel.GuildID != nil {
		resp.GuildID = channel.GuildID.String()
	}
	return resp, nil
}

// CheckAccess admits the channel owner and members of either referenced
// guild; everyone else gets domain.ErrForbidden.
func (c *ChannelServiceImpl) CheckAccess(ctx context.Context, userID domain.UserID, channelID domain.ChannelID) error {
	channel, err := c.store.Channels().GetByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrChannelNotFound
		}
		return fmt.Errorf("resolving channel: %w", err)
	}
	if channel.OwnerUserID == userID {
		return nil
	}
	for _, guildID := range []*domain.GuildID{channel.GuildID, channel.RelatedGuildID} {
		if guildID == nil {
			continue
		}
		ok, err := c.store.GuildMembers().IsMember(ctx, *guildID, userID)
		if err != nil {
			return fmt.Errorf("checking membership: %w", err)
		}
		if ok {
			return nil
		}
	}
	slog.Debug("channel access denied", "channel_id", channelID, "user_id", userID)
	return domain.ErrForbidden
}
