package store

import (
	"context"
	"time"

	"guildchat/internal/domain"

	"github.com/google/uuid"
)

type ChannelStore struct{ db *Store }

func (s *Store) Channels() *ChannelStore { return &ChannelStore{db: s} }

func (cs *ChannelStore) Create(ctx context.Context, c *domain.Channel) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Type == "" {
		c.Type = domain.ChannelTypeText
	}
	return translate(cs.db.DB.WithContext(ctx).Create(c).Error)
}

func (cs *ChannelStore) GetByID(ctx context.Context, id domain.ChannelID) (*domain.Channel, error) {
	var c domain.Channel
	if err := cs.db.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// UpdateLastMessage advances the channel's weak last-message pointer.
// Returns ErrRecordNotFound when the channel row does not exist.
func (cs *ChannelStore) UpdateLastMessage(ctx context.Context, channelID domain.ChannelID, messageID domain.MessageID) error {
	tx := cs.db.DB.WithContext(ctx).
		Model(&domain.Channel{}).
		Where("id = ?", channelID).
		Updates(map[string]any{
			"last_message_id": messageID,
			"updated_at":      time.Now().UTC(),
		})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GetDirect finds the DM channel owned by ownerID whose counterpart side
// is relatedGuildID.
func (cs *ChannelStore) GetDirect(ctx context.Context, ownerID domain.UserID, relatedGuildID domain.GuildID) (*domain.Channel, error) {
	var c domain.Channel
	err := cs.db.DB.WithContext(ctx).
		Where("owner_user_id = ? AND related_guild_id = ? AND type = ? AND name = ?",
			ownerID, relatedGuildID, domain.ChannelTypeText, "").
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}
