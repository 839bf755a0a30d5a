package store

import (
	"context"

	"guildchat/internal/domain"

	"github.com/google/uuid"
)

type MessageStore struct{ db *Store }

func (s *Store) Messages() *MessageStore { return &MessageStore{db: s} }

func (ms *MessageStore) Create(ctx context.Context, m *domain.Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Type == "" {
		m.Type = domain.MessageTypeDefault
	}
	return translate(ms.db.DB.WithContext(ctx).Create(m).Error)
}

func (ms *MessageStore) GetByID(ctx context.Context, id domain.MessageID) (*domain.Message, error) {
	var m domain.Message
	if err := ms.db.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// ListByChannel returns the channel's messages in per-channel timestamp
// order; soft-deleted rows are filtered by gorm.
func (ms *MessageStore) ListByChannel(ctx context.Context, channelID domain.ChannelID) ([]domain.Message, error) {
	var msgs []domain.Message
	err := ms.db.DB.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at asc").
		Find(&msgs).Error
	if err != nil {
		return nil, translate(err)
	}
	return msgs, nil
}

func (ms *MessageStore) SoftDelete(ctx context.Context, id domain.MessageID) error {
	tx := ms.db.DB.WithContext(ctx).Delete(&domain.Message{}, "id = ?", id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
