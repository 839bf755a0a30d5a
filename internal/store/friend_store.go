package store

import (
	"context"

	"guildchat/internal/domain"

	"github.com/google/uuid"
)

type FriendStore struct{ db *Store }

func (s *Store) Friends() *FriendStore { return &FriendStore{db: s} }

func (fs *FriendStore) Create(ctx context.Context, f *domain.Friend) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return translate(fs.db.DB.WithContext(ctx).Create(f).Error)
}

// ListByUser returns edges in either direction; the edge is stored as a
// single directed row but reads treat it as symmetric.
func (fs *FriendStore) ListByUser(ctx context.Context, userID domain.UserID, friendType string) ([]domain.Friend, error) {
	var friends []domain.Friend
	err := fs.db.DB.WithContext(ctx).
		Where("(user_id = ? OR related_user_id = ?) AND type = ?", userID, userID, friendType).
		Order("created_at asc").
		Find(&friends).Error
	if err != nil {
		return nil, translate(err)
	}
	return friends, nil
}

func (fs *FriendStore) GetBetween(ctx context.Context, a, b domain.UserID) (*domain.Friend, error) {
	var f domain.Friend
	err := fs.db.DB.WithContext(ctx).
		Where("(user_id = ? AND related_user_id = ?) OR (user_id = ? AND related_user_id = ?)", a, b, b, a).
		First(&f).Error
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}
