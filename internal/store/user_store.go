package store

import (
	"context"
	"time"

	"guildchat/internal/domain"

	"github.com/google/uuid"
)

type UserStore struct{ db *Store }

func (s *Store) Users() *UserStore { return &UserStore{db: s} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	return translate(u.db.DB.WithContext(ctx).Create(usr).Error)
}

func (u *UserStore) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var user domain.User
	if err := u.db.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (u *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := u.db.DB.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (u *UserStore) GetByIDs(ctx context.Context, ids []domain.UserID) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []domain.User
	if err := u.db.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (u *UserStore) UpdateProfile(ctx context.Context, id domain.UserID, name, description string) error {
	tx := u.db.DB.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"description": description,
			"updated_at":  time.Now().UTC(),
		})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// SoftDelete marks the user deleted; the row stays for referential history.
func (u *UserStore) SoftDelete(ctx context.Context, id domain.UserID) error {
	tx := u.db.DB.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
