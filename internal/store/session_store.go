package store

import (
	"context"
	"time"

	"guildchat/internal/domain"

	"github.com/google/uuid"
)

type SessionStore struct{ db *Store }

func (s *Store) Sessions() *SessionStore { return &SessionStore{db: s} }

func (ss *SessionStore) Create(ctx context.Context, sess *domain.Session) error {
	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	}
	return translate(ss.db.DB.WithContext(ctx).Create(sess).Error)
}

func (ss *SessionStore) GetByAccessHash(ctx context.Context, hash string) (*domain.Session, error) {
	var sess domain.Session
	if err := ss.db.DB.WithContext(ctx).First(&sess, "access_token_hash = ?", hash).Error; err != nil {
		return nil, translate(err)
	}
	return &sess, nil
}

func (ss *SessionStore) GetByRefreshHash(ctx context.Context, hash string) (*domain.Session, error) {
	var sess domain.Session
	if err := ss.db.DB.WithContext(ctx).First(&sess, "refresh_token_hash = ?", hash).Error; err != nil {
		return nil, translate(err)
	}
	return &sess, nil
}

// Revoke sets the revocation timestamp once; calling it again on an
// already-revoked session is a no-op.
func (ss *SessionStore) Revoke(ctx context.Context, id domain.SessionID, at time.Time) error {
	return translate(ss.db.DB.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at).Error)
}

// RotateAccess replaces only the access half of the pair; the refresh
// fingerprint and its expiry are untouched.
func (ss *SessionStore) RotateAccess(ctx context.Context, id domain.SessionID, accessHash string, accessExpiresAt time.Time) error {
	tx := ss.db.DB.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"access_token_hash": accessHash,
			"access_expires_at": accessExpiresAt,
		})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (ss *SessionStore) RevokeAllForUser(ctx context.Context, userID domain.UserID, at time.Time) (int64, error) {
	tx := ss.db.DB.WithContext(ctx).
		Model(&domain.Session{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at)
	return tx.RowsAffected, translate(tx.Error)
}
