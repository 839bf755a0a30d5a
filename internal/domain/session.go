package domain

import "time"

// Session is the ledger record for one issued token pair. Token values are
// stored as one-way fingerprints only; rows are revoked, never deleted.
type Session struct {
	ID               SessionID  `gorm:"type:uuid;primaryKey"`
	UserID           UserID     `gorm:"type:uuid;not null;index"`
	AccessTokenHash  string     `gorm:"type:text;uniqueIndex:ux_sessions_access_hash"`
	RefreshTokenHash string     `gorm:"type:text;uniqueIndex:ux_sessions_refresh_hash"`
	AccessExpiresAt  time.Time  `gorm:"not null"`
	RefreshExpiresAt time.Time  `gorm:"not null"`
	UserAgent        string     `gorm:"type:text"`
	IPAddress        string     `gorm:"type:text"`
	RevokedAt        *time.Time
	CreatedAt        time.Time `gorm:"not null"`
}

func (Session) TableName() string { return "sessions" }

func (s *Session) Revoked() bool { return s.RevokedAt != nil }
