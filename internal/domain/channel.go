package domain

import (
	"time"

	"gorm.io/gorm"
)

// Channel belongs to a guild. Direct-message channels additionally carry
// the counterpart's private guild in RelatedGuildID. LastMessageID is a
// weak reference: no foreign key, and the message it points at may be
// soft-deleted later, so readers must tolerate a miss.
type Channel struct {
	ID             ChannelID      `gorm:"type:uuid;primaryKey" json:"id"`
	GuildID        *GuildID       `gorm:"type:uuid;index" json:"guildId"`
	RelatedGuildID *GuildID       `gorm:"type:uuid" json:"relatedGuildId,omitempty"`
	Type           string         `gorm:"type:text;not null" json:"type"`
	Name           string         `gorm:"type:text" json:"name"`
	OwnerUserID    UserID         `gorm:"type:uuid;not null" json:"ownerUserId"`
	LastMessageID  *MessageID     `gorm:"type:uuid" json:"lastMessageId,omitempty"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedAt      time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updatedAt"`
}

func (Channel) TableName() string { return "channels" }
