package domain

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID                  MessageID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChannelID           ChannelID      `gorm:"type:uuid;not null;index:idx_messages_channel_created,priority:1" json:"channelId"`
	UserID              UserID         `gorm:"type:uuid;not null" json:"userId"`
	Type                string         `gorm:"type:text;not null" json:"type"`
	Content             string         `gorm:"type:text" json:"content"`
	ReferencedMessageID *MessageID     `gorm:"type:uuid" json:"referencedMessageId,omitempty"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedAt           time.Time      `gorm:"not null;index:idx_messages_channel_created,priority:2" json:"createdAt"`
	UpdatedAt           time.Time      `gorm:"not null" json:"updatedAt"`
}

func (Message) TableName() string { return "messages" }
