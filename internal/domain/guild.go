package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Guild struct {
	ID          GuildID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"type:text;not null" json:"name"`
	OwnerUserID UserID         `gorm:"type:uuid;not null;index" json:"ownerUserId"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedAt   time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updatedAt"`
}

func (Guild) TableName() string { return "guilds" }

type GuildMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GuildID   GuildID   `gorm:"type:uuid;not null;uniqueIndex:ux_guild_members_pair,priority:1" json:"guildId"`
	UserID    UserID    `gorm:"type:uuid;not null;uniqueIndex:ux_guild_members_pair,priority:2" json:"userId"`
	Role      string    `gorm:"type:text;not null" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (GuildMember) TableName() string { return "guild_members" }
