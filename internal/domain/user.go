package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           UserID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string         `gorm:"type:text;not null" json:"name"`
	Username     string         `gorm:"type:text;uniqueIndex:ux_users_username" json:"username"`
	Email        string         `gorm:"type:text;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string         `gorm:"type:text;not null" json:"-"`
	Description  string         `gorm:"type:text" json:"description"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedAt    time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
