package dto

import "time"

type RegisterRequest struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Description string `json:"description,omitempty"`
}

type UserSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RegisterResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Description string    `json:"description,omitempty"`
	GuildID     string    `json:"guildId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UserUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
