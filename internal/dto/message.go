package dto

import "time"

type MessageCreateRequest struct {
	ChannelID           string `json:"channelId"`
	UserID              string `json:"userId"`
	Type                string `json:"type,omitempty"`
	Content             string `json:"content"`
	ReferencedMessageID string `json:"referencedMessageId,omitempty"`
}

type MessageResponse struct {
	ID                  string    `json:"id"`
	ChannelID           string    `json:"channelId"`
	UserID              string    `json:"userId"`
	Type                string    `json:"type"`
	Content             string    `json:"content"`
	ReferencedMessageID string    `json:"referencedMessageId,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
