package dto

import "time"

type FriendCreateRequest struct {
	Username        string `json:"username"`
	RelatedUsername string `json:"relatedUsername"`
	Type            string `json:"type"`
}

type FriendCreateResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	RelatedUserID string    `json:"relatedUserId"`
	Type          string    `json:"type"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FriendEntry is one row of a user's friends list: the counterpart's
// profile plus the DM channel shared with them.
type FriendEntry struct {
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	Description string    `json:"description,omitempty"`
	ChannelID   string    `json:"channelId"`
	CreatedAt   time.Time `json:"createdAt"`
}
