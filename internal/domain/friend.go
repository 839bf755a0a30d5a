package domain

import "time"

// Friend is a single directed relationship edge. The pair is unique per
// direction and self-edges are rejected before the row is written; read
// paths must always query both directions.
type Friend struct {
	ID            FriendID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        UserID    `gorm:"type:uuid;not null;uniqueIndex:ux_friends_pair,priority:1" json:"userId"`
	RelatedUserID UserID    `gorm:"type:uuid;not null;uniqueIndex:ux_friends_pair,priority:2" json:"relatedUserId"`
	Type          string    `gorm:"type:text;not null" json:"type"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
}

func (Friend) TableName() string { return "friends" }

// Counterpart returns the other side of the edge as seen from userID.
func (f *Friend) Counterpart(userID UserID) UserID {
	if f.UserID == userID {
		return f.RelatedUserID
	}
	return f.UserID
}
