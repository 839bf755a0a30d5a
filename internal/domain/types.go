package domain

import "github.com/google/uuid"

type UserID = uuid.UUID
type SessionID = uuid.UUID
type FriendID = uuid.UUID
type GuildID = uuid.UUID
type ChannelID = uuid.UUID
type MessageID = uuid.UUID

// PrivateGuildName is the sentinel name of the guild every user owns
// implicitly. Direct-message channels hang off these guilds.
const PrivateGuildName = "@me"

const (
	ChannelTypeText = "text"

	MessageTypeDefault = "default"

	FriendTypeFriend  = "friend"
	FriendTypeBlocked = "blocked"

	GuildRoleMember = "member"
)
