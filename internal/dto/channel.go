package dto

type ChannelResponse struct {
	ID       string            `json:"id"`
	GuildID  string            `json:"guildId,omitempty"`
	Name     string            `json:"name"`
	Messages []MessageResponse `json:"messages"`
}
