package store

import (
	"context"

	"guildchat/internal/domain"

	"github.com/google/uuid"
)

type GuildStore struct{ db *Store }

func (s *Store) Guilds() *GuildStore { return &GuildStore{db: s} }

func (gs *GuildStore) Create(ctx context.Context, g *domain.Guild) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return translate(gs.db.DB.WithContext(ctx).Create(g).Error)
}

// GetByOwnerAndName resolves a user's guild by name; with
// domain.PrivateGuildName this is the anchor for that user's DM channels.
func (gs *GuildStore) GetByOwnerAndName(ctx context.Context, ownerID domain.UserID, name string) (*domain.Guild, error) {
	var g domain.Guild
	err := gs.db.DB.WithContext(ctx).
		First(&g, "owner_user_id = ? AND name = ?", ownerID, name).Error
	if err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

type GuildMemberStore struct{ db *Store }

func (s *Store) GuildMembers() *GuildMemberStore { return &GuildMemberStore{db: s} }

func (ms *GuildMemberStore) Create(ctx context.Context, m *domain.GuildMember) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Role == "" {
		m.Role = domain.GuildRoleMember
	}
	return translate(ms.db.DB.WithContext(ctx).Create(m).Error)
}

func (ms *GuildMemberStore) IsMember(ctx context.Context, guildID domain.GuildID, userID domain.UserID) (bool, error) {
	var count int64
	err := ms.db.DB.WithContext(ctx).
		Model(&domain.GuildMember{}).
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}
