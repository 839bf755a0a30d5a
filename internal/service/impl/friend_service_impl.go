package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
	"guildchat/internal/observability/metrics"
	"guildchat/internal/store"
)

type FriendServiceImpl struct {
	store *store.Store
	now   func() time.Time
}

func NewFriendServiceImpl(st *store.Store) *FriendServiceImpl {
	return &FriendServiceImpl{store: st, now: time.Now}
}

// Create is the friend-creation saga. From one request it writes five
// records — the edge, a membership for each side in the other's private
// guild, and one DM channel per side — inside a single transaction. Any
// failure undoes all of it; a duplicate edge surfaces as ErrAlreadyFriends
// wrapping the store error. Unresolvable usernames return
// domain.ErrUserNotFound with no writes at all.
func (f *FriendServiceImpl) Create(ctx context.Context, r dto.FriendCreateRequest) (*dto.FriendCreateResponse, error) {
	result := "success"
	defer func() { metrics.FriendSagasTotal.WithLabelValues(result).Inc() }()

	if r.Username == "" || r.RelatedUsername == "" || r.Type == "" {
		result = "failure"
		return nil, fmt.Errorf("%w: username, relatedUsername and type are required", ErrInvalidRequest)
	}
	if r.Username == r.RelatedUsername {
		result = "failure"
		return nil, ErrSelfFriend
	}

	var edge *domain.Friend
	err := f.store.WithTx(ctx, func(tx *store.Store) error {
		user, err := tx.Users().GetByUsername(ctx, r.Username)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("resolving user: %w", err)
		}
		related, err := tx.Users().GetByUsername(ctx, r.RelatedUsername)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("resolving related user: %w", err)
		}

		// One edge per pair regardless of direction; the unique index on
		// the ordered pair backstops two racing requests for the same
		// direction.
		if _, err := tx.Friends().GetBetween(ctx, user.ID, related.ID); err == nil {
			return ErrAlreadyFriends
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("checking existing edge: %w", err)
		}

		now := f.now().UTC()
		edge = &domain.Friend{
			UserID:        user.ID,
			RelatedUserID: related.ID,
			Type:          r.Type,
			CreatedAt:     now,
		}
		if err := tx.Friends().Create(ctx, edge); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return fmt.Errorf("%w: %w", ErrAlreadyFriends, err)
			}
			return fmt.Errorf("creating friend edge: %w", err)
		}

		guild, err := tx.Guilds().GetByOwnerAndName(ctx, user.ID, domain.PrivateGuildName)
		if err != nil {
			return fmt.Errorf("resolving private guild of %s: %w", user.Username, err)
		}
		relatedGuild, err := tx.Guilds().GetByOwnerAndName(ctx, related.ID, domain.PrivateGuildName)
		if err != nil {
			return fmt.Errorf("resolving private guild of %s: %w", related.Username, err)
		}

		// Each side joins the other's private guild.
		if err := tx.GuildMembers().Create(ctx, &domain.GuildMember{
			GuildID:   guild.ID,
			UserID:    related.ID,
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("creating membership in %s's guild: %w", user.Username, err)
		}
		if err := tx.GuildMembers().Create(ctx, &domain.GuildMember{
			GuildID:   relatedGuild.ID,
			UserID:    user.ID,
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("creating membership in %s's guild: %w", related.Username, err)
		}

		// One DM channel per side, cross-referencing both guilds.
		if err := tx.Channels().Create(ctx, &domain.Channel{
			GuildID:        &guild.ID,
			RelatedGuildID: &relatedGuild.ID,
			Type:           domain.ChannelTypeText,
			OwnerUserID:    user.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}); err != nil {
			return fmt.Errorf("creating channel for %s: %w", user.Username, err)
		}
		if err := tx.Channels().Create(ctx, &domain.Channel{
			GuildID:        &relatedGuild.ID,
			RelatedGuildID: &guild.ID,
			Type:           domain.ChannelTypeText,
			OwnerUserID:    related.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}); err != nil {
			return fmt.Errorf("creating channel for %s: %w", related.Username, err)
		}
		return nil
	})
	if err != nil {
		result = "failure"
		slog.Warn("friend saga rolled back",
			"username", r.Username,
			"related_username", r.RelatedUsername,
			"error", err)
		return nil, err
	}

	slog.Info("friend relationship established",
		"friend_id", edge.ID,
		"user_id", edge.UserID,
		"related_user_id", edge.RelatedUserID)

	return &dto.FriendCreateResponse{
		ID:            edge.ID.String(),
		UserID:        edge.UserID.String(),
		RelatedUserID: edge.RelatedUserID.String(),
		Type:          edge.Type,
		CreatedAt:     edge.CreatedAt,
	}, nil
}

// List walks the user's edges in both directions and pairs each
// counterpart with the DM channel the requester owns for them. Friends
// whose channel cannot be resolved are skipped rather than failing the
// whole listing.
func (f *FriendServiceImpl) List(ctx context.Context, userID domain.UserID) ([]dto.FriendEntry, error) {
	edges, err := f.store.Friends().ListByUser(ctx, userID, domain.FriendTypeFriend)
	if err != nil {
		return nil, fmt.Errorf("listing friend edges: %w", err)
	}

	ids := make([]domain.UserID, 0, len(edges))
	for i := range edges {
		ids = append(ids, edges[i].Counterpart(userID))
	}
	users, err := f.store.Users().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving counterparts: %w", err)
	}

	entries := make([]dto.FriendEntry, 0, len(users))
	for i := range users {
		u := &users[i]
		guild, err := f.store.Guilds().GetByOwnerAndName(ctx, u.ID, domain.PrivateGuildName)
		if err != nil {
			slog.Warn("friend list: counterpart has no private guild", "user_id", u.ID, "error", err)
			continue
		}
		channel, err := f.store.Channels().GetDirect(ctx, userID, guild.ID)
		if err != nil {
			slog.Warn("friend list: no DM channel for counterpart", "user_id", u.ID, "error", err)
			continue
		}
		entries = append(entries, dto.FriendEntry{
			Name:        u.Name,
			Username:    u.Username,
			Description: u.Description,
			ChannelID:   channel.ID.String(),
			CreatedAt:   u.CreatedAt,
		})
	}
	return entries, nil
}
