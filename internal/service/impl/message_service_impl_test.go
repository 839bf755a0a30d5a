package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
	"guildchat/internal/store"

	"github.com/google/uuid"
)

func makeChannel(t *testing.T, st *store.Store, ownerID string) *domain.Channel {
	t.Helper()
	now := time.Now().UTC()
	ch := &domain.Channel{
		Type:        domain.ChannelTypeText,
		Name:        "general",
		OwnerUserID: uuid.MustParse(ownerID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := st.Channels().Create(context.Background(), ch); err != nil {
		t.Fatalf("create channel: %v", err)
	}
	return ch
}

func TestMessageCreateAdvancesLastMessage(t *testing.T) {
	st := setupStore(t)
	messages := NewMessageServiceImpl(st)
	alice := registerUser(t, st, "alice", "password-alice")
	ch := makeChannel(t, st, alice.ID)

	res, err := messages.Create(context.Background(), dto.MessageCreateRequest{
		ChannelID: ch.ID.String(),
		UserID:    alice.ID,
		Content:   "first",
	})
	if err != nil {
		t.Fatalf("create message: %v", err)
	}
	if res.Type != domain.MessageTypeDefault {
		t.Errorf("type = %q, want default", res.Type)
	}

	got, err := st.Channels().GetByID(context.Background(), ch.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastMessageID == nil || got.LastMessageID.String() != res.ID {
		t.Fatalf("last_message_id = %v, want %s", got.LastMessageID, res.ID)
	}

	// A second message moves the pointer again.
	res2, err := messages.Create(context.Background(), dto.MessageCreateRequest{
		ChannelID: ch.ID.String(),
		UserID:    alice.ID,
		Content:   "second",
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err = st.Channels().GetByID(context.Background(), ch.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastMessageID == nil || got.LastMessageID.String() != res2.ID {
		t.Fatalf("last_message_id = %v, want %s", got.LastMessageID, res2.ID)
	}
	if n := countRows(t, st, &domain.Message{}); n != 2 {
		t.Fatalf("message rows = %d, want 2", n)
	}
}

func TestMessageCreateUnknownChannelLeavesNoRow(t *testing.T) {
	st := setupStore(t)
	messages := NewMessageServiceImpl(st)
	alice := registerUser(t, st, "alice", "password-alice")

	_, err := messages.Create(context.Background(), dto.MessageCreateRequest{
		ChannelID: uuid.NewString(),
		UserID:    alice.ID,
		Content:   "into the void",
	})
	if !errors.Is(err, domain.ErrChannelNotFound) {
		t.Fatalf("err = %v, want ErrChannelNotFound", err)
	}
	if n := countRows(t, st, &domain.Message{}); n != 0 {
		t.Fatalf("message rows = %d, want 0", n)
	}
}

func TestMessageCreateWithReply(t *testing.T) {
	st := setupStore(t)
	messages := NewMessageServiceImpl(st)
	alice := registerUser(t, st, "alice", "password-alice")
	ch := makeChannel(t, st, alice.ID)

	first, err := messages.Create(context.Background(), dto.MessageCreateRequest{
		ChannelID: ch.ID.String(),
		UserID:    alice.ID,
		Content:   "original",
	})
	if err != nil {
		t.Fatal(err)
	}

	reply, err := messages.Create(context.Background(), dto.MessageCreateRequest{
		ChannelID:           ch.ID.String(),
		UserID:              alice.ID,
		Content:             "reply",
		ReferencedMessageID: first.ID,
	})
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}
	if reply.ReferencedMessageID != first.ID {
		t.Fatalf("referencedMessageId = %q, want %q", reply.ReferencedMessageID, first.ID)
	}
}

func TestMessageCreateRejectsMalformedIDs(t *testing.T) {
	st := setupStore(t)
	messages := NewMessageServiceImpl(st)

	for name, req := range map[string]dto.MessageCreateRequest{
		"channel": {ChannelID: "not-a-uuid", UserID: uuid.NewString(), Content: "x"},
		"user":    {ChannelID: uuid.NewString(), UserID: "not-a-uuid", Content: "x"},
		"ref":     {ChannelID: uuid.NewString(), UserID: uuid.NewString(), Content: "x", ReferencedMessageID: "bogus"},
	} {
		if _, err := messages.Create(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("%s: err = %v, want ErrInvalidRequest", name, err)
		}
	}
	if n := countRows(t, st, &domain.Message{}); n != 0 {
		t.Fatalf("message rows = %d, want 0", n)
	}
}
