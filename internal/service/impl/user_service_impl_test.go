package impl

import (
	"context"
	"errors"
	"testing"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
	"guildchat/internal/store"

	"github.com/google/uuid"
)

func TestRegisterCreatesUserGuildAndMembership(t *testing.T) {
	st := setupStore(t)
	users := NewUserServiceImpl(st, NewPasswordServicePBKDF2())

	res, err := users.Register(context.Background(), dto.RegisterRequest{
		Name:     "Alice",
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password-alice",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.GuildID == "" {
		t.Fatal("no private guild in response")
	}

	guild, err := st.Guilds().GetByOwnerAndName(context.Background(), uuid.MustParse(res.ID), domain.PrivateGuildName)
	if err != nil {
		t.Fatalf("private guild: %v", err)
	}
	if guild.ID.String() != res.GuildID {
		t.Fatalf("guild id mismatch: %s vs %s", guild.ID, res.GuildID)
	}
	if ok, _ := st.GuildMembers().IsMember(context.Background(), guild.ID, uuid.MustParse(res.ID)); !ok {
		t.Error("owner is not a member of their own private guild")
	}

	// Credentials never land in cleartext.
	row, err := st.Users().GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if row.PasswordHash == "password-alice" || row.PasswordHash == "" {
		t.Fatalf("stored hash looks wrong: %q", row.PasswordHash)
	}
}

// A username collision must not leave an orphaned guild or membership.
func TestRegisterDuplicateUsernameRollsBack(t *testing.T) {
	st := setupStore(t)
	users := NewUserServiceImpl(st, NewPasswordServicePBKDF2())
	registerUser(t, st, "alice", "password-alice")

	_, err := users.Register(context.Background(), dto.RegisterRequest{
		Name:     "Impostor",
		Username: "alice",
		Email:    "other@example.com",
		Password: "password-other",
	})
	if !errors.Is(err, store.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}

	if n := countRows(t, st, &domain.User{}); n != 1 {
		t.Fatalf("user rows = %d, want 1", n)
	}
	if n := countRows(t, st, &domain.Guild{}); n != 1 {
		t.Fatalf("guild rows = %d, want 1", n)
	}
	if n := countRows(t, st, &domain.GuildMember{}); n != 1 {
		t.Fatalf("membership rows = %d, want 1", n)
	}
}

func TestRegisterValidation(t *testing.T) {
	st := setupStore(t)
	users := NewUserServiceImpl(st, NewPasswordServicePBKDF2())

	cases := map[string]struct {
		req  dto.RegisterRequest
		want error
	}{
		"missing username": {dto.RegisterRequest{Name: "A", Email: "a@b.c", Password: "longenough"}, ErrEmptyCredential},
		"missing email":    {dto.RegisterRequest{Name: "A", Username: "a", Password: "longenough"}, ErrEmptyCredential},
		"short password":   {dto.RegisterRequest{Name: "A", Username: "a", Email: "a@b.c", Password: "short"}, ErrPasswordLength},
	}
	for name, tc := range cases {
		if _, err := users.Register(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", name, err, tc.want)
		}
	}
	if n := countRows(t, st, &domain.User{}); n != 0 {
		t.Fatalf("user rows = %d, want 0", n)
	}
}

func TestUpdateProfile(t *testing.T) {
	st := setupStore(t)
	users := NewUserServiceImpl(st, NewPasswordServicePBKDF2())
	alice := registerUser(t, st, "alice", "password-alice")

	err := users.UpdateProfile(context.Background(), uuid.MustParse(alice.ID), dto.UserUpdateRequest{
		Name:        "Alice Prime",
		Description: "updated",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := users.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Alice Prime" || got.Description != "updated" {
		t.Fatalf("profile not updated: %+v", got)
	}

	if err := users.UpdateProfile(context.Background(), uuid.MustParse(alice.ID), dto.UserUpdateRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("empty name: err = %v, want ErrInvalidRequest", err)
	}
	if err := users.UpdateProfile(context.Background(), uuid.New(), dto.UserUpdateRequest{Name: "X"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown user: err = %v, want ErrUserNotFound", err)
	}
}

// Deleting an account hides the user and kills every live session.
func TestDeleteRevokesSessions(t *testing.T) {
	st := setupStore(t)
	users := NewUserServiceImpl(st, NewPasswordServicePBKDF2())
	auth := newTestAuthService(st, newTestTokenService(t))
	alice := registerUser(t, st, "alice", "password-alice")

	tokens, err := auth.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "password-alice"}, "127.0.0.1", "test")
	if err != nil {
		t.Fatal(err)
	}

	if err := users.Delete(context.Background(), uuid.MustParse(alice.ID)); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := users.GetByUsername(context.Background(), "alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("deleted user still visible: err = %v", err)
	}
	if _, err := auth.VerifyJWTAndSession(context.Background(), tokens.AccessToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("session survived account deletion: err = %v", err)
	}
}
