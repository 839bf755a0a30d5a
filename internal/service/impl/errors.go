package impl

import "errors"

var (
	ErrEmptyPassword   = errors.New("empty password")
	ErrEmptyCredential = errors.New("empty credential(s)")
	ErrPasswordLength  = errors.New("password too short")
	ErrInvalidRequest  = errors.New("invalid request")

	ErrSelfFriend     = errors.New("cannot befriend yourself")
	ErrAlreadyFriends = errors.New("relationship already exists")
)
