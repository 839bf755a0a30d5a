package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("store: record not found")

	// ErrDuplicateKey marks a uniqueness-constraint rejection. Sagas that
	// race on the same pair treat it as "already exists", not as fatal.
	ErrDuplicateKey = errors.New("store: duplicate key")
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{DB: db} }

// WithTx runs fn inside one storage transaction. Any error returned by fn
// rolls back every write made through the tx-scoped store; this is the
// saga boundary.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{DB: tx})
	})
}

// translate maps gorm's sentinel errors onto the store's own. Requires the
// connection to be opened with TranslateError so driver-specific
// constraint errors arrive as gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return err
	}
}
