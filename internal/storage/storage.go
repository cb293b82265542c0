package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by id lookups that miss.
var ErrNotFound = errors.New("storage: record not found")

// APIKey is a persisted API key record. Key is the opaque 32-hex-char token
// and never changes after creation; Name is a free-text label.
type APIKey struct {
	ID   string
	Name string
	Key  string
}

// User is a persisted application user. Password is stored exactly as
// submitted.
type User struct {
	ID       string
	Username string
	Password string
}

// KeyStore persists APIKey records.
// Implementations (Mongo, in-memory) must keep All and Search in the store's
// natural iteration order, because the CSV export mirrors List order.
type KeyStore interface {
	Insert(ctx context.Context, k APIKey) (id string, err error)
	All(ctx context.Context) ([]APIKey, error)
	ByID(ctx context.Context, id string) (APIKey, error)
	// ByKey reports whether a record with the exact token exists.
	// It returns ErrNotFound on a miss.
	ByKey(ctx context.Context, key string) (APIKey, error)
	// Search matches Name by case-insensitive unanchored substring.
	// The empty substring matches every record.
	Search(ctx context.Context, substring string) ([]APIKey, error)
	UpdateName(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

// UserStore persists User records. There is no delete operation.
type UserStore interface {
	Insert(ctx context.Context, u User) (id string, err error)
	All(ctx context.Context) ([]User, error)
	ByID(ctx context.Context, id string) (User, error)
	ByUsername(ctx context.Context, username string) (User, error)
	// ByCredentials matches username and password exactly, both
	// case-sensitive. Returns ErrNotFound when no record matches.
	ByCredentials(ctx context.Context, username, password string) (User, error)
	Update(ctx context.Context, u User) error
}
