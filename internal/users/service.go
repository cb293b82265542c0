// Package users holds the application-user operations.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/storage"
)

var (
	// ErrInvalidCredentials hides whether the username or the password
	// was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when create finds the username already
	// persisted.
	ErrUsernameTaken = errors.New("username already exists")
)

type Service struct {
	store storage.UserStore
}

func NewService(store storage.UserStore) *Service {
	return &Service{store: store}
}

// Create persists a new user unless the username already exists at check
// time. The check and the insert are two store calls; concurrent creates of
// the same username can both pass the check.
func (s *Service) Create(ctx context.Context, username, password string) (storage.User, error) {
	_, err := s.store.ByUsername(ctx, username)
	if err == nil {
		return storage.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return storage.User{}, fmt.Errorf("check username: %w", err)
	}

	u := storage.User{Username: username, Password: password}
	id, err := s.store.Insert(ctx, u)
	if err != nil {
		return storage.User{}, err
	}

	u.ID = id
	return u, nil
}

// List returns every user in store order.
func (s *Service) List(ctx context.Context) ([]storage.User, error) {
	return s.store.All(ctx)
}

// Get fetches one user by id; storage.ErrNotFound on a miss.
func (s *Service) Get(ctx context.Context, id string) (storage.User, error) {
	return s.store.ByID(ctx, id)
}

// Update overwrites username and password of an existing user. Unlike
// Create it does not re-check username uniqueness; the create path alone
// guards duplicates.
func (s *Service) Update(ctx context.Context, id, username, password string) error {
	if _, err := s.store.ByID(ctx, id); err != nil {
		return err
	}
	return s.store.Update(ctx, storage.User{ID: id, Username: username, Password: password})
}

// Authenticate matches username and password exactly against one stored
// user. Both misses collapse into ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (storage.User, error) {
	u, err := s.store.ByCredentials(ctx, username, password)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return storage.User{}, err
	}
	return u, nil
}
