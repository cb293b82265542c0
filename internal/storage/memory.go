package storage

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryKeyStore keeps API keys in process memory, in insertion order.
// Used by tests and when the server runs without a Mongo URI.
type MemoryKeyStore struct {
	mu   sync.RWMutex
	keys []APIKey
}

func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{}
}

func (s *MemoryKeyStore) Insert(_ context.Context, k APIKey) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k.ID = uuid.NewString()
	s.keys = append(s.keys, k)
	return k.ID, nil
}

func (s *MemoryKeyStore) All(_ context.Context) ([]APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]APIKey, len(s.keys))
	copy(out, s.keys)
	return out, nil
}

func (s *MemoryKeyStore) ByID(_ context.Context, id string) (APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, k := range s.keys {
		if k.ID == id {
			return k, nil
		}
	}
	return APIKey{}, ErrNotFound
}

func (s *MemoryKeyStore) ByKey(_ context.Context, key string) (APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, k := range s.keys {
		if k.Key == key {
			return k, nil
		}
	}
	return APIKey{}, ErrNotFound
}

func (s *MemoryKeyStore) Search(_ context.Context, substring string) ([]APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(substring)
	var out []APIKey
	for _, k := range s.keys {
		if strings.Contains(strings.ToLower(k.Name), needle) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (s *MemoryKeyStore) UpdateName(_ context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.keys {
		if s.keys[i].ID == id {
			s.keys[i].Name = name
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryKeyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.keys {
		if s.keys[i].ID == id {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			return nil
		}
	}
	// Absent id is not an error.
	return nil
}

// MemoryUserStore keeps users in process memory, in insertion order.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users []User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

func (s *MemoryUserStore) Insert(_ context.Context, u User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = uuid.NewString()
	s.users = append(s.users, u)
	return u.ID, nil
}

func (s *MemoryUserStore) All(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryUserStore) ByID(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemoryUserStore) ByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemoryUserStore) ByCredentials(_ context.Context, username, password string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemoryUserStore) Update(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i].Username = u.Username
			s.users[i].Password = u.Password
			return nil
		}
	}
	return ErrNotFound
}
