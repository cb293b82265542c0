package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/storage"
)

func TestCreate_DuplicateUsernameRejected(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryUserStore()
	svc := NewService(store)

	first, err := svc.Create(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = svc.Create(ctx, "alice", "pw2")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "alice", all[0].Username)
	assert.Equal(t, "pw1", all[0].Password)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryUserStore()
	svc := NewService(store)

	_, err := svc.Create(ctx, "admin", "hunter2")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"match", "admin", "hunter2", nil},
		{"wrong password", "admin", "hunter3", ErrInvalidCredentials},
		{"unknown user", "nobody", "hunter2", ErrInvalidCredentials},
		{"case sensitive username", "Admin", "hunter2", ErrInvalidCredentials},
		{"case sensitive password", "admin", "Hunter2", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Authenticate(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", u.Username)
		})
	}
}

func TestUpdate_MissingUser(t *testing.T) {
	svc := NewService(storage.NewMemoryUserStore())

	err := svc.Update(context.Background(), "missing", "bob", "pw")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdate_SkipsUniquenessCheck(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryUserStore()
	svc := NewService(store)

	_, err := svc.Create(ctx, "alice", "pw")
	require.NoError(t, err)
	bob, err := svc.Create(ctx, "bob", "pw")
	require.NoError(t, err)

	// Edit may move bob onto alice's username; only create guards
	// duplicates.
	require.NoError(t, svc.Update(ctx, bob.ID, "alice", "pw2"))

	got, err := svc.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "pw2", got.Password)
}
