package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKeyStore_SearchCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKeyStore()

	for _, name := range []string{"prod-east", "staging", "prod-west"} {
		_, err := store.Insert(ctx, APIKey{Name: name, Key: "k-" + name})
		require.NoError(t, err)
	}

	tests := []struct {
		substring string
		want      []string
	}{
		{"prod", []string{"prod-east", "prod-west"}},
		{"PROD", []string{"prod-east", "prod-west"}},
		{"stag", []string{"staging"}},
		{"", []string{"prod-east", "staging", "prod-west"}},
		{"nomatch", nil},
	}

	for _, tt := range tests {
		got, err := store.Search(ctx, tt.substring)
		require.NoError(t, err)

		var names []string
		for _, k := range got {
			names = append(names, k.Name)
		}
		assert.Equal(t, tt.want, names, "substring %q", tt.substring)
	}
}

func TestMemoryKeyStore_ByKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKeyStore()

	_, err := store.Insert(ctx, APIKey{Name: "a", Key: "deadbeef"})
	require.NoError(t, err)

	k, err := store.ByKey(ctx, "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "a", k.Name)

	_, err = store.ByKey(ctx, "cafebabe")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryKeyStore_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKeyStore()

	id, err := store.Insert(ctx, APIKey{Name: "a", Key: "k1"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	require.NoError(t, store.Delete(ctx, id))
	require.NoError(t, store.Delete(ctx, "never-existed"))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryKeyStore_UpdateNameMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKeyStore()

	err := store.UpdateName(ctx, "missing", "renamed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserStore_ByCredentialsExactMatch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	_, err := store.Insert(ctx, User{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	u, err := store.ByCredentials(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = store.ByCredentials(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.ByCredentials(ctx, "Alice", "s3cret")
	assert.ErrorIs(t, err, ErrNotFound, "username match is case-sensitive")
}

func TestMemoryUserStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	id, err := store.Insert(ctx, User{Username: "alice", Password: "old"})
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, User{ID: id, Username: "alice2", Password: "new"}))

	u, err := store.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice2", u.Username)
	assert.Equal(t, "new", u.Password)

	err = store.Update(ctx, User{ID: "missing", Username: "x", Password: "y"})
	assert.ErrorIs(t, err, ErrNotFound)
}
