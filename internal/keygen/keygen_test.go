package keygen

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/storage"
)

func TestUnique_TokenShape(t *testing.T) {
	ctx := context.Background()
	gen := New(storage.NewMemoryKeyStore())

	for i := 0; i < 50; i++ {
		token, err := gen.Unique(ctx)
		require.NoError(t, err)

		assert.Len(t, token, TokenLength)
		for _, c := range token {
			hexDigit := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
			assert.True(t, hexDigit, "token %q has non-hex char %q", token, c)
		}
	}
}

func TestUnique_NeverReturnsSeededToken(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryKeyStore()

	_, err := store.Insert(ctx, storage.APIKey{Name: "taken", Key: "0000000000000000000000000000aaaa"})
	require.NoError(t, err)

	gen := New(store)
	for i := 0; i < 100; i++ {
		token, err := gen.Unique(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, "0000000000000000000000000000aaaa", token)
	}
}

func TestUnique_RedrawsOnCollision(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryKeyStore()

	// Fixed random source: the first 16 bytes hex-encode to the seeded
	// token, so the first draw must collide and the generator must take
	// the second.
	first := make([]byte, 16) // hex: 32 zeros
	second := bytes.Repeat([]byte{0xab}, 16)

	_, err := store.Insert(ctx, storage.APIKey{
		Name: "collider",
		Key:  "00000000000000000000000000000000",
	})
	require.NoError(t, err)

	src := bytes.NewReader(append(first, second...))
	gen := New(store).WithRand(src)

	token, err := gen.Unique(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abababababababababababababababab", token)
}

type failingLookup struct{}

func (failingLookup) ByKey(context.Context, string) (storage.APIKey, error) {
	return storage.APIKey{}, assert.AnError
}

func TestUnique_StoreFailurePropagates(t *testing.T) {
	gen := New(failingLookup{})

	_, err := gen.Unique(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
