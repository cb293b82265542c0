// Package keygen produces the random API key tokens.
package keygen

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/storage"
)

// TokenLength is the length of a generated token in hex characters.
// 16 random bytes hex-encoded: 128 bits, one uniform hex digit per position.
const TokenLength = 32

// KeyLookup is the slice of the key store the generator needs.
type KeyLookup interface {
	ByKey(ctx context.Context, key string) (storage.APIKey, error)
}

// Generator draws tokens and rejects any that already exist in the store.
type Generator struct {
	keys KeyLookup
	rand io.Reader
}

func New(keys KeyLookup) *Generator {
	return &Generator{keys: keys, rand: rand.Reader}
}

// WithRand substitutes the random source. Tests use it to force collisions
// and fixed draws.
func (g *Generator) WithRand(r io.Reader) *Generator {
	g.rand = r
	return g
}

// Unique returns a token no persisted API key currently holds.
//
// The loop is deliberately uncapped: a collision needs two identical
// 128-bit draws, so a second iteration is already extraordinary. Capping
// would turn an impossible state into a new failure mode.
func (g *Generator) Unique(ctx context.Context) (string, error) {
	for {
		token, err := g.draw()
		if err != nil {
			return "", err
		}

		_, err = g.keys.ByKey(ctx, token)
		if errors.Is(err, storage.ErrNotFound) {
			return token, nil
		}
		if err != nil {
			return "", fmt.Errorf("keygen: uniqueness check: %w", err)
		}
		// Token already taken, redraw.
	}
}

func (g *Generator) draw() (string, error) {
	buf := make([]byte, TokenLength/2)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("keygen: read random source: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
