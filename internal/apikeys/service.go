// Package apikeys holds the API key operations behind the web handlers.
package apikeys

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/keygen"
	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/storage"
)

// ExportFilename is the attachment name of the CSV download.
const ExportFilename = "api-keys.csv"

type Service struct {
	store storage.KeyStore
	gen   *keygen.Generator
}

func NewService(store storage.KeyStore, gen *keygen.Generator) *Service {
	return &Service{store: store, gen: gen}
}

// Create draws a unique token and persists a new record labelled name.
func (s *Service) Create(ctx context.Context, name string) (storage.APIKey, error) {
	token, err := s.gen.Unique(ctx)
	if err != nil {
		return storage.APIKey{}, err
	}

	key := storage.APIKey{Name: name, Key: token}
	id, err := s.store.Insert(ctx, key)
	if err != nil {
		return storage.APIKey{}, err
	}

	key.ID = id
	return key, nil
}

// List returns every record in store order.
func (s *Service) List(ctx context.Context) ([]storage.APIKey, error) {
	return s.store.All(ctx)
}

// Search returns records whose name contains substring, case-insensitively.
func (s *Service) Search(ctx context.Context, substring string) ([]storage.APIKey, error) {
	return s.store.Search(ctx, substring)
}

// Get fetches one record by id; storage.ErrNotFound on a miss.
func (s *Service) Get(ctx context.Context, id string) (storage.APIKey, error) {
	return s.store.ByID(ctx, id)
}

// Rename overwrites the label of an existing record. The token itself is
// never mutated.
func (s *Service) Rename(ctx context.Context, id, name string) error {
	return s.store.UpdateName(ctx, id, name)
}

// Delete removes a record by id. Deleting an absent id succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// ExportCSV writes every record as RFC-4180 CSV to w: header `name,key`,
// one row per record, same order as List.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	keys, err := s.store.All(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "key"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, k := range keys {
		if err := cw.Write([]string{k.Name, k.Key}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
