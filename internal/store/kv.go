package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"proinvoice/internal/domain"
)

// Persisted record keys. One logical record per key, JSON-encoded, matching
// the export/restore surface.
const (
	KeyPreferences      = "proinvoice_prefs"
	KeyCurrentDraft     = "proinvoice_current_draft"
	KeyMarkupProfiles   = "proinvoice_markups"
	KeyDepositProfiles  = "proinvoice_deposits"
	KeyMaterialProfiles = "proinvoice_material_profiles"
	KeyBrandingProfiles = "proinvoice_branding"
	KeySavedDocuments   = "proinvoice_invoices"
)

// KV is the keyed blob contract the stores persist through.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// ResetAll wipes every key. It is the administrative escape hatch and is
	// only reachable through the confirmed admin endpoint.
	ResetAll(ctx context.Context) error
}

type kvStore struct {
	db *sqlx.DB
}

// NewKV creates a database-backed KV store.
func NewKV(db *sqlx.DB) KV {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := s.db.Rebind("SELECT value FROM blobs WHERE key = ?")
	err := s.db.GetContext(ctx, &value, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("kvStore.Get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *kvStore) Put(ctx context.Context, key string, value []byte) error {
	query := s.db.Rebind(`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("kvStore.Put %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	query := s.db.Rebind("DELETE FROM blobs WHERE key = ?")
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("kvStore.Delete %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) ResetAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM blobs"); err != nil {
		return fmt.Errorf("kvStore.ResetAll: %w", err)
	}
	return nil
}
