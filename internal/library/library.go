// Package library archives named snapshots of the document together with the
// preference selection active at save time.
package library

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"proinvoice/internal/domain"
	"proinvoice/internal/store"
)

// Library is the saved-documents collection.
type Library struct {
	mu    sync.Mutex
	kv    store.KV
	saved []domain.SavedDocument
}

// New loads the saved-documents collection from the blob store.
func New(ctx context.Context, kv store.KV) *Library {
	l := &Library{kv: kv}
	raw, err := kv.Get(ctx, store.KeySavedDocuments)
	if err != nil && err != domain.ErrNotFound {
		log.Printf("library.Library: load failed, starting empty: %v", err)
	}
	l.saved = domain.ReconcileSavedDocuments(raw)
	return l
}

// List returns the saved documents in insertion order.
func (l *Library) List() []domain.SavedDocument {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.SavedDocument, len(l.saved))
	for i, s := range l.saved {
		out[i] = s
		out[i].Items = make([]domain.LineItem, len(s.Items))
		copy(out[i].Items, s.Items)
	}
	return out
}

// Save archives the document under the given name with a captured copy of
// the preferences. With asNew a fresh id is always appended; otherwise an
// existing record with the document's id is replaced in place, or appended
// when absent. Returns the saved id; on asNew the caller rebinds the active
// document to it.
func (l *Library) Save(ctx context.Context, doc domain.Document, name string, prefs domain.Preferences, asNew bool) string {
	if name == "" {
		name = doc.Name
	}
	if name == "" {
		name = fmt.Sprintf("Invoice %s", doc.Number)
	}

	record := domain.SavedDocument{
		Document: doc.Clone(),
		SavedAt:  time.Now().UTC(),
		Config:   prefs,
	}
	record.Name = name

	l.mu.Lock()
	defer l.mu.Unlock()

	if asNew {
		record.ID = domain.NewID()
		l.saved = append(l.saved, record)
		l.persistLocked(ctx)
		return record.ID
	}

	for i := range l.saved {
		if l.saved[i].ID == doc.ID {
			l.saved[i] = record
			l.persistLocked(ctx)
			return record.ID
		}
	}
	l.saved = append(l.saved, record)
	l.persistLocked(ctx)
	return record.ID
}

// Load returns the saved document and its captured preferences. The caller
// replaces the active document and preferences wholesale.
func (l *Library) Load(id string) (domain.Document, domain.Preferences, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.saved {
		if s.ID == id {
			return s.Document.Clone(), s.Config, nil
		}
	}
	return domain.Document{}, domain.Preferences{}, domain.ErrNotFound
}

// Delete removes a saved document.
func (l *Library) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.saved[:0]
	found := false
	for _, s := range l.saved {
		if s.ID == id {
			found = true
			continue
		}
		out = append(out, s)
	}
	l.saved = out
	if !found {
		return domain.ErrNotFound
	}
	l.persistLocked(ctx)
	return nil
}

// Replace overwrites the collection wholesale (restore path).
func (l *Library) Replace(ctx context.Context, saved []domain.SavedDocument) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if saved == nil {
		saved = []domain.SavedDocument{}
	}
	l.saved = saved
	l.persistLocked(ctx)
}

// persistLocked writes the collection; storage failures are logged only.
// Callers must hold l.mu.
func (l *Library) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(l.saved)
	if err != nil {
		log.Printf("library.Library: marshal: %v", err)
		return
	}
	if err := l.kv.Put(ctx, store.KeySavedDocuments, raw); err != nil {
		log.Printf("library.Library: persist: %v", err)
	}
}
