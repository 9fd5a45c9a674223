// Package session owns the active document and the process-wide preferences.
// Every mutation swaps whole structures under one lock, so a reader never
// observes a partially edited document. The draft is autosaved on a debounce
// timer; preferences persist immediately on every change.
package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"proinvoice/internal/domain"
	"proinvoice/internal/store"
)

// Manager is the editing session.
type Manager struct {
	mu       sync.Mutex
	kv       store.KV
	debounce time.Duration

	doc   domain.Document
	prefs domain.Preferences

	draftTimer *time.Timer
}

// NewManager loads the draft and preferences from the blob store, recovering
// to defaults for anything missing or unreadable.
func NewManager(ctx context.Context, kv store.KV, debounce time.Duration) *Manager {
	m := &Manager{kv: kv, debounce: debounce}
	m.doc = domain.ReconcileDocument(loadKey(ctx, kv, store.KeyCurrentDraft), time.Now())
	m.prefs = domain.ReconcilePreferences(loadKey(ctx, kv, store.KeyPreferences))
	return m
}

func loadKey(ctx context.Context, kv store.KV, key string) []byte {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if err != domain.ErrNotFound {
			log.Printf("session.Manager: load %s failed, using defaults: %v", key, err)
		}
		return nil
	}
	return raw
}

// Document returns a deep copy of the active document.
func (m *Manager) Document() domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Clone()
}

// Preferences returns a copy of the current preferences.
func (m *Manager) Preferences() domain.Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs
}

// DocumentPatch is a partial update to the document's header fields, parties,
// display toggles, and paid flag.
type DocumentPatch struct {
	Kind         *domain.DocumentKind `json:"template"`
	StyleVariant *string              `json:"templateStyle"`
	Number       *string              `json:"number"`
	Name         *string              `json:"name"`
	Date         *string              `json:"date"`
	DueDate      *string              `json:"dueDate"`
	FromName     *string              `json:"fromName"`
	FromAddress  *string              `json:"fromAddress"`
	FromExtra    *string              `json:"fromExtra"`
	ToName       *string              `json:"toName"`
	ToAddress    *string              `json:"toAddress"`
	Notes        *string              `json:"notes"`

	ShowSignature         *bool `json:"showSignature"`
	ShowSignatureDateLine *bool `json:"showSignatureDateLine"`
	ShowNotes             *bool `json:"showNotes"`
	ShowNotesLabel        *bool `json:"showNotesLabel"`
	ShowMaterialsList     *bool `json:"showMaterialsList"`
	ShowDateLine          *bool `json:"showDateLine"`
	ShowDueDateLine       *bool `json:"showDueDateLine"`
	HideItemsOnMain       *bool `json:"hideItemsOnMain"`
	HideMarkup            *bool `json:"hideMarkup"`
	IsPaid                *bool `json:"isPaid"`
}

// Apply merges the patch into the document. Invalid kinds are rejected.
func (m *Manager) Apply(patch DocumentPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.doc.Clone()

	if patch.Kind != nil {
		if !domain.ValidDocumentKinds[*patch.Kind] {
			return domain.ErrInvalidDocumentKind
		}
		doc.Kind = *patch.Kind
	}
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&doc.StyleVariant, patch.StyleVariant)
	setString(&doc.Number, patch.Number)
	setString(&doc.Name, patch.Name)
	setString(&doc.Date, patch.Date)
	setString(&doc.DueDate, patch.DueDate)
	setString(&doc.From.Name, patch.FromName)
	setString(&doc.From.Address, patch.FromAddress)
	setString(&doc.From.Extra, patch.FromExtra)
	setString(&doc.To.Name, patch.ToName)
	setString(&doc.To.Address, patch.ToAddress)
	setString(&doc.Notes, patch.Notes)
	setBool(&doc.ShowSignature, patch.ShowSignature)
	setBool(&doc.ShowSignatureDateLine, patch.ShowSignatureDateLine)
	setBool(&doc.ShowNotes, patch.ShowNotes)
	setBool(&doc.ShowNotesLabel, patch.ShowNotesLabel)
	setBool(&doc.ShowMaterialsList, patch.ShowMaterialsList)
	setBool(&doc.ShowDateLine, patch.ShowDateLine)
	setBool(&doc.ShowDueDateLine, patch.ShowDueDateLine)
	setBool(&doc.HideItemsOnMain, patch.HideItemsOnMain)
	setBool(&doc.HideMarkup, patch.HideMarkup)
	setBool(&doc.IsPaid, patch.IsPaid)

	m.doc = doc
	m.scheduleAutosaveLocked()
	return nil
}

// AddLineItem appends a line item. With a nil source it is a blank
// zero-priced line; with a catalog entry the name and price are copied (not
// referenced), quantity starts at 1, and the item gets a fresh id. Returns
// the new item's id.
func (m *Manager) AddLineItem(source *domain.MaterialEntry) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := domain.LineItem{ID: domain.NewID(), Quantity: 1}
	if source != nil {
		item.Description = source.Name
		item.UnitPrice = source.UnitPrice
		item.Image = source.Image
	} else {
		item.UnitPrice = 0
	}
	doc := m.doc.Clone()
	doc.Items = append(doc.Items, item)
	m.doc = doc
	m.scheduleAutosaveLocked()
	return item.ID
}

// DuplicateLineItem appends a copy of an existing line under a fresh id.
func (m *Manager) DuplicateLineItem(id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.doc.Items {
		if item.ID == id {
			dup := item
			dup.ID = domain.NewID()
			doc := m.doc.Clone()
			doc.Items = append(doc.Items, dup)
			m.doc = doc
			m.scheduleAutosaveLocked()
			return dup.ID, nil
		}
	}
	return "", domain.ErrNotFound
}

// LineItemPatch is a partial update to one line item. Numeric fields accept
// quoted values and coerce unparseable input to zero.
type LineItemPatch struct {
	Description *string         `json:"description"`
	Quantity    *domain.Numeric `json:"quantity"`
	UnitPrice   *domain.Numeric `json:"price"`
	Image       *string         `json:"image"`
}

// UpdateLineItem applies a patch to one line item. Unknown ids are a silent
// no-op.
func (m *Manager) UpdateLineItem(id string, patch LineItemPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.doc.Clone()
	for i := range doc.Items {
		if doc.Items[i].ID != id {
			continue
		}
		if patch.Description != nil {
			doc.Items[i].Description = *patch.Description
		}
		if patch.Quantity != nil {
			doc.Items[i].Quantity = patch.Quantity.Float()
		}
		if patch.UnitPrice != nil {
			doc.Items[i].UnitPrice = patch.UnitPrice.Float()
		}
		if patch.Image != nil {
			doc.Items[i].Image = *patch.Image
		}
		m.doc = doc
		m.scheduleAutosaveLocked()
		return
	}
}

// RemoveLineItem deletes one line item.
func (m *Manager) RemoveLineItem(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.doc.Clone()
	out := doc.Items[:0]
	for _, item := range doc.Items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	doc.Items = out
	m.doc = doc
	m.scheduleAutosaveLocked()
}

// Reset replaces the document with a fresh one: new id, randomized number,
// issue date now, due date in two weeks, one default line item. When a
// branding profile is supplied the from-party is seeded from it.
func (m *Manager) Reset(branding *domain.BrandingProfile) domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := domain.DefaultDocument(time.Now())
	doc.Number = domain.NewDocumentNumber()
	if branding != nil {
		doc.From = domain.Party{
			Name:    branding.CompanyName,
			Address: branding.Address,
			Extra:   branding.Extra,
		}
	}
	m.doc = doc
	m.scheduleAutosaveLocked()
	return doc.Clone()
}

// ApplyBranding rewrites the from-party from a branding profile and records
// the selection.
func (m *Manager) ApplyBranding(b *domain.BrandingProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b == nil {
		return
	}
	doc := m.doc.Clone()
	doc.From = domain.Party{Name: b.CompanyName, Address: b.Address, Extra: b.Extra}
	m.doc = doc
	m.prefs.SelectedBrandingID = b.ID
	m.persistPreferencesLocked()
	m.scheduleAutosaveLocked()
}

// PreferencesPatch is a partial update to the preference record.
type PreferencesPatch struct {
	SelectedMarkupID   *string         `json:"selectedMarkupId"`
	SelectedDepositID  *string         `json:"selectedDepositId"`
	SelectedBrandingID *string         `json:"selectedBrandingId"`
	TaxRate            *domain.Numeric `json:"taxRate"`
	HeadingFont        *string         `json:"headingFont"`
	BodyFont           *string         `json:"bodyFont"`
	DataFont           *string         `json:"dataFont"`
}

// UpdatePreferences merges the patch and persists immediately.
func (m *Manager) UpdatePreferences(ctx context.Context, patch PreferencesPatch) domain.Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	if patch.SelectedMarkupID != nil {
		m.prefs.SelectedMarkupID = *patch.SelectedMarkupID
	}
	if patch.SelectedDepositID != nil {
		m.prefs.SelectedDepositID = *patch.SelectedDepositID
	}
	if patch.SelectedBrandingID != nil {
		m.prefs.SelectedBrandingID = *patch.SelectedBrandingID
	}
	if patch.TaxRate != nil {
		rate := patch.TaxRate.Float()
		if rate < 0 {
			rate = 0
		}
		m.prefs.TaxRate = rate
	}
	if patch.HeadingFont != nil {
		m.prefs.HeadingFont = *patch.HeadingFont
	}
	if patch.BodyFont != nil {
		m.prefs.BodyFont = *patch.BodyFont
	}
	if patch.DataFont != nil {
		m.prefs.DataFont = *patch.DataFont
	}
	m.persistPreferencesLocked()
	return m.prefs
}

// ReplaceDocument swaps in a document wholesale (library load, restore).
func (m *Manager) ReplaceDocument(doc domain.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = doc.Clone()
	m.scheduleAutosaveLocked()
}

// ReplacePreferences swaps in preferences wholesale (library load, restore).
func (m *Manager) ReplacePreferences(prefs domain.Preferences) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = prefs
	m.persistPreferencesLocked()
}

// AdoptID rebinds the active document to a new saved id (the save-as-new
// coupling: subsequent plain saves overwrite the new record).
func (m *Manager) AdoptID(id, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.doc.Clone()
	doc.ID = id
	doc.Name = name
	m.doc = doc
	m.scheduleAutosaveLocked()
}

// Flush writes the draft synchronously, cancelling any pending debounce.
// Called best-effort on shutdown; an abrupt exit inside the debounce window
// loses at most the latest edit.
func (m *Manager) Flush(ctx context.Context) {
	m.mu.Lock()
	if m.draftTimer != nil {
		m.draftTimer.Stop()
		m.draftTimer = nil
	}
	doc := m.doc.Clone()
	m.mu.Unlock()
	m.persistDraft(ctx, doc)
}

// scheduleAutosaveLocked coalesces draft writes within the debounce window.
// Callers must hold m.mu.
func (m *Manager) scheduleAutosaveLocked() {
	if m.debounce <= 0 {
		doc := m.doc.Clone()
		go m.persistDraft(context.Background(), doc)
		return
	}
	if m.draftTimer != nil {
		m.draftTimer.Reset(m.debounce)
		return
	}
	m.draftTimer = time.AfterFunc(m.debounce, func() {
		m.mu.Lock()
		doc := m.doc.Clone()
		m.draftTimer = nil
		m.mu.Unlock()
		m.persistDraft(context.Background(), doc)
	})
}

func (m *Manager) persistDraft(ctx context.Context, doc domain.Document) {
	raw, err := json.Marshal(doc)
	if err != nil {
		log.Printf("session.Manager: marshal draft: %v", err)
		return
	}
	if err := m.kv.Put(ctx, store.KeyCurrentDraft, raw); err != nil {
		log.Printf("session.Manager: autosave draft: %v", err)
	}
}

// persistPreferencesLocked writes preferences synchronously. Callers must
// hold m.mu.
func (m *Manager) persistPreferencesLocked() {
	raw, err := json.Marshal(m.prefs)
	if err != nil {
		log.Printf("session.Manager: marshal preferences: %v", err)
		return
	}
	if err := m.kv.Put(context.Background(), store.KeyPreferences, raw); err != nil {
		log.Printf("session.Manager: persist preferences: %v", err)
	}
}
