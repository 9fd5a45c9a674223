package service

import (
	"context"

	"proinvoice/internal/domain"
	"proinvoice/internal/pricing"
	"proinvoice/internal/profile"
	"proinvoice/internal/session"
)

// AddItemInput selects the source for a new line item. Both fields empty
// means a blank line; otherwise the entry is copied from a material catalog.
type AddItemInput struct {
	ProfileID string `json:"profileId"`
	EntryID   string `json:"entryId"`
}

// DocumentService defines the editing session contract: the active document,
// its line items, and the derived totals.
type DocumentService interface {
	Get(ctx context.Context) domain.Document
	Patch(ctx context.Context, patch session.DocumentPatch) (domain.Document, error)
	AddItem(ctx context.Context, input AddItemInput) (domain.Document, error)
	DuplicateItem(ctx context.Context, itemID string) (domain.Document, error)
	UpdateItem(ctx context.Context, itemID string, patch session.LineItemPatch) domain.Document
	RemoveItem(ctx context.Context, itemID string) domain.Document
	Reset(ctx context.Context) domain.Document
	Totals(ctx context.Context) domain.Totals
}

type documentService struct {
	session  *session.Manager
	profiles *profile.Store
}

// NewDocumentService creates a DocumentService over the live session and
// profile store.
func NewDocumentService(sess *session.Manager, profiles *profile.Store) DocumentService {
	return &documentService{session: sess, profiles: profiles}
}

func (s *documentService) Get(ctx context.Context) domain.Document {
	return s.session.Document()
}

func (s *documentService) Patch(ctx context.Context, patch session.DocumentPatch) (domain.Document, error) {
	if err := s.session.Apply(patch); err != nil {
		return domain.Document{}, err
	}
	return s.session.Document(), nil
}

func (s *documentService) AddItem(ctx context.Context, input AddItemInput) (domain.Document, error) {
	var source *domain.MaterialEntry
	if input.EntryID != "" {
		p, err := s.profiles.MaterialProfileByID(input.ProfileID)
		if err != nil {
			return domain.Document{}, err
		}
		for i := range p.Items {
			if p.Items[i].ID == input.EntryID {
				source = &p.Items[i]
				break
			}
		}
		if source == nil {
			return domain.Document{}, domain.ErrNotFound
		}
	}
	s.session.AddLineItem(source)
	return s.session.Document(), nil
}

func (s *documentService) DuplicateItem(ctx context.Context, itemID string) (domain.Document, error) {
	if _, err := s.session.DuplicateLineItem(itemID); err != nil {
		return domain.Document{}, err
	}
	return s.session.Document(), nil
}

func (s *documentService) UpdateItem(ctx context.Context, itemID string, patch session.LineItemPatch) domain.Document {
	s.session.UpdateLineItem(itemID, patch)
	return s.session.Document()
}

func (s *documentService) RemoveItem(ctx context.Context, itemID string) domain.Document {
	s.session.RemoveLineItem(itemID)
	return s.session.Document()
}

// Reset discards the draft for a fresh document. The from-party is seeded
// from the selected branding profile when one resolves.
func (s *documentService) Reset(ctx context.Context) domain.Document {
	prefs := s.session.Preferences()
	branding := s.profiles.ResolveBranding(prefs.SelectedBrandingID)
	return s.session.Reset(branding)
}

// Totals derives the pricing breakdown for the current draft. Selected
// profile ids that no longer resolve contribute nothing.
func (s *documentService) Totals(ctx context.Context) domain.Totals {
	doc := s.session.Document()
	prefs := s.session.Preferences()
	markup := s.profiles.ResolveAdjustment(domain.ProfileMarkup, prefs.SelectedMarkupID)
	deposit := s.profiles.ResolveAdjustment(domain.ProfileDeposit, prefs.SelectedDepositID)
	return pricing.ComputeTotals(doc.Items, doc.IsPaid, prefs.TaxRate, markup, deposit)
}
