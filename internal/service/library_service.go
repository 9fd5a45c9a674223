package service

import (
	"context"

	"proinvoice/internal/domain"
	"proinvoice/internal/library"
	"proinvoice/internal/session"
)

// SaveDocumentInput is the DTO for saving the active draft to the library.
type SaveDocumentInput struct {
	Name  string `json:"name"`
	AsNew bool   `json:"asNew"`
}

// LibraryService defines the saved-document library contract.
type LibraryService interface {
	List(ctx context.Context) []domain.SavedDocument
	Save(ctx context.Context, input SaveDocumentInput) (string, error)
	Load(ctx context.Context, id string) (domain.Document, error)
	Delete(ctx context.Context, id string) error
}

type libraryService struct {
	library *library.Library
	session *session.Manager
}

// NewLibraryService creates a LibraryService.
func NewLibraryService(lib *library.Library, sess *session.Manager) LibraryService {
	return &libraryService{library: lib, session: sess}
}

func (s *libraryService) List(ctx context.Context) []domain.SavedDocument {
	return s.library.List()
}

// Save captures the active draft together with the active preferences. With
// AsNew the record gets a fresh id and the draft adopts it, so later plain
// saves overwrite the copy rather than the source.
func (s *libraryService) Save(ctx context.Context, input SaveDocumentInput) (string, error) {
	doc := s.session.Document()
	prefs := s.session.Preferences()
	id := s.library.Save(ctx, doc, input.Name, prefs, input.AsNew)
	if input.AsNew {
		name := input.Name
		if name == "" {
			name = doc.Name
		}
		s.session.AdoptID(id, name)
	}
	return id, nil
}

// Load replaces the active draft and preferences with a saved record.
func (s *libraryService) Load(ctx context.Context, id string) (domain.Document, error) {
	doc, prefs, err := s.library.Load(id)
	if err != nil {
		return domain.Document{}, err
	}
	s.session.ReplaceDocument(doc)
	s.session.ReplacePreferences(prefs)
	return s.session.Document(), nil
}

func (s *libraryService) Delete(ctx context.Context, id string) error {
	return s.library.Delete(ctx, id)
}
