// Package backup implements whole-state export and restore. Restore applies
// an ordered list of (source key, transform, apply) rules so legacy keys are
// honored deterministically: a later rule for the same collection shadows an
// earlier one, and absent keys leave the live collection untouched.
package backup

import (
	"context"
	"encoding/json"
	"time"

	"proinvoice/internal/domain"
	"proinvoice/internal/library"
	"proinvoice/internal/profile"
	"proinvoice/internal/session"
)

// Version is the current backup file version.
const Version = 2

// File is the backup envelope.
type File struct {
	Version int    `json:"version"`
	Date    string `json:"date"`
	Data    Data   `json:"data"`
}

// Data holds the exported collections. Legacy keys (savedMaterials,
// logoProfiles) appear only in old backups and are never written.
type Data struct {
	MarkupProfiles   json.RawMessage `json:"markupProfiles,omitempty"`
	DepositProfiles  json.RawMessage `json:"depositProfiles,omitempty"`
	MaterialProfiles json.RawMessage `json:"materialProfiles,omitempty"`
	SavedMaterials   json.RawMessage `json:"savedMaterials,omitempty"`
	BrandingProfiles json.RawMessage `json:"brandingProfiles,omitempty"`
	LogoProfiles     json.RawMessage `json:"logoProfiles,omitempty"`
	SavedInvoices    json.RawMessage `json:"savedInvoices,omitempty"`
	Preferences      json.RawMessage `json:"preferences,omitempty"`
	CurrentDraft     json.RawMessage `json:"currentDraft,omitempty"`
}

// Service exports and restores the whole application state.
type Service struct {
	profiles *profile.Store
	session  *session.Manager
	library  *library.Library
}

// NewService creates a backup Service over the live stores.
func NewService(profiles *profile.Store, sess *session.Manager, lib *library.Library) *Service {
	return &Service{profiles: profiles, session: sess, library: lib}
}

// Export captures every collection into a version-2 backup file.
func (s *Service) Export() ([]byte, error) {
	markups, deposits, materials, brandings := s.profiles.Snapshot()

	mustRaw := func(v interface{}) json.RawMessage {
		raw, _ := json.Marshal(v)
		return raw
	}

	file := File{
		Version: Version,
		Date:    time.Now().UTC().Format(time.RFC3339),
		Data: Data{
			MarkupProfiles:   mustRaw(markups),
			DepositProfiles:  mustRaw(deposits),
			MaterialProfiles: mustRaw(materials),
			BrandingProfiles: mustRaw(brandings),
			SavedInvoices:    mustRaw(s.library.List()),
			Preferences:      mustRaw(s.session.Preferences()),
			CurrentDraft:     mustRaw(s.session.Document()),
		},
	}
	return json.MarshalIndent(file, "", "  ")
}

// FileName derives the download filename for an export.
func FileName(now time.Time) string {
	return "ProInvoice_Backup_" + now.Format(domain.DateFormat) + ".json"
}

// Restore replaces live collections from a backup. Every key present in the
// backup overwrites the corresponding collection wholesale; absent keys are
// untouched, so an empty data object is a valid backup that restores
// nothing. Parsing happens before anything is applied, so a malformed
// backup leaves all state unmodified.
func (s *Service) Restore(ctx context.Context, raw []byte) error {
	var file struct {
		Version int             `json:"version"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return domain.ErrInvalidBackupFormat
	}
	if len(file.Data) == 0 || string(file.Data) == "null" {
		return domain.ErrInvalidBackupFormat
	}
	var data Data
	if err := json.Unmarshal(file.Data, &data); err != nil {
		return domain.ErrInvalidBackupFormat
	}

	type rule struct {
		src   json.RawMessage
		parse func(json.RawMessage) (func(), error)
	}

	rules := []rule{
		{data.MarkupProfiles, func(raw json.RawMessage) (func(), error) {
			var profiles []domain.AdjustmentProfile
			if err := json.Unmarshal(raw, &profiles); err != nil {
				return nil, err
			}
			clean := domain.ReconcileAdjustmentProfiles(raw, domain.DefaultMarkupProfiles())
			return func() { s.profiles.ReplaceMarkups(ctx, clean) }, nil
		}},
		{data.DepositProfiles, func(raw json.RawMessage) (func(), error) {
			var profiles []domain.AdjustmentProfile
			if err := json.Unmarshal(raw, &profiles); err != nil {
				return nil, err
			}
			clean := domain.ReconcileAdjustmentProfiles(raw, domain.DefaultDepositProfiles())
			return func() { s.profiles.ReplaceDeposits(ctx, clean) }, nil
		}},
		{data.MaterialProfiles, func(raw json.RawMessage) (func(), error) {
			var profiles []domain.MaterialProfile
			if err := json.Unmarshal(raw, &profiles); err != nil {
				return nil, err
			}
			clean := domain.ReconcileMaterialProfiles(raw)
			return func() { s.profiles.ReplaceMaterials(ctx, clean) }, nil
		}},
		// Legacy flat material list: wrapped into a single synthesized
		// profile, applied only when materialProfiles is absent.
		{s.legacyMaterials(data), func(raw json.RawMessage) (func(), error) {
			var entries []domain.MaterialEntry
			if err := json.Unmarshal(raw, &entries); err != nil {
				return nil, err
			}
			wrapped := []domain.MaterialProfile{{
				ID:    "default",
				Name:  "Imported List",
				Items: entries,
			}}
			return func() { s.profiles.ReplaceMaterials(ctx, wrapped) }, nil
		}},
		{data.BrandingProfiles, func(raw json.RawMessage) (func(), error) {
			var profiles []domain.BrandingProfile
			if err := json.Unmarshal(raw, &profiles); err != nil {
				return nil, err
			}
			clean := domain.ReconcileBrandingProfiles(raw)
			return func() { s.profiles.ReplaceBrandings(ctx, clean) }, nil
		}},
		// Legacy alias: applied after brandingProfiles so it wins when both
		// keys appear, matching the historical restore order.
		{data.LogoProfiles, func(raw json.RawMessage) (func(), error) {
			var profiles []domain.BrandingProfile
			if err := json.Unmarshal(raw, &profiles); err != nil {
				return nil, err
			}
			clean := domain.ReconcileBrandingProfiles(raw)
			return func() { s.profiles.ReplaceBrandings(ctx, clean) }, nil
		}},
		{data.SavedInvoices, func(raw json.RawMessage) (func(), error) {
			var saved []domain.SavedDocument
			if err := json.Unmarshal(raw, &saved); err != nil {
				return nil, err
			}
			clean := domain.ReconcileSavedDocuments(raw)
			return func() { s.library.Replace(ctx, clean) }, nil
		}},
		{data.Preferences, func(raw json.RawMessage) (func(), error) {
			var prefs domain.Preferences
			if err := json.Unmarshal(raw, &prefs); err != nil {
				return nil, err
			}
			clean := domain.ReconcilePreferences(raw)
			return func() { s.session.ReplacePreferences(clean) }, nil
		}},
		{data.CurrentDraft, func(raw json.RawMessage) (func(), error) {
			var doc domain.Document
			if err := json.Unmarshal(raw, &doc); err != nil {
				return nil, err
			}
			clean := domain.ReconcileDocument(raw, time.Now())
			return func() { s.session.ReplaceDocument(clean) }, nil
		}},
	}

	// Parse everything first; apply only when the whole file is sound.
	var applies []func()
	for _, r := range rules {
		if len(r.src) == 0 {
			continue
		}
		apply, err := r.parse(r.src)
		if err != nil {
			return domain.ErrInvalidBackupFormat
		}
		applies = append(applies, apply)
	}
	for _, apply := range applies {
		apply()
	}
	return nil
}

// legacyMaterials returns the savedMaterials payload only when the modern
// key is absent.
func (s *Service) legacyMaterials(data Data) json.RawMessage {
	if len(data.MaterialProfiles) > 0 {
		return nil
	}
	return data.SavedMaterials
}
