package domain

import (
	"encoding/json"
	"time"
)

// Reconcile functions repair loaded or imported blobs against the defaults.
// A persisted blob is never trusted directly: each function starts from a
// fully populated default value, overlays the stored fields, and patches any
// structurally invalid remainder.

// ReconcileDocument merges a stored draft over the default document.
func ReconcileDocument(raw []byte, now time.Time) Document {
	doc := DefaultDocument(now)
	if len(raw) == 0 {
		return doc
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return DefaultDocument(now)
	}
	if doc.ID == "" {
		doc.ID = NewID()
	}
	if !ValidDocumentKinds[doc.Kind] {
		doc.Kind = KindInvoice
	}
	if doc.StyleVariant == "" {
		doc.StyleVariant = "classic"
	}
	if doc.Items == nil {
		doc.Items = []LineItem{DefaultLineItem()}
	}
	for i := range doc.Items {
		if doc.Items[i].ID == "" {
			doc.Items[i].ID = NewID()
		}
	}
	return doc
}

// ReconcilePreferences merges stored preferences over the defaults.
func ReconcilePreferences(raw []byte) Preferences {
	prefs := DefaultPreferences()
	if len(raw) == 0 {
		return prefs
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return DefaultPreferences()
	}
	if prefs.TaxRate < 0 {
		prefs.TaxRate = 0
	}
	if _, ok := FontByName(prefs.HeadingFont); !ok {
		prefs.HeadingFont = "Inter"
	}
	if _, ok := FontByName(prefs.BodyFont); !ok {
		prefs.BodyFont = "Inter"
	}
	if _, ok := FontByName(prefs.DataFont); !ok {
		prefs.DataFont = "Inter"
	}
	return prefs
}

// ReconcileAdjustmentProfiles validates a stored adjustment profile list,
// substituting defaults when the blob is unreadable.
func ReconcileAdjustmentProfiles(raw []byte, defaults []AdjustmentProfile) []AdjustmentProfile {
	if len(raw) == 0 {
		return defaults
	}
	var profiles []AdjustmentProfile
	if err := json.Unmarshal(raw, &profiles); err != nil || profiles == nil {
		return defaults
	}
	out := profiles[:0]
	for _, p := range profiles {
		if p.ID == "" {
			p.ID = NewID()
		}
		if p.Kind != AdjustFixed {
			p.Kind = AdjustPercent
		}
		out = append(out, p)
	}
	return out
}

// ReconcileMaterialProfiles validates a stored material profile list. The
// result always contains at least one profile.
func ReconcileMaterialProfiles(raw []byte) []MaterialProfile {
	profiles := DefaultMaterialProfiles()
	if len(raw) == 0 {
		return profiles
	}
	var loaded []MaterialProfile
	if err := json.Unmarshal(raw, &loaded); err != nil || len(loaded) == 0 {
		return profiles
	}
	for i := range loaded {
		if loaded[i].ID == "" {
			loaded[i].ID = NewID()
		}
		if loaded[i].Items == nil {
			loaded[i].Items = []MaterialEntry{}
		}
		for j := range loaded[i].Items {
			if loaded[i].Items[j].ID == "" {
				loaded[i].Items[j].ID = NewID()
			}
		}
	}
	return loaded
}

// ReconcileBrandingProfiles validates a stored branding profile list.
func ReconcileBrandingProfiles(raw []byte) []BrandingProfile {
	if len(raw) == 0 {
		return DefaultBrandingProfiles()
	}
	var profiles []BrandingProfile
	if err := json.Unmarshal(raw, &profiles); err != nil || profiles == nil {
		return DefaultBrandingProfiles()
	}
	for i := range profiles {
		if profiles[i].ID == "" {
			profiles[i].ID = NewID()
		}
		switch profiles[i].Orientation {
		case OrientLeft, OrientRight, OrientTop, OrientBottom:
		default:
			profiles[i].Orientation = OrientTop
		}
		if profiles[i].LogoSize <= 0 {
			profiles[i].LogoSize = 150
		}
	}
	return profiles
}

// ReconcileSavedDocuments validates the stored document library.
func ReconcileSavedDocuments(raw []byte) []SavedDocument {
	if len(raw) == 0 {
		return []SavedDocument{}
	}
	var saved []SavedDocument
	if err := json.Unmarshal(raw, &saved); err != nil || saved == nil {
		return []SavedDocument{}
	}
	for i := range saved {
		if saved[i].ID == "" {
			saved[i].ID = NewID()
		}
		if !ValidDocumentKinds[saved[i].Kind] {
			saved[i].Kind = KindInvoice
		}
		if saved[i].Items == nil {
			saved[i].Items = []LineItem{}
		}
	}
	return saved
}
