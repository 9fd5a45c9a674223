// Package profile holds the named configuration collections: markup and
// deposit adjustments, material catalogs, and branding identities. Mutations
// replace whole structures under a single lock and persist the owning
// collection; storage write failures are logged and never surfaced, per the
// recover-to-defaults policy.
package profile

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"proinvoice/internal/domain"
	"proinvoice/internal/store"
)

// Store owns the four profile collections.
type Store struct {
	mu sync.Mutex
	kv store.KV

	markups   []domain.AdjustmentProfile
	deposits  []domain.AdjustmentProfile
	materials []domain.MaterialProfile
	brandings []domain.BrandingProfile
}

// NewStore loads all profile collections from the blob store, substituting
// defaults for any key that is missing or unreadable.
func NewStore(ctx context.Context, kv store.KV) *Store {
	s := &Store{kv: kv}
	s.markups = domain.ReconcileAdjustmentProfiles(loadKey(ctx, kv, store.KeyMarkupProfiles), domain.DefaultMarkupProfiles())
	s.deposits = domain.ReconcileAdjustmentProfiles(loadKey(ctx, kv, store.KeyDepositProfiles), domain.DefaultDepositProfiles())
	s.materials = domain.ReconcileMaterialProfiles(loadKey(ctx, kv, store.KeyMaterialProfiles))
	s.brandings = domain.ReconcileBrandingProfiles(loadKey(ctx, kv, store.KeyBrandingProfiles))
	return s
}

func loadKey(ctx context.Context, kv store.KV, key string) []byte {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if err != domain.ErrNotFound {
			log.Printf("profile.Store: load %s failed, using defaults: %v", key, err)
		}
		return nil
	}
	return raw
}

func (s *Store) persist(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("profile.Store: marshal %s: %v", key, err)
		return
	}
	if err := s.kv.Put(ctx, key, raw); err != nil {
		log.Printf("profile.Store: persist %s: %v", key, err)
	}
}

// AdjustmentPatch is a partial update to a markup or deposit profile.
type AdjustmentPatch struct {
	Name   *string                `json:"name"`
	Kind   *domain.AdjustmentKind `json:"type"`
	Amount *float64               `json:"value"`
}

// MaterialEntryPatch is a partial update to a catalog entry.
type MaterialEntryPatch struct {
	Name      *string  `json:"name"`
	UnitPrice *float64 `json:"price"`
	Image     *string  `json:"image"`
}

// BrandingPatch is a partial update to a branding profile.
type BrandingPatch struct {
	ProfileName *string                 `json:"profileName"`
	CompanyName *string                 `json:"companyName"`
	Address     *string                 `json:"address"`
	Extra       *string                 `json:"extra"`
	Logo        *string                 `json:"logo"`
	LogoSize    *int                    `json:"logoSize"`
	Orientation *domain.LogoOrientation `json:"orientation"`
}

// --- Adjustment profiles (markup / deposit) ---

func (s *Store) adjustments(kind domain.ProfileKind) (*[]domain.AdjustmentProfile, string) {
	if kind == domain.ProfileDeposit {
		return &s.deposits, store.KeyDepositProfiles
	}
	return &s.markups, store.KeyMarkupProfiles
}

// ListAdjustments returns the markup or deposit profiles in insertion order.
func (s *Store) ListAdjustments(kind domain.ProfileKind) []domain.AdjustmentProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, _ := s.adjustments(kind)
	out := make([]domain.AdjustmentProfile, len(*list))
	copy(out, *list)
	return out
}

// CreateAdjustment appends a new markup or deposit profile and returns its id.
func (s *Store) CreateAdjustment(ctx context.Context, kind domain.ProfileKind, name string, adjKind domain.AdjustmentKind, amount float64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, key := s.adjustments(kind)
	p := domain.AdjustmentProfile{ID: domain.NewID(), Name: name, Kind: adjKind, Amount: amount}
	if p.Kind != domain.AdjustFixed {
		p.Kind = domain.AdjustPercent
	}
	*list = append(*list, p)
	s.persist(ctx, key, *list)
	return p.ID
}

// UpdateAdjustment applies a patch to an existing profile. An unknown id is a
// silent no-op.
func (s *Store) UpdateAdjustment(ctx context.Context, kind domain.ProfileKind, id string, patch AdjustmentPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, key := s.adjustments(kind)
	for i := range *list {
		if (*list)[i].ID != id {
			continue
		}
		if patch.Name != nil {
			(*list)[i].Name = *patch.Name
		}
		if patch.Kind != nil {
			(*list)[i].Kind = *patch.Kind
		}
		if patch.Amount != nil {
			(*list)[i].Amount = *patch.Amount
		}
		s.persist(ctx, key, *list)
		return
	}
}

// DeleteAdjustment removes a profile. Dangling references in Preferences are
// left untouched; readers resolve them lazily.
func (s *Store) DeleteAdjustment(ctx context.Context, kind domain.ProfileKind, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, key := s.adjustments(kind)
	out := (*list)[:0]
	for _, p := range *list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	*list = out
	s.persist(ctx, key, *list)
}

// ResolveAdjustment returns the profile with the given id, or nil when the
// reference does not resolve (deleted or never selected).
func (s *Store) ResolveAdjustment(kind domain.ProfileKind, id string) *domain.AdjustmentProfile {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, _ := s.adjustments(kind)
	for _, p := range *list {
		if p.ID == id {
			cp := p
			return &cp
		}
	}
	return nil
}

// --- Material profiles ---

// ListMaterialProfiles returns the material profiles in insertion order.
func (s *Store) ListMaterialProfiles() []domain.MaterialProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MaterialProfile, len(s.materials))
	for i, p := range s.materials {
		out[i] = cloneMaterialProfile(p)
	}
	return out
}

// MaterialProfileByID returns a copy of one material profile.
func (s *Store) MaterialProfileByID(id string) (domain.MaterialProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.materials {
		if p.ID == id {
			return cloneMaterialProfile(p), nil
		}
	}
	return domain.MaterialProfile{}, domain.ErrNotFound
}

// CreateMaterialProfile appends an empty named profile and returns its id.
func (s *Store) CreateMaterialProfile(ctx context.Context, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.MaterialProfile{ID: domain.NewID(), Name: name, Items: []domain.MaterialEntry{}}
	if p.Name == "" {
		p.Name = "New Profile"
	}
	s.materials = append(s.materials, p)
	s.persist(ctx, store.KeyMaterialProfiles, s.materials)
	return p.ID
}

// AddMaterialProfile appends an already-built profile (import path).
func (s *Store) AddMaterialProfile(ctx context.Context, p domain.MaterialProfile) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = domain.NewID()
	}
	if p.Items == nil {
		p.Items = []domain.MaterialEntry{}
	}
	s.materials = append(s.materials, p)
	s.persist(ctx, store.KeyMaterialProfiles, s.materials)
	return p.ID
}

// RenameMaterialProfile renames a profile. Unknown ids are a silent no-op.
func (s *Store) RenameMaterialProfile(ctx context.Context, id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.materials {
		if s.materials[i].ID == id {
			s.materials[i].Name = name
			s.persist(ctx, store.KeyMaterialProfiles, s.materials)
			return
		}
	}
}

// DeleteMaterialProfile removes a profile. Deleting the last remaining
// profile is rejected.
func (s *Store) DeleteMaterialProfile(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.materials) <= 1 {
		return domain.ErrLastMaterialProfile
	}
	out := s.materials[:0]
	found := false
	for _, p := range s.materials {
		if p.ID == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	s.materials = out
	if !found {
		return domain.ErrNotFound
	}
	s.persist(ctx, store.KeyMaterialProfiles, s.materials)
	return nil
}

// AddMaterialEntry appends a fresh entry to a profile and returns its id.
func (s *Store) AddMaterialEntry(ctx context.Context, profileID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.materials {
		if s.materials[i].ID != profileID {
			continue
		}
		entry := domain.MaterialEntry{ID: domain.NewID(), Name: "New Item"}
		s.materials[i].Items = append(s.materials[i].Items, entry)
		s.persist(ctx, store.KeyMaterialProfiles, s.materials)
		return entry.ID, nil
	}
	return "", domain.ErrNotFound
}

// UpdateMaterialEntry applies a patch to one catalog entry.
func (s *Store) UpdateMaterialEntry(ctx context.Context, profileID, entryID string, patch MaterialEntryPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.materials {
		if s.materials[i].ID != profileID {
			continue
		}
		for j := range s.materials[i].Items {
			if s.materials[i].Items[j].ID != entryID {
				continue
			}
			if patch.Name != nil {
				s.materials[i].Items[j].Name = *patch.Name
			}
			if patch.UnitPrice != nil {
				s.materials[i].Items[j].UnitPrice = *patch.UnitPrice
			}
			if patch.Image != nil {
				s.materials[i].Items[j].Image = *patch.Image
			}
			s.persist(ctx, store.KeyMaterialProfiles, s.materials)
			return
		}
	}
}

// DeleteMaterialEntry removes one catalog entry.
func (s *Store) DeleteMaterialEntry(ctx context.Context, profileID, entryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.materials {
		if s.materials[i].ID != profileID {
			continue
		}
		out := s.materials[i].Items[:0]
		for _, e := range s.materials[i].Items {
			if e.ID != entryID {
				out = append(out, e)
			}
		}
		s.materials[i].Items = out
		s.persist(ctx, store.KeyMaterialProfiles, s.materials)
		return
	}
}

// --- Branding profiles ---

// ListBrandingProfiles returns the branding profiles in insertion order.
func (s *Store) ListBrandingProfiles() []domain.BrandingProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.BrandingProfile, len(s.brandings))
	copy(out, s.brandings)
	return out
}

// CreateBrandingProfile appends a new branding identity and returns its id.
// Profile and company names are required.
func (s *Store) CreateBrandingProfile(ctx context.Context, p domain.BrandingProfile) (string, error) {
	if p.ProfileName == "" || p.CompanyName == "" {
		return "", domain.ErrProfileNameRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = domain.NewID()
	if p.LogoSize <= 0 {
		p.LogoSize = 150
	}
	switch p.Orientation {
	case domain.OrientLeft, domain.OrientRight, domain.OrientTop, domain.OrientBottom:
	default:
		p.Orientation = domain.OrientTop
	}
	s.brandings = append(s.brandings, p)
	s.persist(ctx, store.KeyBrandingProfiles, s.brandings)
	return p.ID, nil
}

// UpdateBrandingProfile applies a patch. Unknown ids are a silent no-op.
func (s *Store) UpdateBrandingProfile(ctx context.Context, id string, patch BrandingPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.brandings {
		if s.brandings[i].ID != id {
			continue
		}
		if patch.ProfileName != nil {
			s.brandings[i].ProfileName = *patch.ProfileName
		}
		if patch.CompanyName != nil {
			s.brandings[i].CompanyName = *patch.CompanyName
		}
		if patch.Address != nil {
			s.brandings[i].Address = *patch.Address
		}
		if patch.Extra != nil {
			s.brandings[i].Extra = *patch.Extra
		}
		if patch.Logo != nil {
			s.brandings[i].Logo = *patch.Logo
		}
		if patch.LogoSize != nil {
			s.brandings[i].LogoSize = *patch.LogoSize
		}
		if patch.Orientation != nil {
			s.brandings[i].Orientation = *patch.Orientation
		}
		s.persist(ctx, store.KeyBrandingProfiles, s.brandings)
		return
	}
}

// DeleteBrandingProfile removes a branding identity.
func (s *Store) DeleteBrandingProfile(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.brandings[:0]
	for _, p := range s.brandings {
		if p.ID != id {
			out = append(out, p)
		}
	}
	s.brandings = out
	s.persist(ctx, store.KeyBrandingProfiles, s.brandings)
}

// ResolveBranding returns the branding profile with the given id, or nil when
// the reference does not resolve.
func (s *Store) ResolveBranding(id string) *domain.BrandingProfile {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.brandings {
		if p.ID == id {
			cp := p
			return &cp
		}
	}
	return nil
}

// --- Wholesale replacement (restore path) ---

// Snapshot returns copies of all four collections for export.
func (s *Store) Snapshot() ([]domain.AdjustmentProfile, []domain.AdjustmentProfile, []domain.MaterialProfile, []domain.BrandingProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	markups := make([]domain.AdjustmentProfile, len(s.markups))
	copy(markups, s.markups)
	deposits := make([]domain.AdjustmentProfile, len(s.deposits))
	copy(deposits, s.deposits)
	materials := make([]domain.MaterialProfile, len(s.materials))
	for i, p := range s.materials {
		materials[i] = cloneMaterialProfile(p)
	}
	brandings := make([]domain.BrandingProfile, len(s.brandings))
	copy(brandings, s.brandings)
	return markups, deposits, materials, brandings
}

// ReplaceMarkups overwrites the markup collection wholesale.
func (s *Store) ReplaceMarkups(ctx context.Context, profiles []domain.AdjustmentProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markups = profiles
	s.persist(ctx, store.KeyMarkupProfiles, s.markups)
}

// ReplaceDeposits overwrites the deposit collection wholesale.
func (s *Store) ReplaceDeposits(ctx context.Context, profiles []domain.AdjustmentProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deposits = profiles
	s.persist(ctx, store.KeyDepositProfiles, s.deposits)
}

// ReplaceMaterials overwrites the material collection wholesale. An empty
// replacement falls back to the defaults so the last-profile invariant holds.
func (s *Store) ReplaceMaterials(ctx context.Context, profiles []domain.MaterialProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(profiles) == 0 {
		profiles = domain.DefaultMaterialProfiles()
	}
	s.materials = profiles
	s.persist(ctx, store.KeyMaterialProfiles, s.materials)
}

// ReplaceBrandings overwrites the branding collection wholesale.
func (s *Store) ReplaceBrandings(ctx context.Context, profiles []domain.BrandingProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brandings = profiles
	s.persist(ctx, store.KeyBrandingProfiles, s.brandings)
}

func cloneMaterialProfile(p domain.MaterialProfile) domain.MaterialProfile {
	out := p
	out.Items = make([]domain.MaterialEntry, len(p.Items))
	copy(out.Items, p.Items)
	return out
}
