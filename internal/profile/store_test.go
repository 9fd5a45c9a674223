package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proinvoice/internal/config"
	"proinvoice/internal/domain"
	"proinvoice/internal/profile"
	"proinvoice/internal/store"
)

func newTestStore(t *testing.T) (*profile.Store, store.KV) {
	t.Helper()
	db, err := store.NewDB(&config.StoreConfig{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	kv := store.NewKV(db)
	return profile.NewStore(context.Background(), kv), kv
}

func TestStore_SeedsDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Len(t, s.ListAdjustments(domain.ProfileMarkup), 4)
	assert.Len(t, s.ListAdjustments(domain.ProfileDeposit), 3)
	assert.Len(t, s.ListMaterialProfiles(), 1)
	assert.Empty(t, s.ListBrandingProfiles())
}

func TestStore_CreateAndResolveAdjustment(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id := s.CreateAdjustment(ctx, domain.ProfileMarkup, "Premium", domain.AdjustPercent, 35)

	resolved := s.ResolveAdjustment(domain.ProfileMarkup, id)
	require.NotNil(t, resolved)
	assert.Equal(t, "Premium", resolved.Name)
	assert.Equal(t, 35.0, resolved.Amount)
}

func TestStore_UpdateAdjustment_UnknownIDIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.ListAdjustments(domain.ProfileDeposit)

	name := "Renamed"
	s.UpdateAdjustment(context.Background(), domain.ProfileDeposit, "missing", profile.AdjustmentPatch{Name: &name})

	assert.Equal(t, before, s.ListAdjustments(domain.ProfileDeposit))
}

func TestStore_DeleteAdjustment_LeavesDanglingReference(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// m1 is the default selected markup; deleting it must not error and the
	// reference must simply stop resolving.
	s.DeleteAdjustment(ctx, domain.ProfileMarkup, "m1")

	assert.Nil(t, s.ResolveAdjustment(domain.ProfileMarkup, "m1"))
	assert.Len(t, s.ListAdjustments(domain.ProfileMarkup), 3)
}

func TestStore_DeleteLastMaterialProfileRejected(t *testing.T) {
	s, _ := newTestStore(t)

	profiles := s.ListMaterialProfiles()
	require.Len(t, profiles, 1)

	err := s.DeleteMaterialProfile(context.Background(), profiles[0].ID)

	assert.ErrorIs(t, err, domain.ErrLastMaterialProfile)
	assert.Len(t, s.ListMaterialProfiles(), 1)
}

func TestStore_DeleteMaterialProfile(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id := s.CreateMaterialProfile(ctx, "Second List")
	require.Len(t, s.ListMaterialProfiles(), 2)

	require.NoError(t, s.DeleteMaterialProfile(ctx, id))
	assert.Len(t, s.ListMaterialProfiles(), 1)
}

func TestStore_MaterialEntryLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	profileID := s.CreateMaterialProfile(ctx, "Hardware")
	entryID, err := s.AddMaterialEntry(ctx, profileID)
	require.NoError(t, err)

	name := "Copper Pipe"
	price := 12.5
	s.UpdateMaterialEntry(ctx, profileID, entryID, profile.MaterialEntryPatch{Name: &name, UnitPrice: &price})

	p, err := s.MaterialProfileByID(profileID)
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "Copper Pipe", p.Items[0].Name)
	assert.Equal(t, 12.5, p.Items[0].UnitPrice)

	s.DeleteMaterialEntry(ctx, profileID, entryID)
	p, err = s.MaterialProfileByID(profileID)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
}

func TestStore_BrandingRequiresNames(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.CreateBrandingProfile(context.Background(), domain.BrandingProfile{ProfileName: "Main"})
	assert.ErrorIs(t, err, domain.ErrProfileNameRequired)
}

func TestStore_BrandingLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateBrandingProfile(ctx, domain.BrandingProfile{
		ProfileName: "Main",
		CompanyName: "Acme Design Co",
		Address:     "1 Main St",
	})
	require.NoError(t, err)

	resolved := s.ResolveBranding(id)
	require.NotNil(t, resolved)
	assert.Equal(t, domain.OrientTop, resolved.Orientation)
	assert.Equal(t, 150, resolved.LogoSize)

	addr := "2 Side St"
	s.UpdateBrandingProfile(ctx, id, profile.BrandingPatch{Address: &addr})
	assert.Equal(t, "2 Side St", s.ResolveBranding(id).Address)

	s.DeleteBrandingProfile(ctx, id)
	assert.Nil(t, s.ResolveBranding(id))
}

func TestStore_PersistsAcrossReload(t *testing.T) {
	db, err := store.NewDB(&config.StoreConfig{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	kv := store.NewKV(db)
	ctx := context.Background()

	first := profile.NewStore(ctx, kv)
	id := first.CreateAdjustment(ctx, domain.ProfileDeposit, "25% Upfront", domain.AdjustPercent, 25)

	second := profile.NewStore(ctx, kv)
	resolved := second.ResolveAdjustment(domain.ProfileDeposit, id)
	require.NotNil(t, resolved)
	assert.Equal(t, "25% Upfront", resolved.Name)
}
