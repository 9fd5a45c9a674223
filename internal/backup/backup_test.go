package backup

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proinvoice/internal/config"
	"proinvoice/internal/domain"
	"proinvoice/internal/library"
	"proinvoice/internal/profile"
	"proinvoice/internal/session"
	"proinvoice/internal/store"
)

func newService(t *testing.T) (*Service, *profile.Store, *session.Manager, *library.Library) {
	t.Helper()
	db, err := store.NewDB(&config.StoreConfig{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	kv := store.NewKV(db)
	profiles := profile.NewStore(context.Background(), kv)
	sess := session.NewManager(context.Background(), kv, 0)
	lib := library.New(context.Background(), kv)

	return NewService(profiles, sess, lib), profiles, sess, lib
}

func TestExportShape(t *testing.T) {
	svc, _, _, _ := newService(t)

	raw, err := svc.Export()
	require.NoError(t, err)

	var file map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &file))
	assert.JSONEq(t, "2", string(file["version"]))
	assert.Contains(t, file, "date")

	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(file["data"], &data))
	for _, key := range []string{
		"markupProfiles", "depositProfiles", "materialProfiles",
		"brandingProfiles", "savedInvoices", "preferences", "currentDraft",
	} {
		assert.Contains(t, data, key, "missing %s", key)
	}
	assert.NotContains(t, data, "savedMaterials")
	assert.NotContains(t, data, "logoProfiles")
}

func TestRestoreRoundTrip(t *testing.T) {
	svc, profiles, sess, lib := newService(t)

	profiles.CreateAdjustment(context.Background(), domain.ProfileMarkup, "Custom", domain.AdjustPercent, 35)
	require.NoError(t, sess.Apply(session.DocumentPatch{Number: strptr("INV-7777")}))
	lib.Save(context.Background(), sess.Document(), "Kept", sess.Preferences(), false)

	raw, err := svc.Export()
	require.NoError(t, err)

	// Fresh state, then restore the snapshot into it.
	svc2, profiles2, sess2, lib2 := newService(t)
	require.NoError(t, svc2.Restore(context.Background(), raw))

	markups := profiles2.ListAdjustments(domain.ProfileMarkup)
	names := make([]string, 0, len(markups))
	for _, m := range markups {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "Custom")
	assert.Equal(t, "INV-7777", sess2.Document().Number)
	require.Len(t, lib2.List(), 1)
	assert.Equal(t, "Kept", lib2.List()[0].Name)
}

func TestRestoreAbsentKeysLeaveStateUntouched(t *testing.T) {
	svc, profiles, sess, _ := newService(t)

	require.NoError(t, sess.Apply(session.DocumentPatch{Number: strptr("INV-KEEP")}))

	payload := `{"version":2,"data":{"markupProfiles":[{"id":"x1","name":"Only","type":"percent","value":10}]}}`
	require.NoError(t, svc.Restore(context.Background(), []byte(payload)))

	markups := profiles.ListAdjustments(domain.ProfileMarkup)
	require.Len(t, markups, 1)
	assert.Equal(t, "Only", markups[0].Name)
	// Draft was not in the backup, so it survives.
	assert.Equal(t, "INV-KEEP", sess.Document().Number)
}

func TestRestoreLegacySavedMaterials(t *testing.T) {
	svc, profiles, _, _ := newService(t)

	payload := `{"version":1,"data":{"savedMaterials":[{"name":"Hinge","price":3.5}]}}`
	require.NoError(t, svc.Restore(context.Background(), []byte(payload)))

	got := profiles.ListMaterialProfiles()
	require.Len(t, got, 1)
	assert.Equal(t, "Imported List", got[0].Name)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, "Hinge", got[0].Items[0].Name)
	assert.InDelta(t, 3.5, got[0].Items[0].UnitPrice, 1e-9)
}

func TestRestoreModernMaterialsShadowLegacy(t *testing.T) {
	svc, profiles, _, _ := newService(t)

	payload := `{"version":2,"data":{
		"materialProfiles":[{"id":"p1","name":"Modern","items":[]}],
		"savedMaterials":[{"name":"Old","price":1}]
	}}`
	require.NoError(t, svc.Restore(context.Background(), []byte(payload)))

	got := profiles.ListMaterialProfiles()
	require.Len(t, got, 1)
	assert.Equal(t, "Modern", got[0].Name)
}

func TestRestoreLogoProfilesAliasWins(t *testing.T) {
	svc, profiles, _, _ := newService(t)

	payload := `{"version":1,"data":{
		"brandingProfiles":[{"id":"b1","profileName":"New Key","companyName":"A"}],
		"logoProfiles":[{"id":"b2","profileName":"Legacy Key","companyName":"B"}]
	}}`
	require.NoError(t, svc.Restore(context.Background(), []byte(payload)))

	got := profiles.ListBrandingProfiles()
	require.Len(t, got, 1)
	assert.Equal(t, "Legacy Key", got[0].ProfileName)
}

func TestRestoreMalformedLeavesStateUnmodified(t *testing.T) {
	svc, profiles, sess, _ := newService(t)

	require.NoError(t, sess.Apply(session.DocumentPatch{Number: strptr("INV-SAFE")}))
	before := profiles.ListAdjustments(domain.ProfileMarkup)

	// currentDraft parses, markupProfiles does not: nothing may be applied.
	payload := `{"version":2,"data":{
		"currentDraft":{"number":"INV-BAD"},
		"markupProfiles":{"not":"an array"}
	}}`
	err := svc.Restore(context.Background(), []byte(payload))
	assert.ErrorIs(t, err, domain.ErrInvalidBackupFormat)

	assert.Equal(t, "INV-SAFE", sess.Document().Number)
	assert.Equal(t, before, profiles.ListAdjustments(domain.ProfileMarkup))
}

func TestRestoreRejectsGarbage(t *testing.T) {
	svc, _, _, _ := newService(t)

	assert.ErrorIs(t, svc.Restore(context.Background(), []byte("not json")), domain.ErrInvalidBackupFormat)
	assert.ErrorIs(t, svc.Restore(context.Background(), []byte(`{"version":2}`)), domain.ErrInvalidBackupFormat)
	assert.ErrorIs(t, svc.Restore(context.Background(), []byte(`{"version":2,"data":null}`)), domain.ErrInvalidBackupFormat)
	assert.ErrorIs(t, svc.Restore(context.Background(), []byte(`{"version":2,"data":[]}`)), domain.ErrInvalidBackupFormat)
}

func TestRestoreEmptyDataIsNoOp(t *testing.T) {
	svc, profiles, sess, _ := newService(t)

	id := profiles.CreateMaterialProfile(context.Background(), "Lumber")
	before := sess.Document()

	require.NoError(t, svc.Restore(context.Background(), []byte(`{"version":2,"data":{}}`)))

	materials := profiles.ListMaterialProfiles()
	require.Len(t, materials, 1)
	assert.Equal(t, id, materials[0].ID)
	assert.Equal(t, before, sess.Document())
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "ProInvoice_Backup_2025-03-09.json", FileName(now))
}

func strptr(s string) *string { return &s }
