package materialio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proinvoice/internal/domain"
	"proinvoice/internal/materialio"
)

func TestParseImport_FullProfile(t *testing.T) {
	raw := []byte(`{"id":"old-id","name":"Plumbing","items":[
		{"id":"e1","name":"Copper Pipe","price":12.5},
		{"name":"Solder","price":4}
	]}`)

	p, err := materialio.ParseImport(raw, "")
	require.NoError(t, err)

	assert.Equal(t, "Plumbing", p.Name)
	assert.NotEqual(t, "old-id", p.ID, "profile gets a fresh id")
	require.Len(t, p.Items, 2)
	assert.Equal(t, "Copper Pipe", p.Items[0].Name)
	assert.Equal(t, 12.5, p.Items[0].UnitPrice)
	assert.NotEmpty(t, p.Items[1].ID, "missing entry ids are generated")
}

func TestParseImport_BareArrayFieldPriority(t *testing.T) {
	raw := []byte(`[
		{"Item":"Lumber","Price":20},
		{"name":"Nails","price":"3.5"},
		{"Description":"Paint"},
		{}
	]`)

	p, err := materialio.ParseImport(raw, "Imported")
	require.NoError(t, err)

	require.Len(t, p.Items, 4)
	assert.Equal(t, "Lumber", p.Items[0].Name)
	assert.Equal(t, 20.0, p.Items[0].UnitPrice)
	assert.Equal(t, "Nails", p.Items[1].Name)
	assert.Equal(t, 3.5, p.Items[1].UnitPrice, "quoted prices coerce")
	assert.Equal(t, "Paint", p.Items[2].Name)
	assert.Zero(t, p.Items[2].UnitPrice)
	assert.Equal(t, "Item 4", p.Items[3].Name, "nameless rows get a placeholder")
}

func TestParseImport_BareArrayRequiresName(t *testing.T) {
	_, err := materialio.ParseImport([]byte(`[{"Item":"X","Price":1}]`), "")
	assert.ErrorIs(t, err, domain.ErrProfileNameRequired)
}

func TestParseImport_EmptyArray(t *testing.T) {
	_, err := materialio.ParseImport([]byte(`[]`), "Empty")
	assert.ErrorIs(t, err, domain.ErrEmptyMaterialImport)
}

func TestParseImport_Malformed(t *testing.T) {
	for _, raw := range []string{`{not json`, `42`, `"string"`, `{"items":[]}`} {
		_, err := materialio.ParseImport([]byte(raw), "X")
		assert.Error(t, err, "input %q must be rejected", raw)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	original := domain.MaterialProfile{
		ID:   domain.NewID(),
		Name: "Default List",
		Items: []domain.MaterialEntry{
			{ID: "a", Name: "Web Design Consultation (Hour)", UnitPrice: 150},
			{ID: "b", Name: "Hosting Setup", UnitPrice: 75},
		},
	}

	raw, err := materialio.ExportJSON(original)
	require.NoError(t, err)

	imported, err := materialio.ParseImport(raw, "")
	require.NoError(t, err)

	assert.Equal(t, original.Name, imported.Name)
	require.Len(t, imported.Items, len(original.Items))
	for i := range original.Items {
		assert.Equal(t, original.Items[i].Name, imported.Items[i].Name)
		assert.Equal(t, original.Items[i].UnitPrice, imported.Items[i].UnitPrice)
	}
}

func TestFilename(t *testing.T) {
	p := domain.MaterialProfile{Name: "My Parts  List"}
	assert.Equal(t, "Materials_My_Parts_List.json", materialio.Filename(p, "json"))
}

func TestXLSX_RoundTrip(t *testing.T) {
	original := domain.MaterialProfile{
		ID:   domain.NewID(),
		Name: "Hardware",
		Items: []domain.MaterialEntry{
			{ID: "a", Name: "Hinge", UnitPrice: 3.25},
			{ID: "b", Name: "Handle", UnitPrice: 7},
		},
	}

	raw, err := materialio.WriteXLSX(original)
	require.NoError(t, err)

	imported, err := materialio.ReadXLSX(bytes.NewReader(raw), "Hardware")
	require.NoError(t, err)

	assert.Equal(t, "Hardware", imported.Name)
	require.Len(t, imported.Items, 2)
	assert.Equal(t, "Hinge", imported.Items[0].Name)
	assert.Equal(t, 3.25, imported.Items[0].UnitPrice)
}

func TestReadXLSX_RequiresName(t *testing.T) {
	_, err := materialio.ReadXLSX(bytes.NewReader(nil), "")
	assert.ErrorIs(t, err, domain.ErrProfileNameRequired)
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := materialio.NewCSVWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteEntries([]domain.MaterialEntry{
		{Name: "Hinge", UnitPrice: 3.25},
		{Name: "Handle, brushed", UnitPrice: 7},
	}))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Item,Price", lines[0])
	assert.Equal(t, "Hinge,3.25", lines[1])
	assert.Equal(t, `"Handle, brushed",7.00`, lines[2])
}
