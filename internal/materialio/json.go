// Package materialio reads and writes material catalogs for interchange:
// the native JSON profile shape, bare price-list arrays, xlsx workbooks, and
// CSV.
package materialio

import (
	"encoding/json"
	"fmt"
	"regexp"

	"proinvoice/internal/domain"
)

// importedRow is one record of a bare imported list. Alternate key names are
// tried in a fixed priority order: Item, name, Description for the label and
// Price, price for the amount.
type importedRow struct {
	Item        string         `json:"Item"`
	Name        string         `json:"name"`
	Description string         `json:"Description"`
	PriceUpper  domain.Numeric `json:"Price"`
	PriceLower  domain.Numeric `json:"price"`
}

func (r importedRow) label(index int) string {
	switch {
	case r.Item != "":
		return r.Item
	case r.Name != "":
		return r.Name
	case r.Description != "":
		return r.Description
	default:
		return fmt.Sprintf("Item %d", index+1)
	}
}

func (r importedRow) price() float64 {
	if r.PriceUpper != 0 {
		return r.PriceUpper.Float()
	}
	return r.PriceLower.Float()
}

// ParseImport accepts either a full exported profile object ({name, items})
// or a bare array of price-list rows. Bare arrays require a caller-supplied
// profile name. Every produced entry carries a fresh id.
func ParseImport(raw []byte, fallbackName string) (domain.MaterialProfile, error) {
	var probe interface{}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return domain.MaterialProfile{}, domain.ErrInvalidMaterialImport
	}

	switch probe.(type) {
	case map[string]interface{}:
		var p domain.MaterialProfile
		if err := json.Unmarshal(raw, &p); err != nil || p.Name == "" || p.Items == nil {
			return domain.MaterialProfile{}, domain.ErrInvalidMaterialImport
		}
		p.ID = domain.NewID()
		for i := range p.Items {
			if p.Items[i].ID == "" {
				p.Items[i].ID = domain.NewID()
			}
		}
		return p, nil

	case []interface{}:
		if fallbackName == "" {
			return domain.MaterialProfile{}, domain.ErrProfileNameRequired
		}
		var rows []importedRow
		if err := json.Unmarshal(raw, &rows); err != nil {
			return domain.MaterialProfile{}, domain.ErrInvalidMaterialImport
		}
		if len(rows) == 0 {
			return domain.MaterialProfile{}, domain.ErrEmptyMaterialImport
		}
		p := domain.MaterialProfile{
			ID:    domain.NewID(),
			Name:  fallbackName,
			Items: make([]domain.MaterialEntry, 0, len(rows)),
		}
		for i, row := range rows {
			p.Items = append(p.Items, domain.MaterialEntry{
				ID:        domain.NewID(),
				Name:      row.label(i),
				UnitPrice: row.price(),
			})
		}
		return p, nil

	default:
		return domain.MaterialProfile{}, domain.ErrInvalidMaterialImport
	}
}

// ExportJSON marshals a profile for download as {id, name, items}.
func ExportJSON(p domain.MaterialProfile) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

var unsafeFilename = regexp.MustCompile(`\s+`)

// Filename derives a download filename from the profile name.
func Filename(p domain.MaterialProfile, ext string) string {
	return fmt.Sprintf("Materials_%s.%s", unsafeFilename.ReplaceAllString(p.Name, "_"), ext)
}
