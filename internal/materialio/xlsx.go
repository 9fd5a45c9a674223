package materialio

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"proinvoice/internal/domain"
)

const sheetName = "Materials"

// WriteXLSX renders a material profile as a two-column workbook.
func WriteXLSX(p domain.MaterialProfile) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("materialio.WriteXLSX: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("materialio.WriteXLSX: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &[]interface{}{"Item", "Price"}); err != nil {
		return nil, fmt.Errorf("materialio.WriteXLSX: %w", err)
	}
	for i, item := range p.Items {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &[]interface{}{item.Name, item.UnitPrice}); err != nil {
			return nil, fmt.Errorf("materialio.WriteXLSX: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("materialio.WriteXLSX: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadXLSX imports a material profile from the first sheet of a workbook.
// The first column is the item name and the second the price; a leading
// header row is skipped. The caller supplies the profile name.
func ReadXLSX(r io.Reader, name string) (domain.MaterialProfile, error) {
	if name == "" {
		return domain.MaterialProfile{}, domain.ErrProfileNameRequired
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.MaterialProfile{}, domain.ErrInvalidMaterialImport
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.MaterialProfile{}, domain.ErrInvalidMaterialImport
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.MaterialProfile{}, domain.ErrInvalidMaterialImport
	}

	p := domain.MaterialProfile{
		ID:    domain.NewID(),
		Name:  name,
		Items: []domain.MaterialEntry{},
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		label := strings.TrimSpace(row[0])
		if label == "" {
			continue
		}
		if i == 0 && isHeaderRow(row) {
			continue
		}
		entry := domain.MaterialEntry{
			ID:   domain.NewID(),
			Name: label,
		}
		if len(row) > 1 {
			if price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64); err == nil {
				entry.UnitPrice = price
			}
		}
		p.Items = append(p.Items, entry)
	}
	if len(p.Items) == 0 {
		return domain.MaterialProfile{}, domain.ErrEmptyMaterialImport
	}
	return p, nil
}

func isHeaderRow(row []string) bool {
	label := strings.ToLower(strings.TrimSpace(row[0]))
	return label == "item" || label == "name" || label == "description"
}
