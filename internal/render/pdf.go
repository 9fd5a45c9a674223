// Package render produces the static PDF rendition of a document. Rendering
// is read-only over a document snapshot; an engine failure never touches
// session state and maps to ErrPDFEngine so callers can offer the browser
// print path instead.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"proinvoice/internal/config"
	"proinvoice/internal/domain"
)

// Input is everything a render needs: the document snapshot, its derived
// totals, the resolved branding (nil when none selected), the material
// catalog for the appendix, and the three font selections.
type Input struct {
	Document  domain.Document
	Totals    domain.Totals
	TaxRate   float64
	Branding  *domain.BrandingProfile
	Materials []domain.MaterialEntry
	Prefs     domain.Preferences
}

// Renderer renders documents to PDF using the configured page geometry.
type Renderer struct {
	cfg *config.PDFConfig
}

// NewRenderer creates a Renderer.
func NewRenderer(cfg *config.PDFConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// coreFamily maps a catalog font selection to one of the three built-in PDF
// families. The catalog names web fonts that are not embedded; the PDF falls
// back by category so serif stays serif and monospace stays monospace.
func coreFamily(name string) string {
	font, ok := domain.FontByName(name)
	if !ok {
		return "Helvetica"
	}
	switch font.Category {
	case "Serif":
		return "Times"
	case "Monospace":
		return "Courier"
	default:
		return "Helvetica"
	}
}

var dataURIRe = regexp.MustCompile(`^data:image/(png|jpe?g);base64,(.+)$`)

// decodeLogo splits a data URI into an image type gofpdf accepts and the raw
// bytes. Anything unparseable is skipped rather than failing the render.
func decodeLogo(uri string) (string, []byte, bool) {
	m := dataURIRe.FindStringSubmatch(uri)
	if m == nil {
		return "", nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", nil, false
	}
	kind := "PNG"
	if strings.HasPrefix(m[1], "jp") {
		kind = "JPG"
	}
	return kind, raw, true
}

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

// Render produces the PDF bytes for one document snapshot.
func (r *Renderer) Render(in Input) ([]byte, error) {
	doc := in.Document

	orientation := r.cfg.Orientation
	if orientation == "" {
		orientation = "P"
	}
	pageSize := r.cfg.PageSize
	if pageSize == "" {
		pageSize = "Letter"
	}

	heading := coreFamily(in.Prefs.HeadingFont)
	body := coreFamily(in.Prefs.BodyFont)
	data := coreFamily(in.Prefs.DataFont)

	pdf := gofpdf.New(orientation, "mm", pageSize, "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	r.renderHeader(pdf, doc, in.Branding, heading, body)

	r.renderParties(pdf, doc, body)

	if !doc.HideItemsOnMain {
		r.renderItems(pdf, doc.Items, data, usable)
	}

	r.renderTotals(pdf, doc, in.Totals, in.TaxRate, data, usable)

	if doc.IsPaid {
		r.renderPaidStamp(pdf, heading)
	}

	if doc.ShowNotes && doc.Notes != "" {
		pdf.Ln(8)
		if doc.ShowNotesLabel {
			pdf.SetFont(heading, "B", 11)
			pdf.CellFormat(usable, 6, "Notes", "", 1, "L", false, 0, "")
		}
		pdf.SetFont(body, "", 10)
		pdf.MultiCell(usable, 5, doc.Notes, "", "L", false)
	}

	if doc.ShowSignature {
		r.renderSignature(pdf, doc, body, usable)
	}

	if doc.ShowMaterialsList && len(in.Materials) > 0 {
		r.renderMaterials(pdf, in.Materials, heading, data, usable)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPDFEngine, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderHeader(pdf *gofpdf.Fpdf, doc domain.Document, branding *domain.BrandingProfile, heading, body string) {
	pageW, _ := pdf.GetPageSize()
	left, top, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	if branding != nil && branding.Logo != "" {
		if kind, raw, ok := decodeLogo(branding.Logo); ok {
			name := "branding-logo"
			opts := gofpdf.ImageOptions{ImageType: kind}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
			// LogoSize is stored in CSS pixels; 96 dpi converts to mm.
			w := float64(branding.LogoSize) * 25.4 / 96
			switch branding.Orientation {
			case domain.OrientRight:
				pdf.ImageOptions(name, pageW-right-w, top, w, 0, false, opts, 0, "")
			case domain.OrientBottom:
				pdf.ImageOptions(name, left, top+18, w, 0, false, opts, 0, "")
			case domain.OrientLeft:
				pdf.ImageOptions(name, left, top, w, 0, false, opts, 0, "")
			default: // top
				pdf.ImageOptions(name, left, top, w, 0, false, opts, 0, "")
				pdf.SetY(top + w*0.6 + 4)
			}
		}
	}

	pdf.SetFont(heading, "B", 22)
	pdf.CellFormat(usable, 10, strings.ToUpper(doc.Kind.Title()), "", 1, "R", false, 0, "")

	pdf.SetFont(body, "", 10)
	pdf.CellFormat(usable, 5, "# "+doc.Number, "", 1, "R", false, 0, "")
	if doc.ShowDateLine && doc.Date != "" {
		pdf.CellFormat(usable, 5, "Date: "+doc.Date, "", 1, "R", false, 0, "")
	}
	if doc.ShowDueDateLine && doc.DueDate != "" {
		pdf.CellFormat(usable, 5, "Due: "+doc.DueDate, "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *Renderer) renderParties(pdf *gofpdf.Fpdf, doc domain.Document, body string) {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / 2

	y := pdf.GetY()
	pdf.SetFont(body, "B", 10)
	pdf.CellFormat(colW, 5, "From", "", 0, "L", false, 0, "")
	pdf.CellFormat(colW, 5, documentRecipientLabel(doc.Kind), "", 1, "L", false, 0, "")

	pdf.SetFont(body, "", 10)
	writeParty := func(x float64, p domain.Party) float64 {
		pdf.SetXY(x, y+5)
		for _, line := range partyLines(p) {
			pdf.SetX(x)
			pdf.MultiCell(colW-4, 5, line, "", "L", false)
		}
		return pdf.GetY()
	}
	fromBottom := writeParty(left, doc.From)
	toBottom := writeParty(left+colW, doc.To)
	if fromBottom > toBottom {
		pdf.SetY(fromBottom)
	} else {
		pdf.SetY(toBottom)
	}
	pdf.Ln(6)
}

func documentRecipientLabel(kind domain.DocumentKind) string {
	switch kind {
	case domain.KindQuote:
		return "Prepared For"
	default:
		return "Bill To"
	}
}

func partyLines(p domain.Party) []string {
	var out []string
	for _, raw := range []string{p.Name, p.Address, p.Extra} {
		for _, line := range strings.Split(raw, "\n") {
			if strings.TrimSpace(line) != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

func (r *Renderer) renderItems(pdf *gofpdf.Fpdf, items []domain.LineItem, data string, usable float64) {
	descW := usable * 0.52
	qtyW := usable * 0.12
	unitW := usable * 0.18
	amtW := usable - descW - qtyW - unitW

	pdf.SetFont(data, "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(descW, 7, "Description", "B", 0, "L", true, 0, "")
	pdf.CellFormat(qtyW, 7, "Qty", "B", 0, "R", true, 0, "")
	pdf.CellFormat(unitW, 7, "Unit Price", "B", 0, "R", true, 0, "")
	pdf.CellFormat(amtW, 7, "Amount", "B", 1, "R", true, 0, "")

	pdf.SetFont(data, "", 10)
	for _, item := range items {
		desc := item.Description
		if desc == "" {
			desc = " "
		}
		pdf.CellFormat(descW, 6, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, 6, trimFloat(item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(unitW, 6, money(item.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(amtW, 6, money(item.Total()), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
}

// trimFloat renders quantities without trailing zeros: 2 not 2.00, 2.5 not 2.50.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func (r *Renderer) renderTotals(pdf *gofpdf.Fpdf, doc domain.Document, totals domain.Totals, taxRate float64, data string, usable float64) {
	labelW := usable * 0.55
	valueW := usable - labelW

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont(data, style, 10)
		pdf.CellFormat(labelW, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 6, value, "", 1, "R", false, 0, "")
	}

	row("Subtotal", money(totals.Subtotal), false)
	if totals.MarkupAmount != 0 && !doc.HideMarkup {
		label := "Markup"
		if totals.MarkupName != "" {
			label = totals.MarkupName
		}
		row(label, money(totals.MarkupAmount), false)
		row("Adjusted Subtotal", money(totals.SubtotalWithMarkup), false)
	}
	row(fmt.Sprintf("Tax (%s%%)", trimFloat(taxRate)), money(totals.TaxAmount), false)
	row("Total", money(totals.Total), true)
	if totals.DepositAmount != 0 {
		label := "Deposit"
		if totals.DepositName != "" {
			label = totals.DepositName
		}
		row(label, money(totals.DepositAmount), false)
	}
	row("Balance Due", money(totals.BalanceDue), true)
}

func (r *Renderer) renderPaidStamp(pdf *gofpdf.Fpdf, heading string) {
	pdf.Ln(4)
	pdf.SetFont(heading, "B", 16)
	pdf.SetTextColor(34, 139, 34)
	pdf.CellFormat(0, 10, "PAID", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (r *Renderer) renderSignature(pdf *gofpdf.Fpdf, doc domain.Document, body string, usable float64) {
	pdf.Ln(14)
	colW := usable / 2
	pdf.SetFont(body, "", 10)
	pdf.CellFormat(colW-10, 5, strings.Repeat("_", 36), "", 0, "L", false, 0, "")
	if doc.ShowSignatureDateLine {
		pdf.CellFormat(colW-10, 5, strings.Repeat("_", 20), "", 1, "L", false, 0, "")
		pdf.CellFormat(colW-10, 5, "Signature", "", 0, "L", false, 0, "")
		pdf.CellFormat(colW-10, 5, "Date", "", 1, "L", false, 0, "")
	} else {
		pdf.Ln(5)
		pdf.CellFormat(colW-10, 5, "Signature", "", 1, "L", false, 0, "")
	}
}

func (r *Renderer) renderMaterials(pdf *gofpdf.Fpdf, materials []domain.MaterialEntry, heading, data string, usable float64) {
	pdf.AddPage()
	pdf.SetFont(heading, "B", 14)
	pdf.CellFormat(usable, 8, "Materials", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	nameW := usable * 0.7
	priceW := usable - nameW
	pdf.SetFont(data, "B", 10)
	pdf.CellFormat(nameW, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(priceW, 7, "Price", "B", 1, "R", false, 0, "")

	pdf.SetFont(data, "", 10)
	for _, m := range materials {
		pdf.CellFormat(nameW, 6, m.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(priceW, 6, money(m.UnitPrice), "", 1, "R", false, 0, "")
	}
}

// FileName derives the download filename for a rendered document.
func FileName(doc domain.Document) string {
	number := strings.TrimSpace(doc.Number)
	if number == "" {
		number = "document"
	}
	safe := regexp.MustCompile(`[^A-Za-z0-9._-]+`).ReplaceAllString(number, "_")
	return fmt.Sprintf("%s_%s.pdf", doc.Kind.Title(), safe)
}
