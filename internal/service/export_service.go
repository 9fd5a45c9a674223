package service

import (
	"context"

	"proinvoice/internal/domain"
	"proinvoice/internal/pricing"
	"proinvoice/internal/profile"
	"proinvoice/internal/render"
	"proinvoice/internal/session"
)

// PDFExport is a rendered document ready for download.
type PDFExport struct {
	FileName string
	Data     []byte
}

// ExportService renders the active document to PDF.
type ExportService interface {
	RenderPDF(ctx context.Context) (*PDFExport, error)
}

type exportService struct {
	session  *session.Manager
	profiles *profile.Store
	renderer *render.Renderer
}

// NewExportService creates an ExportService.
func NewExportService(sess *session.Manager, profiles *profile.Store, renderer *render.Renderer) ExportService {
	return &exportService{session: sess, profiles: profiles, renderer: renderer}
}

// RenderPDF snapshots the session and renders it. The session is never
// touched, so a failed render leaves nothing to clean up and the caller can
// fall back to browser printing.
func (s *exportService) RenderPDF(ctx context.Context) (*PDFExport, error) {
	doc := s.session.Document()
	prefs := s.session.Preferences()

	markup := s.profiles.ResolveAdjustment(domain.ProfileMarkup, prefs.SelectedMarkupID)
	deposit := s.profiles.ResolveAdjustment(domain.ProfileDeposit, prefs.SelectedDepositID)
	totals := pricing.ComputeTotals(doc.Items, doc.IsPaid, prefs.TaxRate, markup, deposit)

	var materials []domain.MaterialEntry
	if doc.ShowMaterialsList {
		if profiles := s.profiles.ListMaterialProfiles(); len(profiles) > 0 {
			materials = profiles[0].Items
		}
	}

	data, err := s.renderer.Render(render.Input{
		Document:  doc,
		Totals:    totals,
		TaxRate:   prefs.TaxRate,
		Branding:  s.profiles.ResolveBranding(prefs.SelectedBrandingID),
		Materials: materials,
		Prefs:     prefs,
	})
	if err != nil {
		return nil, err
	}
	return &PDFExport{FileName: render.FileName(doc), Data: data}, nil
}
