package domain

// DocumentKind selects the document template.
type DocumentKind string

const (
	KindInvoice DocumentKind = "invoice"
	KindReceipt DocumentKind = "receipt"
	KindQuote   DocumentKind = "quote"
	KindEmail   DocumentKind = "email"
)

// Title returns the printable heading for a document kind.
func (k DocumentKind) Title() string {
	switch k {
	case KindReceipt:
		return "Receipt"
	case KindQuote:
		return "Quote"
	case KindEmail:
		return "Summary"
	default:
		return "Invoice"
	}
}

// ValidDocumentKinds maps every accepted document kind.
var ValidDocumentKinds = map[DocumentKind]bool{
	KindInvoice: true,
	KindReceipt: true,
	KindQuote:   true,
	KindEmail:   true,
}

// AdjustmentKind distinguishes percentage adjustments from flat amounts.
type AdjustmentKind string

const (
	AdjustPercent AdjustmentKind = "percent"
	AdjustFixed   AdjustmentKind = "fixed"
)

// ProfileKind identifies a profile collection in the profile store.
type ProfileKind string

const (
	ProfileMarkup   ProfileKind = "markup"
	ProfileDeposit  ProfileKind = "deposit"
	ProfileMaterial ProfileKind = "material"
	ProfileBranding ProfileKind = "branding"
)

// ValidProfileKinds maps every accepted profile kind.
var ValidProfileKinds = map[ProfileKind]bool{
	ProfileMarkup:   true,
	ProfileDeposit:  true,
	ProfileMaterial: true,
	ProfileBranding: true,
}

// LogoOrientation positions branding text relative to the logo.
type LogoOrientation string

const (
	OrientLeft   LogoOrientation = "left"
	OrientRight  LogoOrientation = "right"
	OrientTop    LogoOrientation = "top"
	OrientBottom LogoOrientation = "bottom"
)
