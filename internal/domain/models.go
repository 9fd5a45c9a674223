package domain

import "time"

// LineItem is one priced line on a document. Quantity may be fractional and
// UnitPrice may be negative; a negative line models a credit or discount.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
}

// Total returns quantity times unit price for this line.
func (li LineItem) Total() float64 {
	return li.Quantity * li.UnitPrice
}

// AdjustmentProfile is a named markup or deposit rule. Percent amounts are
// interpreted as Amount/100 of their base; fixed amounts are absolute currency.
type AdjustmentProfile struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Kind   AdjustmentKind `json:"type"`
	Amount float64        `json:"value"`
}

// MaterialEntry is a reusable named, priced catalog item.
type MaterialEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
}

// MaterialProfile groups an ordered catalog of material entries.
type MaterialProfile struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Items []MaterialEntry `json:"items"`
}

// BrandingProfile is a reusable company identity applied to the from-party.
type BrandingProfile struct {
	ID          string          `json:"id"`
	ProfileName string          `json:"profileName"`
	CompanyName string          `json:"companyName"`
	Address     string          `json:"address"`
	Extra       string          `json:"extra"`
	Logo        string          `json:"logo,omitempty"`
	LogoSize    int             `json:"logoSize"`
	Orientation LogoOrientation `json:"orientation"`
}

// Party holds one side of a document (sender or recipient).
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Extra   string `json:"extra,omitempty"`
}

// Document is the full editable document state.
type Document struct {
	ID           string       `json:"id"`
	Kind         DocumentKind `json:"template"`
	StyleVariant string       `json:"templateStyle"`
	Number       string       `json:"number"`
	Name         string       `json:"name"`
	Date         string       `json:"date"`
	DueDate      string       `json:"dueDate"`
	From         Party        `json:"from"`
	To           Party        `json:"to"`
	Items        []LineItem   `json:"items"`
	Notes        string       `json:"notes"`

	ShowSignature         bool `json:"showSignature"`
	ShowSignatureDateLine bool `json:"showSignatureDateLine"`
	ShowNotes             bool `json:"showNotes"`
	ShowNotesLabel        bool `json:"showNotesLabel"`
	ShowMaterialsList     bool `json:"showMaterialsList"`
	ShowDateLine          bool `json:"showDateLine"`
	ShowDueDateLine       bool `json:"showDueDateLine"`
	HideItemsOnMain       bool `json:"hideItemsOnMain"`
	HideMarkup            bool `json:"hideMarkup"`

	IsPaid bool `json:"isPaid"`
}

// Clone returns a deep copy of the document so callers never alias Items.
func (d Document) Clone() Document {
	out := d
	out.Items = make([]LineItem, len(d.Items))
	copy(out.Items, d.Items)
	return out
}

// SavedDocument is a library record: a captured document plus the preference
// selection that was active when it was saved.
type SavedDocument struct {
	Document
	SavedAt time.Time   `json:"savedAt"`
	Config  Preferences `json:"config"`
}

// Preferences is the process-wide selection state: active adjustment and
// branding profiles, tax rate, and the three font choices.
type Preferences struct {
	SelectedMarkupID   string  `json:"selectedMarkupId"`
	SelectedDepositID  string  `json:"selectedDepositId"`
	SelectedBrandingID string  `json:"selectedBrandingId"`
	TaxRate            float64 `json:"taxRate"`
	HeadingFont        string  `json:"headingFont"`
	BodyFont           string  `json:"bodyFont"`
	DataFont           string  `json:"dataFont"`
}

// Totals is the derived pricing breakdown for a document snapshot.
type Totals struct {
	Subtotal           float64 `json:"subtotal"`
	MarkupAmount       float64 `json:"markupAmount"`
	MarkupName         string  `json:"markupName,omitempty"`
	SubtotalWithMarkup float64 `json:"subtotalWithMarkup"`
	TaxAmount          float64 `json:"taxAmount"`
	Total              float64 `json:"total"`
	DepositAmount      float64 `json:"depositAmount"`
	DepositName        string  `json:"depositName,omitempty"`
	BalanceDue         float64 `json:"balanceDue"`
}
