package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// NewID generates a fresh unique identifier.
func NewID() string {
	return uuid.New().String()
}

// NewDocumentNumber generates a randomized document number in the
// INV-1000..INV-9999 range.
func NewDocumentNumber() string {
	return fmt.Sprintf("INV-%d", 1000+rand.Intn(9000))
}

// DueDateOffset is how far after the issue date a new document falls due.
const DueDateOffset = 14 * 24 * time.Hour

// DateFormat is the wire format for document dates.
const DateFormat = "2006-01-02"

// DefaultMarkupProfiles returns the seed markup profiles.
func DefaultMarkupProfiles() []AdjustmentProfile {
	return []AdjustmentProfile{
		{ID: "m1", Name: "Standard Margin", Kind: AdjustPercent, Amount: 20},
		{ID: "m2", Name: "Friends & Family", Kind: AdjustPercent, Amount: 0},
		{ID: "m3", Name: "Rush Job", Kind: AdjustPercent, Amount: 50},
		{ID: "m4", Name: "Fixed Service Fee", Kind: AdjustFixed, Amount: 150},
	}
}

// DefaultDepositProfiles returns the seed deposit profiles.
func DefaultDepositProfiles() []AdjustmentProfile {
	return []AdjustmentProfile{
		{ID: "d1", Name: "50% Upfront", Kind: AdjustPercent, Amount: 50},
		{ID: "d2", Name: "Booking Fee ($500)", Kind: AdjustFixed, Amount: 500},
		{ID: "d3", Name: "No Deposit / Net 30", Kind: AdjustPercent, Amount: 0},
	}
}

// DefaultMaterialProfiles returns the seed material catalog. There is always
// at least one material profile.
func DefaultMaterialProfiles() []MaterialProfile {
	return []MaterialProfile{
		{
			ID:   "default",
			Name: "Default List",
			Items: []MaterialEntry{
				{ID: "mat1", Name: "Web Design Consultation (Hour)", UnitPrice: 150},
				{ID: "mat2", Name: "Hosting Setup", UnitPrice: 75},
			},
		},
	}
}

// DefaultBrandingProfiles returns the seed branding list (empty).
func DefaultBrandingProfiles() []BrandingProfile {
	return []BrandingProfile{}
}

// DefaultPreferences returns the seed preference selection.
func DefaultPreferences() Preferences {
	return Preferences{
		SelectedMarkupID:  "m1",
		SelectedDepositID: "d1",
		TaxRate:           8.25,
		HeadingFont:       "Inter",
		BodyFont:          "Inter",
		DataFont:          "Inter",
	}
}

// DefaultFromParty returns the placeholder sender.
func DefaultFromParty() Party {
	return Party{
		Name:    "Your Company",
		Address: "123 Creative Way\nDesign City, ST 12345",
	}
}

// DefaultToParty returns the placeholder recipient.
func DefaultToParty() Party {
	return Party{
		Name:    "Client Name",
		Address: "456 Client Road\nBusiness Town, ST 67890",
	}
}

// DefaultLineItem returns the single line item a fresh document starts with.
func DefaultLineItem() LineItem {
	return LineItem{
		ID:          NewID(),
		Description: "Initial Consultation",
		Quantity:    1,
		UnitPrice:   150,
	}
}

// DefaultDocument returns a fully populated starting document at the given
// time. The caller decides the id and number policy (first launch keeps the
// fixed INV-001; an explicit reset randomizes).
func DefaultDocument(now time.Time) Document {
	return Document{
		ID:             NewID(),
		Kind:           KindInvoice,
		StyleVariant:   "classic",
		Number:         "INV-001",
		Date:           now.Format(DateFormat),
		DueDate:        now.Add(DueDateOffset).Format(DateFormat),
		From:           DefaultFromParty(),
		To:             DefaultToParty(),
		Items:          []LineItem{DefaultLineItem()},
		Notes:          "Thank you for your business. Please send payment within 14 days.",
		ShowNotes:      true,
		ShowNotesLabel: true,
	}
}

// Font is a selectable document font and its CSS family, mirrored into PDF
// core families at render time.
type Font struct {
	Name     string `json:"name"`
	Family   string `json:"family"`
	Category string `json:"category"`
}

// AvailableFonts is the fixed catalog of selectable fonts.
var AvailableFonts = []Font{
	{Name: "Inter", Family: "'Inter', sans-serif", Category: "Sans Serif"},
	{Name: "Roboto", Family: "'Roboto', sans-serif", Category: "Sans Serif"},
	{Name: "Open Sans", Family: "'Open Sans', sans-serif", Category: "Sans Serif"},
	{Name: "Lato", Family: "'Lato', sans-serif", Category: "Sans Serif"},
	{Name: "Montserrat", Family: "'Montserrat', sans-serif", Category: "Sans Serif"},
	{Name: "Oswald", Family: "'Oswald', sans-serif", Category: "Display"},
	{Name: "Playfair Display", Family: "'Playfair Display', serif", Category: "Serif"},
	{Name: "Merriweather", Family: "'Merriweather', serif", Category: "Serif"},
	{Name: "Lora", Family: "'Lora', serif", Category: "Serif"},
	{Name: "Inconsolata", Family: "'Inconsolata', monospace", Category: "Monospace"},
	{Name: "Courier Prime", Family: "'Courier Prime', monospace", Category: "Monospace"},
	{Name: "Dancing Script", Family: "'Dancing Script', cursive", Category: "Handwriting"},
}

// FontByName looks up a catalog font. Unknown names return false.
func FontByName(name string) (Font, bool) {
	for _, f := range AvailableFonts {
		if f.Name == name {
			return f, true
		}
	}
	return Font{}, false
}
