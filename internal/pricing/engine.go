// Package pricing derives display totals from a document snapshot. The
// engine is stateless: totals are recomputed from scratch on every call, so
// there is never a cached value to invalidate when items, profiles, or the
// tax rate change.
package pricing

import "proinvoice/internal/domain"

// ComputeTotals derives the full pricing breakdown for a set of line items.
//
// Markup applies to the pre-tax subtotal and changes the taxable base. The
// deposit applies against the final total and is clamped so the balance can
// never go negative. A paid document has a balance due of exactly zero no
// matter what deposit was computed. A nil markup or deposit profile
// contributes nothing; callers resolve profile ids beforehand and pass nil
// for selections that no longer exist.
//
// Negative quantities, prices, and markup amounts are not rejected; they
// propagate arithmetically. A fixed-kind adjustment applies in full even when
// the item list is empty (it models a flat service fee).
func ComputeTotals(
	items []domain.LineItem,
	isPaid bool,
	taxRatePercent float64,
	markup *domain.AdjustmentProfile,
	deposit *domain.AdjustmentProfile,
) domain.Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Total()
	}

	var markupAmount float64
	var markupName string
	if markup != nil {
		if markup.Kind == domain.AdjustPercent {
			markupAmount = subtotal * markup.Amount / 100
		} else {
			markupAmount = markup.Amount
		}
		markupName = markup.Name
	}

	subtotalWithMarkup := subtotal + markupAmount
	taxAmount := subtotalWithMarkup * taxRatePercent / 100
	total := subtotalWithMarkup + taxAmount

	var depositAmount float64
	var depositName string
	if deposit != nil {
		if deposit.Kind == domain.AdjustPercent {
			depositAmount = total * deposit.Amount / 100
		} else {
			depositAmount = deposit.Amount
		}
		depositName = deposit.Name
	}
	if depositAmount > total {
		depositAmount = total
	}

	balanceDue := total - depositAmount
	if isPaid {
		balanceDue = 0
	}

	return domain.Totals{
		Subtotal:           subtotal,
		MarkupAmount:       markupAmount,
		MarkupName:         markupName,
		SubtotalWithMarkup: subtotalWithMarkup,
		TaxAmount:          taxAmount,
		Total:              total,
		DepositAmount:      depositAmount,
		DepositName:        depositName,
		BalanceDue:         balanceDue,
	}
}
