package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"proinvoice/internal/domain"
	"proinvoice/internal/pricing"
)

func items(pairs ...[2]float64) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.LineItem{
			ID:        domain.NewID(),
			Quantity:  p[0],
			UnitPrice: p[1],
		})
	}
	return out
}

func percent(name string, v float64) *domain.AdjustmentProfile {
	return &domain.AdjustmentProfile{ID: domain.NewID(), Name: name, Kind: domain.AdjustPercent, Amount: v}
}

func fixed(name string, v float64) *domain.AdjustmentProfile {
	return &domain.AdjustmentProfile{ID: domain.NewID(), Name: name, Kind: domain.AdjustFixed, Amount: v}
}

func TestComputeTotals_NoAdjustments(t *testing.T) {
	totals := pricing.ComputeTotals(items([2]float64{1, 150}), false, 8.25, nil, nil)

	assert.InDelta(t, 150.0, totals.Subtotal, 1e-9)
	assert.Zero(t, totals.MarkupAmount)
	assert.Empty(t, totals.MarkupName)
	assert.InDelta(t, 12.375, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 162.375, totals.Total, 1e-9)
	assert.Zero(t, totals.DepositAmount)
	assert.InDelta(t, 162.375, totals.BalanceDue, 1e-9)
}

func TestComputeTotals_FixedMarkupPercentDeposit(t *testing.T) {
	totals := pricing.ComputeTotals(
		items([2]float64{2, 100}),
		false, 0,
		fixed("Fixed Service Fee", 150),
		percent("50% Upfront", 50),
	)

	assert.InDelta(t, 200.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 150.0, totals.MarkupAmount, 1e-9)
	assert.Equal(t, "Fixed Service Fee", totals.MarkupName)
	assert.InDelta(t, 350.0, totals.SubtotalWithMarkup, 1e-9)
	assert.Zero(t, totals.TaxAmount)
	assert.InDelta(t, 350.0, totals.Total, 1e-9)
	assert.InDelta(t, 175.0, totals.DepositAmount, 1e-9)
	assert.Equal(t, "50% Upfront", totals.DepositName)
	assert.InDelta(t, 175.0, totals.BalanceDue, 1e-9)
}

func TestComputeTotals_PaidForcesZeroBalance(t *testing.T) {
	totals := pricing.ComputeTotals(
		items([2]float64{2, 100}),
		true, 0,
		fixed("Fixed Service Fee", 150),
		percent("50% Upfront", 50),
	)

	// The computed deposit is still reported; only the balance is forced.
	assert.InDelta(t, 175.0, totals.DepositAmount, 1e-9)
	assert.Zero(t, totals.BalanceDue)
}

func TestComputeTotals_DepositClampedToTotal(t *testing.T) {
	totals := pricing.ComputeTotals(
		items([2]float64{2, 100}),
		false, 0,
		fixed("Fixed Service Fee", 150),
		fixed("Big Retainer", 1000),
	)

	assert.InDelta(t, 350.0, totals.Total, 1e-9)
	assert.InDelta(t, 350.0, totals.DepositAmount, 1e-9)
	assert.Zero(t, totals.BalanceDue)
}

func TestComputeTotals_EmptyItems(t *testing.T) {
	totals := pricing.ComputeTotals(nil, false, 10, nil, nil)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.TaxAmount)
	assert.Zero(t, totals.Total)
	assert.Zero(t, totals.BalanceDue)
}

func TestComputeTotals_FixedMarkupAppliesWithoutItems(t *testing.T) {
	// A flat service fee still charges on an empty document.
	totals := pricing.ComputeTotals(nil, false, 0, fixed("Service Fee", 150), nil)

	assert.Zero(t, totals.Subtotal)
	assert.InDelta(t, 150.0, totals.MarkupAmount, 1e-9)
	assert.InDelta(t, 150.0, totals.Total, 1e-9)
	assert.InDelta(t, 150.0, totals.BalanceDue, 1e-9)
}

func TestComputeTotals_PercentMarkupOfZeroSubtotalIsZero(t *testing.T) {
	totals := pricing.ComputeTotals(nil, false, 8.25, percent("Standard Margin", 20), nil)

	assert.Zero(t, totals.MarkupAmount)
	assert.Zero(t, totals.Total)
}

func TestComputeTotals_NegativeLinesPropagate(t *testing.T) {
	totals := pricing.ComputeTotals(
		items([2]float64{1, 500}, [2]float64{1, -100}, [2]float64{2.5, 40}),
		false, 0, nil, nil,
	)

	assert.InDelta(t, 500.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 500.0, totals.BalanceDue, 1e-9)
}

func TestComputeTotals_NegativeMarkupSubtracts(t *testing.T) {
	totals := pricing.ComputeTotals(
		items([2]float64{1, 100}),
		false, 0,
		fixed("Loyalty Credit", -25),
		nil,
	)

	assert.InDelta(t, -25.0, totals.MarkupAmount, 1e-9)
	assert.InDelta(t, 75.0, totals.Total, 1e-9)
}

func TestComputeTotals_MarkupChangesTaxableBase(t *testing.T) {
	totals := pricing.ComputeTotals(
		items([2]float64{1, 100}),
		false, 10,
		percent("Standard Margin", 20),
		nil,
	)

	assert.InDelta(t, 20.0, totals.MarkupAmount, 1e-9)
	assert.InDelta(t, 12.0, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 132.0, totals.Total, 1e-9)
}

func TestComputeTotals_PercentDepositOfTotal(t *testing.T) {
	// Deposit percentages apply to the post-tax total, not the subtotal.
	totals := pricing.ComputeTotals(
		items([2]float64{1, 100}),
		false, 10,
		nil,
		percent("50% Upfront", 50),
	)

	assert.InDelta(t, 110.0, totals.Total, 1e-9)
	assert.InDelta(t, 55.0, totals.DepositAmount, 1e-9)
	assert.InDelta(t, 55.0, totals.BalanceDue, 1e-9)
}

func TestComputeTotals_DepositNeverExceedsTotal(t *testing.T) {
	for _, depositValue := range []float64{0, 100, 350, 350.01, 1000, 1e9} {
		totals := pricing.ComputeTotals(
			items([2]float64{2, 100}),
			false, 8.25,
			nil,
			fixed("Retainer", depositValue),
		)
		assert.LessOrEqual(t, totals.DepositAmount, totals.Total,
			"deposit %v must clamp to total", depositValue)
		assert.GreaterOrEqual(t, totals.BalanceDue, 0.0)
	}
}
