package models_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/torquehub/garage_backend/models"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func mustEqual(t *testing.T, label string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("%s: got %s, want %s", label, got, want)
	}
}

func TestCalculateLineSubtotal(t *testing.T) {
	cases := []struct {
		name       string
		quantity   string
		unitCost   string
		laborHours string
		laborRate  string
		want       string
	}{
		{"parts only", "4", "12.50", "0", "0", "50.00"},
		{"labor only", "0", "0", "2.5", "40", "100.00"},
		{"parts and labor", "2", "15.75", "1.5", "30", "76.50"},
		{"rounds half up", "3", "0.333", "0", "0", "1.00"},
		{"all zero", "0", "0", "0", "0", "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := models.CalculateLineSubtotal(
				dec(t, tc.quantity), dec(t, tc.unitCost), dec(t, tc.laborHours), dec(t, tc.laborRate))
			mustEqual(t, "line subtotal", got, dec(t, tc.want))
		})
	}
}

func TestCalculateDocumentTotalsInvoice(t *testing.T) {
	// subtotal 100, 10% discount, 10% tax on the discounted base, 50 paid
	items := []models.DocumentLineItem{
		{Quantity: dec(t, "2"), UnitCost: dec(t, "20")},   // 40
		{LaborHours: dec(t, "1.5"), LaborRate: dec(t, "40")}, // 60
	}

	totals := models.CalculateDocumentTotals(
		models.DocumentKindInvoice,
		items,
		dec(t, "10"), // discount %
		dec(t, "10"), // tax %
		decimal.Zero,
		dec(t, "50"),
	)

	mustEqual(t, "subtotal", totals.SubtotalItems, dec(t, "100.00"))
	mustEqual(t, "discount amount", totals.DiscountAmount, dec(t, "10.00"))
	mustEqual(t, "total before tax", totals.TotalBeforeTax, dec(t, "90.00"))
	mustEqual(t, "tax amount", totals.TaxAmount, dec(t, "9.00"))
	mustEqual(t, "grand total", totals.GrandTotal, dec(t, "99.00"))
	mustEqual(t, "balance due", totals.BalanceDue, dec(t, "49.00"))
}

func TestCalculateDocumentTotalsTaxAppliesAfterDiscount(t *testing.T) {
	items := []models.DocumentLineItem{
		{Quantity: dec(t, "1"), UnitCost: dec(t, "200")},
	}

	totals := models.CalculateDocumentTotals(
		models.DocumentKindInvoice, items,
		dec(t, "50"), dec(t, "5"), decimal.Zero, decimal.Zero)

	// 5% of the discounted 100, not of the raw 200
	mustEqual(t, "tax amount", totals.TaxAmount, dec(t, "5.00"))
	mustEqual(t, "grand total", totals.GrandTotal, dec(t, "105.00"))
}

func TestCalculateDocumentTotalsOtherCharges(t *testing.T) {
	items := []models.DocumentLineItem{
		{Quantity: dec(t, "1"), UnitCost: dec(t, "80")},
	}

	totals := models.CalculateDocumentTotals(
		models.DocumentKindInvoice, items,
		decimal.Zero, decimal.Zero, dec(t, "12.50"), decimal.Zero)

	mustEqual(t, "grand total", totals.GrandTotal, dec(t, "92.50"))
	mustEqual(t, "balance due", totals.BalanceDue, dec(t, "92.50"))
}

func TestCalculateDocumentTotalsEstimateIgnoresChargesAndPayments(t *testing.T) {
	items := []models.DocumentLineItem{
		{Quantity: dec(t, "1"), UnitCost: dec(t, "100")},
	}

	totals := models.CalculateDocumentTotals(
		models.DocumentKindEstimate, items,
		decimal.Zero, decimal.Zero,
		dec(t, "25"), // would-be other charges
		dec(t, "40"), // would-be payment
	)

	mustEqual(t, "grand total", totals.GrandTotal, dec(t, "100.00"))
	mustEqual(t, "balance due", totals.BalanceDue, dec(t, "100.00"))
}

func TestCalculateDocumentTotalsEmptyItems(t *testing.T) {
	totals := models.CalculateDocumentTotals(
		models.DocumentKindInvoice, nil,
		dec(t, "10"), dec(t, "5"), decimal.Zero, decimal.Zero)

	mustEqual(t, "subtotal", totals.SubtotalItems, decimal.Zero)
	mustEqual(t, "discount amount", totals.DiscountAmount, decimal.Zero)
	mustEqual(t, "tax amount", totals.TaxAmount, decimal.Zero)
	mustEqual(t, "grand total", totals.GrandTotal, decimal.Zero)
	mustEqual(t, "balance due", totals.BalanceDue, decimal.Zero)
}

func TestCalculateDocumentTotalsOverpaymentGoesNegative(t *testing.T) {
	items := []models.DocumentLineItem{
		{Quantity: dec(t, "1"), UnitCost: dec(t, "60")},
	}

	totals := models.CalculateDocumentTotals(
		models.DocumentKindInvoice, items,
		decimal.Zero, decimal.Zero, decimal.Zero, dec(t, "100"))

	mustEqual(t, "balance due", totals.BalanceDue, dec(t, "-40.00"))
}

func TestCalculateDocumentTotalsItemOrderIndependent(t *testing.T) {
	a := models.DocumentLineItem{Quantity: dec(t, "3"), UnitCost: dec(t, "9.99")}
	b := models.DocumentLineItem{LaborHours: dec(t, "2"), LaborRate: dec(t, "35.50")}
	c := models.DocumentLineItem{Quantity: dec(t, "1"), UnitCost: dec(t, "0.01")}

	forward := models.CalculateDocumentTotals(models.DocumentKindInvoice,
		[]models.DocumentLineItem{a, b, c},
		dec(t, "7"), dec(t, "5"), dec(t, "3"), dec(t, "10"))
	reversed := models.CalculateDocumentTotals(models.DocumentKindInvoice,
		[]models.DocumentLineItem{c, b, a},
		dec(t, "7"), dec(t, "5"), dec(t, "3"), dec(t, "10"))

	mustEqual(t, "subtotal", forward.SubtotalItems, reversed.SubtotalItems)
	mustEqual(t, "grand total", forward.GrandTotal, reversed.GrandTotal)
	mustEqual(t, "balance due", forward.BalanceDue, reversed.BalanceDue)
}

func TestCalculateDocumentTotalsIdempotent(t *testing.T) {
	items := []models.DocumentLineItem{
		{Quantity: dec(t, "7"), UnitCost: dec(t, "3.14")},
		{LaborHours: dec(t, "0.75"), LaborRate: dec(t, "42")},
	}

	first := models.CalculateDocumentTotals(models.DocumentKindInvoice, items,
		dec(t, "12.5"), dec(t, "8"), dec(t, "4.20"), dec(t, "15"))
	second := models.CalculateDocumentTotals(models.DocumentKindInvoice, items,
		dec(t, "12.5"), dec(t, "8"), dec(t, "4.20"), dec(t, "15"))

	mustEqual(t, "grand total", first.GrandTotal, second.GrandTotal)
	mustEqual(t, "balance due", first.BalanceDue, second.BalanceDue)
}

func TestCalculateDocumentTotalsRederivesOnChangedPercents(t *testing.T) {
	items := []models.DocumentLineItem{
		{Quantity: dec(t, "1"), UnitCost: dec(t, "100")},
	}

	before := models.CalculateDocumentTotals(models.DocumentKindInvoice, items,
		dec(t, "10"), dec(t, "10"), decimal.Zero, dec(t, "50"))
	after := models.CalculateDocumentTotals(models.DocumentKindInvoice, items,
		dec(t, "20"), dec(t, "5"), decimal.Zero, dec(t, "50"))

	mustEqual(t, "grand total before", before.GrandTotal, dec(t, "99.00"))
	// 20% discount -> 80.00 base, 5% tax -> 4.00; every downstream field moves
	mustEqual(t, "discount amount after", after.DiscountAmount, dec(t, "20.00"))
	mustEqual(t, "total before tax after", after.TotalBeforeTax, dec(t, "80.00"))
	mustEqual(t, "tax amount after", after.TaxAmount, dec(t, "4.00"))
	mustEqual(t, "grand total after", after.GrandTotal, dec(t, "84.00"))
	mustEqual(t, "balance due after", after.BalanceDue, dec(t, "34.00"))
}

func TestCalculateDocumentTotalsRoundsEachStage(t *testing.T) {
	// 3 x 33.333 = 99.999 -> 100.00 before discount ever applies
	items := []models.DocumentLineItem{
		{Quantity: dec(t, "3"), UnitCost: dec(t, "33.333")},
	}

	totals := models.CalculateDocumentTotals(models.DocumentKindInvoice, items,
		dec(t, "3"), dec(t, "7"), decimal.Zero, decimal.Zero)

	mustEqual(t, "subtotal", totals.SubtotalItems, dec(t, "100.00"))
	// 3% of 100.00 = 3.00; 7% of 97.00 = 6.79
	mustEqual(t, "discount amount", totals.DiscountAmount, dec(t, "3.00"))
	mustEqual(t, "total before tax", totals.TotalBeforeTax, dec(t, "97.00"))
	mustEqual(t, "tax amount", totals.TaxAmount, dec(t, "6.79"))
	mustEqual(t, "grand total", totals.GrandTotal, dec(t, "103.79"))
}
