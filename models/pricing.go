package models

import (
	"github.com/shopspring/decimal"

	"github.com/torquehub/garage_backend/utils"
)

// DocumentTotals is the complete derived money breakdown for one document.
// Every field is a pure function of the document's line items and adjustment
// inputs; handlers return the whole snapshot so the front end never re-derives
// arithmetic on its own.
type DocumentTotals struct {
	SubtotalItems  decimal.Decimal `json:"subtotal_items"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalBeforeTax decimal.Decimal `json:"total_before_tax"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	BalanceDue     decimal.Decimal `json:"balance_due"`
}

// CalculateLineSubtotal derives one row's amount:
// quantity * unitCost (parts/other) + laborHours * laborRate (service time),
// rounded to 2 decimal places. The stored line_subtotal column is only ever a
// cache of this; it is never edited directly.
func CalculateLineSubtotal(quantity, unitCost, laborHours, laborRate decimal.Decimal) decimal.Decimal {
	return utils.Round2(quantity.Mul(unitCost).Add(laborHours.Mul(laborRate)))
}

// CalculateDocumentTotals derives the full totals pipeline for a document.
//
// The stage order is a contract: discount applies to the item subtotal, tax
// applies to the discounted base (never to the raw subtotal), other charges
// join after tax, and payments subtract from the grand total. Each stage is
// rounded to 2 decimal places before feeding the next.
//
// Estimates carry no other charges or payments; those inputs are forced to
// zero and the balance due reports the grand total.
//
// Overpayment is not clamped: amountPaid above the grand total yields a
// negative balance due and callers decide how to present the credit.
func CalculateDocumentTotals(
	kind DocumentKind,
	items []DocumentLineItem,
	discountPercent decimal.Decimal,
	taxPercent decimal.Decimal,
	otherCharges decimal.Decimal,
	amountPaid decimal.Decimal,
) DocumentTotals {

	if kind == DocumentKindEstimate {
		otherCharges = decimal.Zero
		amountPaid = decimal.Zero
	}

	var subtotalItems decimal.Decimal
	for _, item := range items {
		subtotalItems = subtotalItems.Add(CalculateLineSubtotal(item.Quantity, item.UnitCost, item.LaborHours, item.LaborRate))
	}
	subtotalItems = utils.Round2(subtotalItems)

	discountAmount := utils.CalculatePercentAmount(subtotalItems, discountPercent)
	totalBeforeTax := utils.Round2(subtotalItems.Sub(discountAmount))
	taxAmount := utils.CalculatePercentAmount(totalBeforeTax, taxPercent)
	grandTotal := utils.Round2(totalBeforeTax.Add(taxAmount).Add(otherCharges))

	balanceDue := grandTotal
	if kind == DocumentKindInvoice {
		balanceDue = utils.Round2(grandTotal.Sub(amountPaid))
	}

	return DocumentTotals{
		SubtotalItems:  subtotalItems,
		DiscountAmount: discountAmount,
		TotalBeforeTax: totalBeforeTax,
		TaxAmount:      taxAmount,
		GrandTotal:     grandTotal,
		BalanceDue:     balanceDue,
	}
}
