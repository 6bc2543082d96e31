package models_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/torquehub/garage_backend/models"
)

func TestNewDocumentNormalizeZeroesEstimateAdjustments(t *testing.T) {
	input := models.NewDocument{
		Kind:         models.DocumentKindEstimate,
		OtherCharges: dec(t, "25"),
		AmountPaid:   dec(t, "40"),
	}

	input.Normalize()

	// the stored columns feed the calculator; an estimate row must never
	// carry charges or payments its derived totals ignore
	mustEqual(t, "other charges", input.OtherCharges, decimal.Zero)
	mustEqual(t, "amount paid", input.AmountPaid, decimal.Zero)
}

func TestNewDocumentNormalizeKeepsInvoiceAdjustments(t *testing.T) {
	input := models.NewDocument{
		Kind:         models.DocumentKindInvoice,
		OtherCharges: dec(t, "25"),
		AmountPaid:   dec(t, "40"),
	}

	input.Normalize()

	mustEqual(t, "other charges", input.OtherCharges, dec(t, "25"))
	mustEqual(t, "amount paid", input.AmountPaid, dec(t, "40"))
}

func TestClientCompositeCursorRoundTrip(t *testing.T) {
	client := models.Client{ID: 42, Name: "Aung Kyaw"}

	encoded := models.EncodeCompositeCursor(client.GetCursor(), client.GetId())
	value, id := models.DecodeCompositeCursor(&encoded)

	if value != "Aung Kyaw" {
		t.Fatalf("cursor value: got %q, want %q", value, "Aung Kyaw")
	}
	if id != 42 {
		t.Fatalf("cursor id: got %d, want 42", id)
	}
}
