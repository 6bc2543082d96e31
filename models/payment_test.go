package models_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/torquehub/garage_backend/models"
)

func TestComputePaymentBalance(t *testing.T) {
	cases := []struct {
		name            string
		total           string
		amountPaid      string
		discountApplied string
		want            string
	}{
		{"partial", "100", "40", "0", "60.00"},
		{"exact", "100", "100", "0", "0.00"},
		{"with settlement discount", "100", "90", "10", "0.00"},
		{"overpayment goes negative", "100", "120", "0", "-20.00"},
		{"discount pushes past zero", "50", "45", "10", "-5.00"},
		{"rounds result", "10.555", "0.001", "0", "10.55"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := models.ComputePaymentBalance(dec(t, tc.total), dec(t, tc.amountPaid), dec(t, tc.discountApplied))
			mustEqual(t, "balance", got, dec(t, tc.want))
		})
	}
}

func TestValidatePaymentAdjustments(t *testing.T) {
	cases := []struct {
		name       string
		input      models.NewPayment
		wantFields []string
	}{
		{
			name: "non-negative adjustments pass",
			input: models.NewPayment{
				DiscountApplied: dec(t, "5"),
				TaxAmount:       dec(t, "2.50"),
			},
		},
		{
			name:       "negative discount flagged",
			input:      models.NewPayment{DiscountApplied: dec(t, "-1")},
			wantFields: []string{"discount_applied"},
		},
		{
			name:       "negative tax flagged",
			input:      models.NewPayment{TaxAmount: dec(t, "-0.01")},
			wantFields: []string{"tax_amount"},
		},
		{
			name: "both flagged",
			input: models.NewPayment{
				DiscountApplied: dec(t, "-1"),
				TaxAmount:       dec(t, "-1"),
			},
			wantFields: []string{"discount_applied", "tax_amount"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := tc.input
			fieldErrors := models.ValidatePaymentAdjustments(&input)
			if len(fieldErrors) != len(tc.wantFields) {
				t.Fatalf("got %d field errors (%v), want %d", len(fieldErrors), fieldErrors, len(tc.wantFields))
			}
			for _, field := range tc.wantFields {
				if _, ok := fieldErrors[field]; !ok {
					t.Fatalf("missing error for field %q in %v", field, fieldErrors)
				}
			}
		})
	}
}

func TestPaymentTaxAmountStaysOutOfBalance(t *testing.T) {
	// tax rides on the payment record as data; only amount paid and the
	// settlement discount reduce the balance
	got := models.ComputePaymentBalance(dec(t, "100"), dec(t, "40"), dec(t, "10"))
	mustEqual(t, "balance", got, dec(t, "50.00"))
}

func TestPaymentFinalizeRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5"} {
		payment := models.Payment{AmountPaid: dec(t, amount)}
		if err := payment.Finalize(); !errors.Is(err, models.ErrInvalidPaymentAmount) {
			t.Fatalf("amount %s: got %v, want ErrInvalidPaymentAmount", amount, err)
		}
	}
}

func TestPaymentFinalizeStatus(t *testing.T) {
	cases := []struct {
		name      string
		remaining string
		want      models.PaymentStatus
	}{
		{"settled", "0", models.PaymentStatusCompleted},
		{"overpaid", "-10", models.PaymentStatusCompleted},
		{"partial", "25.50", models.PaymentStatusPartiallyPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payment := models.Payment{
				AmountPaid:       decimal.NewFromInt(10),
				RemainingBalance: dec(t, tc.remaining),
			}
			if err := payment.Finalize(); err != nil {
				t.Fatalf("finalize: %v", err)
			}
			if payment.CurrentStatus != tc.want {
				t.Fatalf("status: got %q, want %q", payment.CurrentStatus, tc.want)
			}
		})
	}
}
