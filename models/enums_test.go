package models_test

import (
	"encoding/json"
	"testing"

	"github.com/torquehub/garage_backend/models"
)

func TestDocumentStatusValidFor(t *testing.T) {
	cases := []struct {
		status models.DocumentStatus
		kind   models.DocumentKind
		want   bool
	}{
		{models.DocumentStatusDraft, models.DocumentKindEstimate, true},
		{models.DocumentStatusConvertedToInvoice, models.DocumentKindEstimate, true},
		{models.DocumentStatusDraft, models.DocumentKindInvoice, false},
		{models.DocumentStatusUnpaid, models.DocumentKindInvoice, true},
		{models.DocumentStatusUnpaid, models.DocumentKindEstimate, false},
		{models.DocumentStatusPaid, models.DocumentKindInvoice, true},
		{models.DocumentStatusPaid, models.DocumentKindEstimate, false},
	}

	for _, tc := range cases {
		if got := tc.status.ValidFor(tc.kind); got != tc.want {
			t.Errorf("%s valid for %s: got %v, want %v", tc.status, tc.kind, got, tc.want)
		}
	}
}

func TestDocumentStatusTransitions(t *testing.T) {
	cases := []struct {
		kind models.DocumentKind
		from models.DocumentStatus
		to   models.DocumentStatus
		want bool
	}{
		{models.DocumentKindEstimate, models.DocumentStatusDraft, models.DocumentStatusSent, true},
		{models.DocumentKindEstimate, models.DocumentStatusSent, models.DocumentStatusApproved, true},
		{models.DocumentKindEstimate, models.DocumentStatusSent, models.DocumentStatusRejected, true},
		{models.DocumentKindEstimate, models.DocumentStatusApproved, models.DocumentStatusConvertedToInvoice, true},
		{models.DocumentKindEstimate, models.DocumentStatusRejected, models.DocumentStatusDraft, true},
		{models.DocumentKindEstimate, models.DocumentStatusDraft, models.DocumentStatusApproved, false},
		{models.DocumentKindEstimate, models.DocumentStatusConvertedToInvoice, models.DocumentStatusDraft, false},
		{models.DocumentKindInvoice, models.DocumentStatusUnpaid, models.DocumentStatusCancelled, true},
		{models.DocumentKindInvoice, models.DocumentStatusPartiallyPaid, models.DocumentStatusCancelled, true},
		{models.DocumentKindInvoice, models.DocumentStatusPaid, models.DocumentStatusCancelled, false},
		{models.DocumentKindInvoice, models.DocumentStatusUnpaid, models.DocumentStatusPaid, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.kind, tc.to); got != tc.want {
			t.Errorf("%s: %s -> %s: got %v, want %v", tc.kind, tc.from, tc.to, got, tc.want)
		}
	}
}

func TestEnumUnmarshalRejectsUnknownValues(t *testing.T) {
	var kind models.DocumentKind
	if err := json.Unmarshal([]byte(`"Receipt"`), &kind); err == nil {
		t.Error("document kind accepted unknown value")
	}
	var status models.DocumentStatus
	if err := json.Unmarshal([]byte(`"Archived"`), &status); err == nil {
		t.Error("document status accepted unknown value")
	}
	var method models.PaymentMethod
	if err := json.Unmarshal([]byte(`"Barter"`), &method); err == nil {
		t.Error("payment method accepted unknown value")
	}
	var channel models.PaymentChannel
	if err := json.Unmarshal([]byte(`"Hundi"`), &channel); err == nil {
		t.Error("payment channel accepted unknown value")
	}
}

func TestEnumUnmarshalRoundTrip(t *testing.T) {
	var status models.DocumentStatus
	if err := json.Unmarshal([]byte(`"Partially Paid"`), &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status != models.DocumentStatusPartiallyPaid {
		t.Fatalf("got %q", status)
	}
	out, err := json.Marshal(status)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"Partially Paid"` {
		t.Fatalf("got %s", out)
	}
}
