package models_test

import (
	"testing"

	"github.com/torquehub/garage_backend/models"
)

func TestValidatePaymentChannelRules(t *testing.T) {
	cases := []struct {
		name       string
		input      models.NewPayment
		wantFields []string
	}{
		{
			name:  "cash needs no channel",
			input: models.NewPayment{PaymentMethod: models.PaymentMethodCash},
		},
		{
			name: "cash rejects a channel",
			input: models.NewPayment{
				PaymentMethod:  models.PaymentMethodCash,
				PaymentChannel: models.PaymentChannelKBZPay,
			},
			wantFields: []string{"payment_channel"},
		},
		{
			name:       "mobile money requires a channel",
			input:      models.NewPayment{PaymentMethod: models.PaymentMethodMobileMoney},
			wantFields: []string{"payment_channel"},
		},
		{
			name: "mobile money accepts a wallet",
			input: models.NewPayment{
				PaymentMethod:  models.PaymentMethodMobileMoney,
				PaymentChannel: models.PaymentChannelWavePay,
			},
		},
		{
			name: "mobile money rejects a bank channel",
			input: models.NewPayment{
				PaymentMethod:  models.PaymentMethodMobileMoney,
				PaymentChannel: models.PaymentChannelKBZBank,
			},
			wantFields: []string{"payment_channel"},
		},
		{
			name: "bank transfer accepts a bank",
			input: models.NewPayment{
				PaymentMethod:  models.PaymentMethodBankTransfer,
				PaymentChannel: models.PaymentChannelYomaBank,
			},
		},
		{
			name: "bank transfer rejects a wallet",
			input: models.NewPayment{
				PaymentMethod:  models.PaymentMethodBankTransfer,
				PaymentChannel: models.PaymentChannelAYAPay,
			},
			wantFields: []string{"payment_channel"},
		},
		{
			name: "credit card accepts pos",
			input: models.NewPayment{
				PaymentMethod:  models.PaymentMethodCreditCard,
				PaymentChannel: models.PaymentChannelPOS,
			},
		},
		{
			name:       "cheque requires a cheque number",
			input:      models.NewPayment{PaymentMethod: models.PaymentMethodCheque},
			wantFields: []string{"cheque_number"},
		},
		{
			name: "cheque with number passes",
			input: models.NewPayment{
				PaymentMethod: models.PaymentMethodCheque,
				ChequeNumber:  "CHQ-0042",
			},
		},
		{
			name: "cheque rejects a channel",
			input: models.NewPayment{
				PaymentMethod:  models.PaymentMethodCheque,
				PaymentChannel: models.PaymentChannelCBBank,
				ChequeNumber:   "CHQ-0042",
			},
			wantFields: []string{"payment_channel"},
		},
		{
			name:  "other needs nothing",
			input: models.NewPayment{PaymentMethod: models.PaymentMethodOther},
		},
		{
			name:       "unknown method is flagged",
			input:      models.NewPayment{PaymentMethod: models.PaymentMethod("Barter")},
			wantFields: []string{"payment_method"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := tc.input
			fieldErrors := models.ValidatePaymentChannelRules(&input)
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

func TestPaymentMethodRuleFor(t *testing.T) {
	rule, ok := models.PaymentMethodRuleFor(models.PaymentMethodMobileMoney)
	if !ok {
		t.Fatal("mobile money rule missing")
	}
	if len(rule.AllowedChannels) != 4 {
		t.Fatalf("mobile money channels: got %d, want 4", len(rule.AllowedChannels))
	}

	if _, ok := models.PaymentMethodRuleFor(models.PaymentMethod("Barter")); ok {
		t.Fatal("unknown method should have no rule")
	}
}
