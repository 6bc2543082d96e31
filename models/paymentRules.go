package models

// PaymentMethodRule declares what a payment method demands from the rest of
// the payment form: which settlement channels it may ride on and which extra
// reference fields must be filled in.
type PaymentMethodRule struct {
	// AllowedChannels is nil for methods that settle without a named channel
	// (cash over the counter, cheques, the catch-all Other).
	AllowedChannels []PaymentChannel
	// RequiredFields names NewPayment JSON fields that cannot be blank.
	RequiredFields []string
}

var paymentMethodRules = map[PaymentMethod]PaymentMethodRule{
	PaymentMethodCash: {},
	PaymentMethodMobileMoney: {
		AllowedChannels: []PaymentChannel{
			PaymentChannelKBZPay,
			PaymentChannelWavePay,
			PaymentChannelAYAPay,
			PaymentChannelCBPay,
		},
	},
	PaymentMethodBankTransfer: {
		AllowedChannels: []PaymentChannel{
			PaymentChannelKBZBank,
			PaymentChannelAYABank,
			PaymentChannelCBBank,
			PaymentChannelYomaBank,
		},
	},
	PaymentMethodCreditCard: {
		AllowedChannels: []PaymentChannel{
			PaymentChannelPOS,
			PaymentChannelOnlineGateway,
		},
	},
	PaymentMethodCheque: {
		RequiredFields: []string{"cheque_number"},
	},
	PaymentMethodOther: {},
}

func PaymentMethodRuleFor(method PaymentMethod) (PaymentMethodRule, bool) {
	rule, ok := paymentMethodRules[method]
	return rule, ok
}

func (r PaymentMethodRule) allowsChannel(channel PaymentChannel) bool {
	for _, allowed := range r.AllowedChannels {
		if allowed == channel {
			return true
		}
	}
	return false
}

// ValidatePaymentChannelRules checks a payment input against the rule table
// for its method. It returns a field -> message map so handlers can hand the
// result straight to the form, empty when the input passes.
func ValidatePaymentChannelRules(input *NewPayment) map[string]string {
	fieldErrors := make(map[string]string)

	rule, ok := paymentMethodRules[input.PaymentMethod]
	if !ok {
		fieldErrors["payment_method"] = "unknown payment method"
		return fieldErrors
	}

	if len(rule.AllowedChannels) == 0 {
		if input.PaymentChannel != "" {
			fieldErrors["payment_channel"] = "payment channel does not apply to this payment method"
		}
	} else {
		if input.PaymentChannel == "" {
			fieldErrors["payment_channel"] = "payment channel is required for this payment method"
		} else if !rule.allowsChannel(input.PaymentChannel) {
			fieldErrors["payment_channel"] = "payment channel is not available for this payment method"
		}
	}

	for _, field := range rule.RequiredFields {
		if input.fieldValue(field) == "" {
			fieldErrors[field] = field + " is required for this payment method"
		}
	}

	return fieldErrors
}
