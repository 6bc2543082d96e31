package models

import (
	"encoding/json"
	"errors"
	"strconv"
)

type ClientType string

const (
	ClientTypeIndividual ClientType = "Individual"
	ClientTypeCompany    ClientType = "Company"
)

// convert enum to send response
func (t ClientType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

// convert input to enum type
func (t *ClientType) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("client type must be string")
	}
	switch str {
	case "Individual":
		*t = ClientTypeIndividual
	case "Company":
		*t = ClientTypeCompany
	default:
		return errors.New("invalid client type")
	}
	return nil
}

type LineItemKind string

const (
	LineItemKindService LineItemKind = "Service"
	LineItemKindPart    LineItemKind = "Part"
	LineItemKindOther   LineItemKind = "Other"
)

func (k LineItemKind) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(k))), nil
}

func (k *LineItemKind) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("line item kind must be string")
	}
	switch str {
	case "Service":
		*k = LineItemKindService
	case "Part":
		*k = LineItemKindPart
	case "Other":
		*k = LineItemKindOther
	default:
		return errors.New("invalid line item kind")
	}
	return nil
}

type DocumentKind string

const (
	DocumentKindEstimate DocumentKind = "Estimate"
	DocumentKindInvoice  DocumentKind = "Invoice"
)

func (k DocumentKind) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(k))), nil
}

func (k *DocumentKind) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("document kind must be string")
	}
	switch str {
	case "Estimate":
		*k = DocumentKindEstimate
	case "Invoice":
		*k = DocumentKindInvoice
	default:
		return errors.New("invalid document kind")
	}
	return nil
}

// DocumentStatus carries both estimate and invoice statuses; which values are
// legal for a document depends on its kind.
type DocumentStatus string

const (
	DocumentStatusDraft              DocumentStatus = "Draft"
	DocumentStatusSent               DocumentStatus = "Sent"
	DocumentStatusApproved           DocumentStatus = "Approved"
	DocumentStatusRejected           DocumentStatus = "Rejected"
	DocumentStatusConvertedToInvoice DocumentStatus = "Converted To Invoice"

	DocumentStatusUnpaid        DocumentStatus = "Unpaid"
	DocumentStatusPartiallyPaid DocumentStatus = "Partially Paid"
	DocumentStatusPaid          DocumentStatus = "Paid"
	DocumentStatusCancelled     DocumentStatus = "Cancelled"
)

var estimateStatuses = map[DocumentStatus]bool{
	DocumentStatusDraft:              true,
	DocumentStatusSent:               true,
	DocumentStatusApproved:           true,
	DocumentStatusRejected:           true,
	DocumentStatusConvertedToInvoice: true,
}

var invoiceStatuses = map[DocumentStatus]bool{
	DocumentStatusUnpaid:        true,
	DocumentStatusPartiallyPaid: true,
	DocumentStatusPaid:          true,
	DocumentStatusCancelled:     true,
}

func (s DocumentStatus) ValidFor(kind DocumentKind) bool {
	if kind == DocumentKindEstimate {
		return estimateStatuses[s]
	}
	return invoiceStatuses[s]
}

// estimateTransitions / invoiceTransitions list the allowed manual status moves.
// Payment-driven moves (Unpaid -> Partially Paid -> Paid) go through CreatePayment.
var estimateTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentStatusDraft:    {DocumentStatusSent},
	DocumentStatusSent:     {DocumentStatusApproved, DocumentStatusRejected},
	DocumentStatusApproved: {DocumentStatusConvertedToInvoice},
	DocumentStatusRejected: {DocumentStatusDraft},
}

var invoiceTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentStatusUnpaid:        {DocumentStatusCancelled},
	DocumentStatusPartiallyPaid: {DocumentStatusCancelled},
}

func (s DocumentStatus) CanTransitionTo(kind DocumentKind, next DocumentStatus) bool {
	var allowed []DocumentStatus
	if kind == DocumentKindEstimate {
		allowed = estimateTransitions[s]
	} else {
		allowed = invoiceTransitions[s]
	}
	for _, a := range allowed {
		if a == next {
			return true
		}
	}
	return false
}

func (s DocumentStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

func (s *DocumentStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("document status must be string")
	}
	documentStatus := map[string]DocumentStatus{
		"Draft":                DocumentStatusDraft,
		"Sent":                 DocumentStatusSent,
		"Approved":             DocumentStatusApproved,
		"Rejected":             DocumentStatusRejected,
		"Converted To Invoice": DocumentStatusConvertedToInvoice,
		"Unpaid":               DocumentStatusUnpaid,
		"Partially Paid":       DocumentStatusPartiallyPaid,
		"Paid":                 DocumentStatusPaid,
		"Cancelled":            DocumentStatusCancelled,
	}
	status, ok := documentStatus[str]
	if !ok {
		return errors.New("invalid document status")
	}
	*s = status
	return nil
}

type PaymentStatus string

const (
	PaymentStatusCompleted     PaymentStatus = "Completed"
	PaymentStatusPartiallyPaid PaymentStatus = "Partially Paid"
)

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

func (s *PaymentStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("payment status must be string")
	}
	switch str {
	case "Completed":
		*s = PaymentStatusCompleted
	case "Partially Paid":
		*s = PaymentStatusPartiallyPaid
	default:
		return errors.New("invalid payment status")
	}
	return nil
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodMobileMoney  PaymentMethod = "MobileMoney"
	PaymentMethodBankTransfer PaymentMethod = "BankTransfer"
	PaymentMethodCreditCard   PaymentMethod = "CreditCard"
	PaymentMethodCheque       PaymentMethod = "Cheque"
	PaymentMethodOther        PaymentMethod = "Other"
)

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(m))), nil
}

func (m *PaymentMethod) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("payment method must be string")
	}
	paymentMethod := map[string]PaymentMethod{
		"Cash":         PaymentMethodCash,
		"MobileMoney":  PaymentMethodMobileMoney,
		"BankTransfer": PaymentMethodBankTransfer,
		"CreditCard":   PaymentMethodCreditCard,
		"Cheque":       PaymentMethodCheque,
		"Other":        PaymentMethodOther,
	}
	method, ok := paymentMethod[str]
	if !ok {
		return errors.New("invalid payment method")
	}
	*m = method
	return nil
}

type PaymentChannel string

const (
	PaymentChannelKBZPay        PaymentChannel = "KBZPay"
	PaymentChannelWavePay       PaymentChannel = "WavePay"
	PaymentChannelAYAPay        PaymentChannel = "AYAPay"
	PaymentChannelCBPay         PaymentChannel = "CBPay"
	PaymentChannelKBZBank       PaymentChannel = "KBZBank"
	PaymentChannelAYABank       PaymentChannel = "AYABank"
	PaymentChannelCBBank        PaymentChannel = "CBBank"
	PaymentChannelYomaBank      PaymentChannel = "YomaBank"
	PaymentChannelPOS           PaymentChannel = "POS"
	PaymentChannelOnlineGateway PaymentChannel = "OnlineGateway"
)

func (ch PaymentChannel) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(ch))), nil
}

func (ch *PaymentChannel) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("payment channel must be string")
	}
	paymentChannel := map[string]PaymentChannel{
		"KBZPay":        PaymentChannelKBZPay,
		"WavePay":       PaymentChannelWavePay,
		"AYAPay":        PaymentChannelAYAPay,
		"CBPay":         PaymentChannelCBPay,
		"KBZBank":       PaymentChannelKBZBank,
		"AYABank":       PaymentChannelAYABank,
		"CBBank":        PaymentChannelCBBank,
		"YomaBank":      PaymentChannelYomaBank,
		"POS":           PaymentChannelPOS,
		"OnlineGateway": PaymentChannelOnlineGateway,
	}
	channel, ok := paymentChannel[str]
	if !ok {
		return errors.New("invalid payment channel")
	}
	*ch = channel
	return nil
}

type UserRole string

const (
	UserRoleAdmin UserRole = "A"
	UserRoleStaff UserRole = "S"
)

func (r UserRole) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(r))), nil
}

func (r *UserRole) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("user role must be string")
	}
	switch str {
	case "A":
		*r = UserRoleAdmin
	case "S":
		*r = UserRoleStaff
	default:
		return errors.New("invalid user role")
	}
	return nil
}
