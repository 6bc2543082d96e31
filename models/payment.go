package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/torquehub/garage_backend/config"
	"github.com/torquehub/garage_backend/utils"
)

// ErrInvalidPaymentAmount rejects a finalize attempt whose amount paid is not
// strictly positive. Zero or negative receipts are never recorded.
var ErrInvalidPaymentAmount = errors.New("amount paid must be greater than zero")

// Payment is one recorded receipt against an invoice. RemainingBalance is the
// invoice balance after this payment settled, captured at record time.
type Payment struct {
	ID               int             `gorm:"primary_key" json:"id"`
	GarageId         string          `gorm:"index;not null" json:"garage_id" binding:"required"`
	InvoiceId        int             `gorm:"index;not null" json:"invoice_id" binding:"required"`
	ClientId         int             `gorm:"index;not null" json:"client_id" binding:"required"`
	CurrencyId       int             `gorm:"not null" json:"currency_id" binding:"required"`
	AmountPaid       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount_paid"`
	DiscountApplied  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_applied"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	PaymentDate      time.Time       `gorm:"not null" json:"payment_date" binding:"required"`
	PaymentMethod    PaymentMethod   `gorm:"type:enum('Cash','MobileMoney','BankTransfer','CreditCard','Cheque','Other');not null" json:"payment_method"`
	PaymentChannel   PaymentChannel  `gorm:"size:50;default:null" json:"payment_channel"`
	ChequeNumber     string          `gorm:"size:100;default:null" json:"cheque_number"`
	SenderNumber     string          `gorm:"size:100;default:null" json:"sender_number"`
	BankName         string          `gorm:"size:100;default:null" json:"bank_name"`
	SenderAccount    string          `gorm:"size:100;default:null" json:"sender_account"`
	ReferenceNumber  string          `gorm:"size:100;default:null" json:"reference_number"`
	Notes            string          `gorm:"type:text;default:null" json:"notes"`
	RemainingBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"remaining_balance"`
	CurrentStatus    PaymentStatus   `gorm:"type:enum('Completed','Partially Paid');not null" json:"current_status"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPayment struct {
	InvoiceId       int             `json:"invoice_id" binding:"required"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	DiscountApplied decimal.Decimal `json:"discount_applied"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	PaymentDate     time.Time       `json:"payment_date" binding:"required"`
	PaymentMethod   PaymentMethod   `json:"payment_method" binding:"required"`
	PaymentChannel  PaymentChannel  `json:"payment_channel"`
	ChequeNumber    string          `json:"cheque_number"`
	SenderNumber    string          `json:"sender_number"`
	BankName        string          `json:"bank_name"`
	SenderAccount   string          `json:"sender_account"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
}

// fieldValue resolves a rule-table field name to the input's value so the rule
// table can stay declarative.
func (input *NewPayment) fieldValue(field string) string {
	switch field {
	case "cheque_number":
		return input.ChequeNumber
	case "sender_number":
		return input.SenderNumber
	case "bank_name":
		return input.BankName
	case "sender_account":
		return input.SenderAccount
	case "reference_number":
		return input.ReferenceNumber
	default:
		return ""
	}
}

// PaymentTarget is the invoice summary the payment form loads before the user
// types an amount.
type PaymentTarget struct {
	InvoiceId      int             `json:"invoice_id"`
	InvoiceNumber  string          `json:"invoice_number"`
	ClientId       int             `json:"client_id"`
	CurrencyId     int             `json:"currency_id"`
	Total          decimal.Decimal `json:"total"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

type PaymentsEdge Edge[Payment]
type PaymentsConnection struct {
	Edges    []*PaymentsEdge `json:"edges"`
	PageInfo *PageInfo       `json:"pageInfo"`
}

func (p Payment) GetCursor() string {
	return p.CreatedAt.String()
}

func (p Payment) GetId() int {
	return p.ID
}

// ComputePaymentBalance derives the balance left on a target after settling
// amountPaid plus discountApplied against total, rounded to 2 decimal places.
// An overpayment comes back negative; callers present that as credit owed to
// the client rather than clamping it away.
func ComputePaymentBalance(total, amountPaid, discountApplied decimal.Decimal) decimal.Decimal {
	return utils.Round2(total.Sub(amountPaid).Sub(discountApplied))
}

// Finalize fixes the payment's status from its settled state. The amount check
// lives here, at the last gate before the row is written, so no code path can
// record a non-positive receipt.
func (p *Payment) Finalize() error {
	if p.AmountPaid.Cmp(decimal.Zero) <= 0 {
		return ErrInvalidPaymentAmount
	}
	if p.RemainingBalance.Cmp(decimal.Zero) <= 0 {
		p.CurrentStatus = PaymentStatusCompleted
	} else {
		p.CurrentStatus = PaymentStatusPartiallyPaid
	}
	return nil
}

// LookupPaymentTarget fetches the invoice summary the payment form needs.
// Misses return utils.ErrorRecordNotFound; the handler turns that into a
// zero-filled payload so the form degrades to zeros instead of erroring.
func LookupPaymentTarget(ctx context.Context, invoiceId int) (*PaymentTarget, error) {
	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	invoice, err := utils.FetchModel[Document](ctx, garageId, invoiceId)
	if err != nil {
		return nil, err
	}
	if invoice.Kind != DocumentKindInvoice {
		return nil, utils.ErrorRecordNotFound
	}

	return &PaymentTarget{
		InvoiceId:      invoice.ID,
		InvoiceNumber:  invoice.DocumentNumber,
		ClientId:       invoice.ClientId,
		CurrencyId:     invoice.CurrencyId,
		Total:          invoice.GrandTotal,
		CurrentBalance: invoice.BalanceDue,
	}, nil
}

// ValidatePaymentAdjustments checks the money adjustments carried on the
// payment record. Discount and tax ride along as data, not balance inputs
// (tax never enters ComputePaymentBalance), but neither can be negative.
func ValidatePaymentAdjustments(input *NewPayment) map[string]string {
	fieldErrors := make(map[string]string)
	if input.DiscountApplied.IsNegative() {
		fieldErrors["discount_applied"] = "discount applied cannot be negative"
	}
	if input.TaxAmount.IsNegative() {
		fieldErrors["tax_amount"] = "tax amount cannot be negative"
	}
	return fieldErrors
}

func (input *NewPayment) validate(ctx context.Context, garageId string) (*Document, error) {
	if fieldErrors := ValidatePaymentChannelRules(input); len(fieldErrors) > 0 {
		for field, message := range fieldErrors {
			return nil, fmt.Errorf("%s: %s", field, message)
		}
	}
	if fieldErrors := ValidatePaymentAdjustments(input); len(fieldErrors) > 0 {
		for field, message := range fieldErrors {
			return nil, fmt.Errorf("%s: %s", field, message)
		}
	}

	invoice, err := utils.FetchModel[Document](ctx, garageId, input.InvoiceId)
	if err != nil {
		return nil, err
	}
	if invoice.Kind != DocumentKindInvoice {
		return nil, errors.New("payments can only be recorded against invoices")
	}
	if invoice.CurrentStatus == DocumentStatusCancelled {
		return nil, fmt.Errorf("invoice %s is cancelled", invoice.DocumentNumber)
	}
	if invoice.CurrentStatus == DocumentStatusPaid {
		return nil, fmt.Errorf("invoice %s is already settled", invoice.DocumentNumber)
	}
	return invoice, nil
}

// CreatePayment records a receipt and settles it against its invoice in one
// transaction: the invoice's amount paid absorbs both the cash amount and any
// settlement discount, totals are re-derived, and the invoice status follows
// the new balance.
func CreatePayment(ctx context.Context, input *NewPayment) (*Payment, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	invoice, err := input.validate(ctx, garageId)
	if err != nil {
		return nil, err
	}

	payment := Payment{
		GarageId:         garageId,
		InvoiceId:        invoice.ID,
		ClientId:         invoice.ClientId,
		CurrencyId:       invoice.CurrencyId,
		AmountPaid:       input.AmountPaid,
		DiscountApplied:  input.DiscountApplied,
		TaxAmount:        input.TaxAmount,
		PaymentDate:      input.PaymentDate,
		PaymentMethod:    input.PaymentMethod,
		PaymentChannel:   input.PaymentChannel,
		ChequeNumber:     input.ChequeNumber,
		SenderNumber:     input.SenderNumber,
		BankName:         input.BankName,
		SenderAccount:    input.SenderAccount,
		ReferenceNumber:  input.ReferenceNumber,
		Notes:            input.Notes,
		RemainingBalance: ComputePaymentBalance(invoice.BalanceDue, input.AmountPaid, input.DiscountApplied),
	}
	if err := payment.Finalize(); err != nil {
		return nil, err
	}

	tx := db.Begin()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}

	settled := utils.Round2(input.AmountPaid.Add(input.DiscountApplied))
	invoice.AmountPaid = utils.Round2(invoice.AmountPaid.Add(settled))

	if err := tx.WithContext(ctx).Where("document_id = ?", invoice.ID).Find(&invoice.Items).Error; err != nil {
		return nil, err
	}
	invoice.applyTotals()

	if invoice.BalanceDue.Cmp(decimal.Zero) <= 0 {
		invoice.CurrentStatus = DocumentStatusPaid
	} else {
		invoice.CurrentStatus = DocumentStatusPartiallyPaid
	}

	if err := tx.WithContext(ctx).Save(invoice).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &payment, nil
}

// DeletePayment removes a receipt and rolls its settled amount back off the
// invoice, re-deriving totals and status.
func DeletePayment(ctx context.Context, id int) (*Payment, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	payment, err := utils.FetchModel[Payment](ctx, garageId, id)
	if err != nil {
		return nil, err
	}

	invoice, err := utils.FetchModel[Document](ctx, garageId, payment.InvoiceId, "Items")
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Delete(payment).Error; err != nil {
		return nil, err
	}

	settled := utils.Round2(payment.AmountPaid.Add(payment.DiscountApplied))
	invoice.AmountPaid = utils.Round2(invoice.AmountPaid.Sub(settled))
	if invoice.AmountPaid.IsNegative() {
		invoice.AmountPaid = decimal.Zero
	}
	invoice.applyTotals()

	switch {
	case invoice.AmountPaid.Cmp(decimal.Zero) == 0:
		invoice.CurrentStatus = DocumentStatusUnpaid
	case invoice.BalanceDue.Cmp(decimal.Zero) <= 0:
		invoice.CurrentStatus = DocumentStatusPaid
	default:
		invoice.CurrentStatus = DocumentStatusPartiallyPaid
	}

	if err := tx.WithContext(ctx).Save(invoice).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return payment, nil
}

func GetPayment(ctx context.Context, id int) (*Payment, error) {
	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}
	return utils.FetchModel[Payment](ctx, garageId, id)
}

func PaginatePayments(ctx context.Context, limit *int, after *string,
	invoiceID *int,
	clientID *int,
	method *PaymentMethod,
) (*PaymentsConnection, error) {

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("garage_id = ?", garageId)
	if invoiceID != nil && *invoiceID > 0 {
		dbCtx.Where("invoice_id = ?", *invoiceID)
	}
	if clientID != nil && *clientID > 0 {
		dbCtx.Where("client_id = ?", *clientID)
	}
	if method != nil && *method != "" {
		dbCtx.Where("payment_method = ?", *method)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Payment](dbCtx, *limit, after, "created_at", "<")
	if err != nil {
		return nil, err
	}
	var paymentsConnection PaymentsConnection
	paymentsConnection.PageInfo = pageInfo
	for _, edge := range edges {
		paymentEdge := PaymentsEdge(edge)
		paymentsConnection.Edges = append(paymentsConnection.Edges, &paymentEdge)
	}

	return &paymentsConnection, err
}
