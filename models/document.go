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

// Document is the billable unit: an estimate or an invoice, distinguished by
// Kind. The derived total columns are a cache of CalculateDocumentTotals over
// the input columns; every write path recomputes them, nothing edits them.
type Document struct {
	ID              int                `gorm:"primary_key" json:"id"`
	GarageId        string             `gorm:"index;not null" json:"garage_id" binding:"required"`
	Kind            DocumentKind       `gorm:"type:enum('Estimate','Invoice');not null" json:"kind" binding:"required"`
	ClientId        int                `gorm:"index;not null" json:"client_id" binding:"required"`
	VehicleId       int                `gorm:"index;not null" json:"vehicle_id" binding:"required"`
	SequenceNo      int64              `gorm:"not null" json:"sequence_no"`
	DocumentNumber  string             `gorm:"size:255;not null" json:"document_number" binding:"required"`
	DocumentDate    time.Time          `gorm:"not null" json:"document_date" binding:"required"`
	CurrencyId      int                `gorm:"not null" json:"currency_id" binding:"required"`
	Notes           string             `gorm:"type:text;default:null" json:"notes"`
	DiscountPercent decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"discount_percent"`
	TaxPercent      decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"tax_percent"`
	OtherCharges    decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"other_charges"`
	AmountPaid      decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"amount_paid"`
	CurrentStatus   DocumentStatus     `gorm:"type:enum('Draft','Sent','Approved','Rejected','Converted To Invoice','Unpaid','Partially Paid','Paid','Cancelled');not null" json:"current_status"`
	Items           []DocumentLineItem `gorm:"foreignKey:DocumentId" json:"items"`
	SubtotalItems   decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"subtotal_items"`
	DiscountAmount  decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	TotalBeforeTax  decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"total_before_tax"`
	TaxAmount       decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	GrandTotal      decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"grand_total"`
	BalanceDue      decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"balance_due"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type DocumentLineItem struct {
	ID           int             `gorm:"primary_key" json:"id"`
	DocumentId   int             `gorm:"index;not null" json:"document_id" binding:"required"`
	Kind         LineItemKind    `gorm:"type:enum('Service','Part','Other');default:'Service'" json:"kind"`
	Name         string          `gorm:"size:100" json:"name" binding:"required"`
	Description  string          `gorm:"size:255;default:null" json:"description"`
	Quantity     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_cost"`
	LaborHours   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"labor_hours"`
	LaborRate    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"labor_rate"`
	LineSubtotal decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"line_subtotal"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDocument struct {
	Kind            DocumentKind          `json:"kind" binding:"required"`
	ClientId        int                   `json:"client_id" binding:"required"`
	VehicleId       int                   `json:"vehicle_id" binding:"required"`
	DocumentDate    time.Time             `json:"document_date" binding:"required"`
	CurrencyId      int                   `json:"currency_id" binding:"required"`
	Notes           string                `json:"notes"`
	DiscountPercent decimal.Decimal       `json:"discount_percent"`
	TaxPercent      decimal.Decimal       `json:"tax_percent"`
	OtherCharges    decimal.Decimal       `json:"other_charges"`
	AmountPaid      decimal.Decimal       `json:"amount_paid"`
	CurrentStatus   DocumentStatus        `json:"current_status"`
	Items           []NewDocumentLineItem `json:"items"`
}

type NewDocumentLineItem struct {
	Kind        LineItemKind    `json:"kind"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LaborHours  decimal.Decimal `json:"labor_hours"`
	LaborRate   decimal.Decimal `json:"labor_rate"`
}

type DocumentsEdge Edge[Document]
type DocumentsConnection struct {
	Edges    []*DocumentsEdge `json:"edges"`
	PageInfo *PageInfo        `json:"pageInfo"`
}

// implements methods for pagination

// returns decoded cursor string
func (d Document) GetCursor() string {
	return d.CreatedAt.String()
}

func (d Document) GetId() int {
	return d.ID
}

// Totals recomputes the derived breakdown from the document's current inputs.
func (d *Document) Totals() DocumentTotals {
	return CalculateDocumentTotals(d.Kind, d.Items, d.DiscountPercent, d.TaxPercent, d.OtherCharges, d.AmountPaid)
}

// applyTotals writes the freshly derived breakdown back onto the cached
// columns, including per-line subtotals.
func (d *Document) applyTotals() {
	for i := range d.Items {
		d.Items[i].LineSubtotal = CalculateLineSubtotal(
			d.Items[i].Quantity, d.Items[i].UnitCost, d.Items[i].LaborHours, d.Items[i].LaborRate)
	}
	totals := d.Totals()
	d.SubtotalItems = totals.SubtotalItems
	d.DiscountAmount = totals.DiscountAmount
	d.TotalBeforeTax = totals.TotalBeforeTax
	d.TaxAmount = totals.TaxAmount
	d.GrandTotal = totals.GrandTotal
	d.BalanceDue = totals.BalanceDue
}

func defaultStatusFor(kind DocumentKind) DocumentStatus {
	if kind == DocumentKindEstimate {
		return DocumentStatusDraft
	}
	return DocumentStatusUnpaid
}

func documentPrefix(kind DocumentKind) string {
	if kind == DocumentKindEstimate {
		return "EST-"
	}
	return "INV-"
}

// validate input for both create & update. (id = 0 for create)
func (input *NewDocument) validate(ctx context.Context, garageId string, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Document](ctx, garageId, id); err != nil {
			return err
		}
	}
	// exists client
	if err := utils.ValidateResourceId[Client](ctx, garageId, input.ClientId); err != nil {
		return errors.New("client not found")
	}
	// exists vehicle
	if err := utils.ValidateResourceId[Vehicle](ctx, garageId, input.VehicleId); err != nil {
		return errors.New("vehicle not found")
	}
	// exists currency
	if err := utils.ValidateResourceId[Currency](ctx, garageId, input.CurrencyId); err != nil {
		return errors.New("currency not found")
	}
	// the calculator itself is total over any numeric input; range rules live
	// here at the input surface
	if input.DiscountPercent.IsNegative() || input.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("discount percent must be between 0 and 100")
	}
	if input.TaxPercent.IsNegative() {
		return errors.New("tax percent cannot be negative")
	}
	if input.OtherCharges.IsNegative() {
		return errors.New("other charges cannot be negative")
	}
	if input.AmountPaid.IsNegative() {
		return errors.New("amount paid cannot be negative")
	}
	for _, item := range input.Items {
		if item.Quantity.IsNegative() || item.UnitCost.IsNegative() ||
			item.LaborHours.IsNegative() || item.LaborRate.IsNegative() {
			return errors.New("line item amounts cannot be negative")
		}
	}
	if input.CurrentStatus != "" && !input.CurrentStatus.ValidFor(input.Kind) {
		return fmt.Errorf("status %q is not valid for %s", input.CurrentStatus, input.Kind)
	}
	// an empty item list is a legal transient state while drafting an
	// estimate; anything past that needs at least one row
	if len(input.Items) == 0 {
		if !(input.Kind == DocumentKindEstimate &&
			(input.CurrentStatus == "" || input.CurrentStatus == DocumentStatusDraft)) {
			return errors.New("document requires at least one line item")
		}
	}
	return nil
}

// Normalize forces the invoice-only adjustment fields to zero on estimates.
// The stored columns are a cache of the calculator's inputs; without this an
// estimate row could echo charges and payments its derived totals ignore.
func (input *NewDocument) Normalize() {
	if input.Kind == DocumentKindEstimate {
		input.OtherCharges = decimal.Zero
		input.AmountPaid = decimal.Zero
	}
}

func (input *NewDocument) mapItems() []DocumentLineItem {
	items := make([]DocumentLineItem, 0, len(input.Items))
	for _, item := range input.Items {
		kind := item.Kind
		if kind == "" {
			kind = LineItemKindService
		}
		items = append(items, DocumentLineItem{
			Kind:        kind,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			LaborHours:  item.LaborHours,
			LaborRate:   item.LaborRate,
		})
	}
	return items
}

func nextDocumentSequence(ctx context.Context, garageId string, kind DocumentKind) (int64, error) {
	db := config.GetDB()
	var current int64
	err := db.WithContext(ctx).Model(&Document{}).
		Where("garage_id = ? AND kind = ?", garageId, kind).
		Select("COALESCE(MAX(sequence_no), 0)").
		Scan(&current).Error
	if err != nil {
		return 0, err
	}
	return current + 1, nil
}

func CreateDocument(ctx context.Context, input *NewDocument) (*Document, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	if err := input.validate(ctx, garageId, 0); err != nil {
		return nil, err
	}
	input.Normalize()

	status := input.CurrentStatus
	if status == "" {
		status = defaultStatusFor(input.Kind)
	}

	document := Document{
		GarageId:        garageId,
		Kind:            input.Kind,
		ClientId:        input.ClientId,
		VehicleId:       input.VehicleId,
		DocumentDate:    input.DocumentDate,
		CurrencyId:      input.CurrencyId,
		Notes:           input.Notes,
		DiscountPercent: input.DiscountPercent,
		TaxPercent:      input.TaxPercent,
		OtherCharges:    input.OtherCharges,
		AmountPaid:      input.AmountPaid,
		CurrentStatus:   status,
		Items:           input.mapItems(),
	}
	document.applyTotals()

	seqNo, err := nextDocumentSequence(ctx, garageId, input.Kind)
	if err != nil {
		return nil, err
	}
	document.SequenceNo = seqNo
	document.DocumentNumber = fmt.Sprintf("%s%06d", documentPrefix(input.Kind), seqNo)

	if err := db.WithContext(ctx).Create(&document).Error; err != nil {
		return nil, err
	}

	return &document, nil
}

func UpdateDocument(ctx context.Context, id int, input *NewDocument) (*Document, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	if err := input.validate(ctx, garageId, id); err != nil {
		return nil, err
	}
	input.Normalize()

	existing, err := utils.FetchModel[Document](ctx, garageId, id, "Items")
	if err != nil {
		return nil, err
	}
	if existing.Kind != input.Kind {
		return nil, errors.New("document kind cannot be changed")
	}
	switch existing.CurrentStatus {
	case DocumentStatusConvertedToInvoice, DocumentStatusPaid, DocumentStatusCancelled:
		return nil, fmt.Errorf("document %s can no longer be edited", existing.DocumentNumber)
	}

	tx := db.Begin()
	defer func() { _ = tx.Rollback().Error }()

	// replace the item rows; line subtotals are re-derived below
	if err := tx.WithContext(ctx).Where("document_id = ?", existing.ID).Delete(&DocumentLineItem{}).Error; err != nil {
		return nil, err
	}

	existing.ClientId = input.ClientId
	existing.VehicleId = input.VehicleId
	existing.DocumentDate = input.DocumentDate
	existing.CurrencyId = input.CurrencyId
	existing.Notes = input.Notes
	existing.DiscountPercent = input.DiscountPercent
	existing.TaxPercent = input.TaxPercent
	existing.OtherCharges = input.OtherCharges
	existing.AmountPaid = input.AmountPaid
	existing.Items = input.mapItems()
	for i := range existing.Items {
		existing.Items[i].DocumentId = existing.ID
	}
	existing.applyTotals()

	if err := tx.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return existing, nil
}

// UpdateDocumentStatus performs a manual status move (send/approve/reject/
// convert-gate/cancel). Payment-driven moves go through CreatePayment.
func UpdateDocumentStatus(ctx context.Context, id int, status DocumentStatus) (*Document, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	document, err := utils.FetchModel[Document](ctx, garageId, id, "Items")
	if err != nil {
		return nil, err
	}

	if !status.ValidFor(document.Kind) {
		return nil, fmt.Errorf("status %q is not valid for %s", status, document.Kind)
	}
	if !document.CurrentStatus.CanTransitionTo(document.Kind, status) {
		return nil, fmt.Errorf("cannot move %s from %q to %q", document.DocumentNumber, document.CurrentStatus, status)
	}
	// leaving Draft is the submit point; a submitted document needs items
	if document.CurrentStatus == DocumentStatusDraft && len(document.Items) == 0 {
		return nil, errors.New("document requires at least one line item")
	}

	document.CurrentStatus = status
	if err := db.WithContext(ctx).Save(document).Error; err != nil {
		return nil, err
	}
	return document, nil
}

// ConvertEstimateToInvoice clones an approved estimate into a new Unpaid
// invoice and marks the estimate converted, in one transaction.
func ConvertEstimateToInvoice(ctx context.Context, id int) (*Document, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	estimate, err := utils.FetchModel[Document](ctx, garageId, id, "Items")
	if err != nil {
		return nil, err
	}
	if estimate.Kind != DocumentKindEstimate {
		return nil, errors.New("only estimates can be converted")
	}
	if estimate.CurrentStatus != DocumentStatusApproved {
		return nil, fmt.Errorf("estimate %s must be approved before conversion", estimate.DocumentNumber)
	}
	if len(estimate.Items) == 0 {
		return nil, errors.New("document requires at least one line item")
	}

	items := make([]DocumentLineItem, 0, len(estimate.Items))
	for _, item := range estimate.Items {
		items = append(items, DocumentLineItem{
			Kind:        item.Kind,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			LaborHours:  item.LaborHours,
			LaborRate:   item.LaborRate,
		})
	}

	invoice := Document{
		GarageId:        garageId,
		Kind:            DocumentKindInvoice,
		ClientId:        estimate.ClientId,
		VehicleId:       estimate.VehicleId,
		DocumentDate:    time.Now().UTC(),
		CurrencyId:      estimate.CurrencyId,
		Notes:           estimate.Notes,
		DiscountPercent: estimate.DiscountPercent,
		TaxPercent:      estimate.TaxPercent,
		CurrentStatus:   DocumentStatusUnpaid,
		Items:           items,
	}
	invoice.applyTotals()

	seqNo, err := nextDocumentSequence(ctx, garageId, DocumentKindInvoice)
	if err != nil {
		return nil, err
	}
	invoice.SequenceNo = seqNo
	invoice.DocumentNumber = fmt.Sprintf("%s%06d", documentPrefix(DocumentKindInvoice), seqNo)

	tx := db.Begin()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Create(&invoice).Error; err != nil {
		return nil, err
	}

	estimate.CurrentStatus = DocumentStatusConvertedToInvoice
	if err := tx.WithContext(ctx).Save(estimate).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &invoice, nil
}

func DeleteDocument(ctx context.Context, id int) (*Document, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	result, err := utils.FetchModel[Document](ctx, garageId, id, "Items")
	if err != nil {
		return nil, err
	}

	var paymentCount int64
	if err := db.WithContext(ctx).Model(&Payment{}).Where("invoice_id = ?", id).Count(&paymentCount).Error; err != nil {
		return nil, err
	}
	if paymentCount > 0 {
		return nil, fmt.Errorf("document %s has recorded payments and cannot be deleted", result.DocumentNumber)
	}

	tx := db.Begin()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Where("document_id = ?", result.ID).Delete(&DocumentLineItem{}).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(result).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

func GetDocument(ctx context.Context, id int) (*Document, error) {
	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}
	return utils.FetchModel[Document](ctx, garageId, id, "Items")
}

func PaginateDocuments(ctx context.Context, limit *int, after *string,
	kind *DocumentKind,
	status *DocumentStatus,
	clientID *int,
	vehicleID *int,
	documentNumber *string,
) (*DocumentsConnection, error) {

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("garage_id = ?", garageId)
	if kind != nil && *kind != "" {
		dbCtx.Where("kind = ?", *kind)
	}
	if status != nil && *status != "" {
		dbCtx.Where("current_status = ?", *status)
	}
	if clientID != nil && *clientID > 0 {
		dbCtx.Where("client_id = ?", *clientID)
	}
	if vehicleID != nil && *vehicleID > 0 {
		dbCtx.Where("vehicle_id = ?", *vehicleID)
	}
	if documentNumber != nil && *documentNumber != "" {
		dbCtx.Where("document_number LIKE ?", "%"+*documentNumber+"%")
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Document](dbCtx, *limit, after, "created_at", "<")
	if err != nil {
		return nil, err
	}
	var documentsConnection DocumentsConnection
	documentsConnection.PageInfo = pageInfo
	for _, edge := range edges {
		documentEdge := DocumentsEdge(edge)
		documentsConnection.Edges = append(documentsConnection.Edges, &documentEdge)
	}

	return &documentsConnection, err
}
