package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/torquehub/garage_backend/models"
	"github.com/torquehub/garage_backend/utils"
)

func CreateDocumentHandler(c *gin.Context) {
	var input models.NewDocument
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	document, err := models.CreateDocument(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, document)
}

func UpdateDocumentHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewDocument
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	document, err := models.UpdateDocument(c.Request.Context(), id, &input)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "document not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, document)
}

func DeleteDocumentHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	document, err := models.DeleteDocument(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "document not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, document)
}

func GetDocumentHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	document, err := models.GetDocument(c.Request.Context(), id)
	if err != nil {
		notFound(c, "document not found")
		return
	}

	c.JSON(http.StatusOK, document)
}

func ListDocumentsHandler(c *gin.Context) {
	limit, after := pageParams(c)

	var kind *models.DocumentKind
	if raw := c.Query("kind"); raw != "" {
		value := models.DocumentKind(raw)
		kind = &value
	}
	var status *models.DocumentStatus
	if raw := c.Query("status"); raw != "" {
		value := models.DocumentStatus(raw)
		status = &value
	}
	var clientID *int
	if raw := c.Query("client_id"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			clientID = &parsed
		}
	}
	var vehicleID *int
	if raw := c.Query("vehicle_id"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			vehicleID = &parsed
		}
	}
	var documentNumber *string
	if raw := c.Query("document_number"); raw != "" {
		documentNumber = &raw
	}

	connection, err := models.PaginateDocuments(c.Request.Context(), limit, after,
		kind, status, clientID, vehicleID, documentNumber)
	if err != nil {
		internalError(c, "ListDocumentsHandler", err)
		return
	}

	c.JSON(http.StatusOK, connection)
}

type updateStatusInput struct {
	Status models.DocumentStatus `json:"status" binding:"required"`
}

func UpdateDocumentStatusHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input updateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	document, err := models.UpdateDocumentStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "document not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, document)
}

func ConvertEstimateHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	invoice, err := models.ConvertEstimateToInvoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "document not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// previewTotalsInput carries every numeric field as a raw string: the preview
// endpoint backs a live form, and a half-typed or garbled number coerces to
// zero instead of failing the request.
type previewTotalsInput struct {
	Kind            models.DocumentKind `json:"kind" binding:"required"`
	DiscountPercent string              `json:"discount_percent"`
	TaxPercent      string              `json:"tax_percent"`
	OtherCharges    string              `json:"other_charges"`
	AmountPaid      string              `json:"amount_paid"`
	Items           []previewLineItem   `json:"items"`
}

type previewLineItem struct {
	Quantity   string `json:"quantity"`
	UnitCost   string `json:"unit_cost"`
	LaborHours string `json:"labor_hours"`
	LaborRate  string `json:"labor_rate"`
}

func PreviewDocumentTotalsHandler(c *gin.Context) {
	var input previewTotalsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	items := make([]models.DocumentLineItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, models.DocumentLineItem{
			Quantity:   utils.ParseAmount(item.Quantity),
			UnitCost:   utils.ParseAmount(item.UnitCost),
			LaborHours: utils.ParseAmount(item.LaborHours),
			LaborRate:  utils.ParseAmount(item.LaborRate),
		})
	}

	totals := models.CalculateDocumentTotals(
		input.Kind,
		items,
		utils.ParseAmount(input.DiscountPercent),
		utils.ParseAmount(input.TaxPercent),
		utils.ParseAmount(input.OtherCharges),
		utils.ParseAmount(input.AmountPaid),
	)

	c.JSON(http.StatusOK, totals)
}
