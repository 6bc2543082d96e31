package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/torquehub/garage_backend/models"
	"github.com/torquehub/garage_backend/utils"
)

func CreatePaymentHandler(c *gin.Context) {
	var input models.NewPayment
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	// rule failures come back per-field so the form can highlight them
	fieldErrors := models.ValidatePaymentChannelRules(&input)
	for field, message := range models.ValidatePaymentAdjustments(&input) {
		fieldErrors[field] = message
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	payment, err := models.CreatePayment(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "invoice not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func DeletePaymentHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	payment, err := models.DeletePayment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "payment not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payment)
}

func GetPaymentHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	payment, err := models.GetPayment(c.Request.Context(), id)
	if err != nil {
		notFound(c, "payment not found")
		return
	}

	c.JSON(http.StatusOK, payment)
}

func ListPaymentsHandler(c *gin.Context) {
	limit, after := pageParams(c)

	var invoiceID *int
	if raw := c.Query("invoice_id"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			invoiceID = &parsed
		}
	}
	var clientID *int
	if raw := c.Query("client_id"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			clientID = &parsed
		}
	}
	var method *models.PaymentMethod
	if raw := c.Query("payment_method"); raw != "" {
		value := models.PaymentMethod(raw)
		method = &value
	}

	connection, err := models.PaginatePayments(c.Request.Context(), limit, after,
		invoiceID, clientID, method)
	if err != nil {
		internalError(c, "ListPaymentsHandler", err)
		return
	}

	c.JSON(http.StatusOK, connection)
}

// PaymentTargetHandler loads the invoice summary the payment form starts
// from. A missing or non-invoice id answers 200 with a zero-filled target so
// the form falls back to zeros rather than breaking.
func PaymentTargetHandler(c *gin.Context) {
	invoiceId, err := strconv.Atoi(c.Param("invoiceId"))
	if err != nil || invoiceId <= 0 {
		c.JSON(http.StatusOK, &models.PaymentTarget{})
		return
	}

	target, err := models.LookupPaymentTarget(c.Request.Context(), invoiceId)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			c.JSON(http.StatusOK, &models.PaymentTarget{})
			return
		}
		internalError(c, "PaymentTargetHandler", err)
		return
	}

	c.JSON(http.StatusOK, target)
}

// previewBalanceInput carries its numerics as raw strings for the same reason
// the totals preview does: a live form never fails on a half-typed number.
type previewBalanceInput struct {
	Total           string `json:"total"`
	AmountPaid      string `json:"amount_paid"`
	DiscountApplied string `json:"discount_applied"`
}

func PreviewPaymentBalanceHandler(c *gin.Context) {
	var input previewBalanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	balance := models.ComputePaymentBalance(
		utils.ParseAmount(input.Total),
		utils.ParseAmount(input.AmountPaid),
		utils.ParseAmount(input.DiscountApplied),
	)

	response := gin.H{"balance": balance}
	if balance.Cmp(decimal.Zero) < 0 {
		response["credit"] = true
	}

	c.JSON(http.StatusOK, response)
}
