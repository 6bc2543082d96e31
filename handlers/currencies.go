package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/torquehub/garage_backend/models"
	"github.com/torquehub/garage_backend/utils"
)

func CreateCurrencyHandler(c *gin.Context) {
	var input models.NewCurrency
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	currency, err := models.CreateCurrency(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, currency)
}

func UpdateCurrencyHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewCurrency
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	currency, err := models.UpdateCurrency(c.Request.Context(), id, &input)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "currency not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, currency)
}

func DeleteCurrencyHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	currency, err := models.DeleteCurrency(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "currency not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, currency)
}

func ListCurrenciesHandler(c *gin.Context) {
	currencies, err := models.GetCurrencies(c.Request.Context())
	if err != nil {
		internalError(c, "ListCurrenciesHandler", err)
		return
	}

	c.JSON(http.StatusOK, currencies)
}
