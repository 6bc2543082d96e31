package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/torquehub/garage_backend/models"
	"github.com/torquehub/garage_backend/utils"
)

func CreateVehicleHandler(c *gin.Context) {
	var input models.NewVehicle
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	vehicle, err := models.CreateVehicle(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func UpdateVehicleHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewVehicle
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	vehicle, err := models.UpdateVehicle(c.Request.Context(), id, &input)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "vehicle not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func DeleteVehicleHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	vehicle, err := models.DeleteVehicle(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "vehicle not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func GetVehicleHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	vehicle, err := models.GetVehicle(c.Request.Context(), id)
	if err != nil {
		notFound(c, "vehicle not found")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func ListVehiclesHandler(c *gin.Context) {
	limit, after := pageParams(c)

	var clientID *int
	if raw := c.Query("client_id"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			clientID = &parsed
		}
	}
	var registrationNo *string
	if raw := c.Query("registration_no"); raw != "" {
		registrationNo = &raw
	}

	connection, err := models.PaginateVehicles(c.Request.Context(), limit, after, clientID, registrationNo)
	if err != nil {
		internalError(c, "ListVehiclesHandler", err)
		return
	}

	c.JSON(http.StatusOK, connection)
}
