package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/torquehub/garage_backend/models"
	"github.com/torquehub/garage_backend/utils"
)

func CreateClientHandler(c *gin.Context) {
	var input models.NewClient
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	client, err := models.CreateClient(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, client)
}

func UpdateClientHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewClient
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	client, err := models.UpdateClient(c.Request.Context(), id, &input)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "client not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, client)
}

func DeleteClientHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	client, err := models.DeleteClient(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			notFound(c, "client not found")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, client)
}

func GetClientHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	client, err := models.GetClient(c.Request.Context(), id)
	if err != nil {
		notFound(c, "client not found")
		return
	}

	c.JSON(http.StatusOK, client)
}

func ListClientsHandler(c *gin.Context) {
	limit, after := pageParams(c)
	var name *string
	if raw := c.Query("name"); raw != "" {
		name = &raw
	}

	connection, err := models.PaginateClients(c.Request.Context(), limit, after, name)
	if err != nil {
		internalError(c, "ListClientsHandler", err)
		return
	}

	c.JSON(http.StatusOK, connection)
}
