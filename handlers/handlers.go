package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/torquehub/garage_backend/config"
	"github.com/torquehub/garage_backend/utils"
)

const defaultPageLimit = 10

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
}

func internalError(c *gin.Context, funcName string, err error) {
	config.LogError(config.GetLogger(), "handlers", funcName, c.Request.URL.Path, nil, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

// pathId parses the :id segment; a non-numeric id reports 400 and returns
// ok = false.
func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (*int, *string) {
	limit := defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	var after *string
	if raw := c.Query("after"); raw != "" {
		after = &raw
	}
	return &limit, after
}
