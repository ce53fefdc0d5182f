// controllers/settings.go
package controllers

import (
	"net/http"

	"nailbook-backend/config"
	"nailbook-backend/models"
	"nailbook-backend/services"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetStatusColors returns the status color palette, falling back to the
// default when nothing is stored.
func GetStatusColors(c *gin.Context) {
	value, err := services.GetSetting(config.DB, services.StatusColorsKey, services.DefaultStatusColors)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}
	c.JSON(http.StatusOK, value)
}

// UpdateStatusColors stores a new palette. Owner only.
func UpdateStatusColors(c *gin.Context) {
	var body models.JSONB
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := services.SaveSetting(config.DB, services.StatusColorsKey, body); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
