// controllers/technician.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"nailbook-backend/config"
	"nailbook-backend/models"
	"nailbook-backend/services"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTechnicianInput defines the expected JSON structure for creating a technician
type CreateTechnicianInput struct {
	Name            string    `json:"name" binding:"required"`
	BranchID        uuid.UUID `json:"branchId" binding:"required"`
	CommissionType  string    `json:"commissionType" binding:"omitempty,oneof=PERCENTAGE FIXED"`
	CommissionValue float64   `json:"commissionValue" binding:"min=0"`
	Color           string    `json:"color"`
	Image           *string   `json:"image"`
}

// UpdateTechnicianInput defines the expected JSON structure for updating a technician
type UpdateTechnicianInput struct {
	Name            *string    `json:"name"`
	BranchID        *uuid.UUID `json:"branchId"`
	CommissionType  *string    `json:"commissionType" binding:"omitempty,oneof=PERCENTAGE FIXED"`
	CommissionValue *float64   `json:"commissionValue" binding:"omitempty,min=0"`
	Active          *bool      `json:"active"`
	Color           *string    `json:"color"`
	Image           *string    `json:"image"`
}

// applyTechnicianUpdate copies the permitted subset of fields onto the
// technician. The mutable set depends on who is asking: technicians editing
// their own profile may only touch name and image, admins and owners may
// touch everything. Kept as an explicit allow-list rather than checks
// scattered per field.
func applyTechnicianUpdate(tech *models.Technician, input UpdateTechnicianInput, role string) {
	if input.Name != nil && *input.Name != "" {
		tech.Name = *input.Name
	}
	if input.Image != nil {
		if *input.Image == "" {
			tech.Image = nil
		} else {
			tech.Image = input.Image
		}
	}

	if role == models.RoleTechnician {
		return
	}

	if input.BranchID != nil {
		tech.BranchID = *input.BranchID
	}
	if input.CommissionType != nil && *input.CommissionType != "" {
		tech.CommissionType = *input.CommissionType
	}
	if input.CommissionValue != nil {
		tech.CommissionValue = *input.CommissionValue
	}
	if input.Active != nil {
		tech.Active = *input.Active
	}
	if input.Color != nil && *input.Color != "" {
		tech.Color = *input.Color
	}
}

// GetTechnicians lists technicians, optionally for a single branch.
func GetTechnicians(c *gin.Context) {
	db := config.DB.Preload("Branch").Preload("User")

	if branchParam := c.Query("branchId"); branchParam != "" {
		branchID, err := uuid.Parse(branchParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
			return
		}
		db = db.Where("branch_id = ?", branchID)
	}

	var technicians []models.Technician
	if err := db.Find(&technicians).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve technicians")
		return
	}

	c.JSON(http.StatusOK, technicians)
}

// GetTechnician retrieves a specific technician by ID
func GetTechnician(c *gin.Context) {
	technicianID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid technician ID format")
		return
	}

	var technician models.Technician
	if err := config.DB.Preload("Branch").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "image", "role")
		}).
		First(&technician, "id = ?", technicianID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, technician)
}

// CreateTechnician adds a service provider to a branch.
func CreateTechnician(c *gin.Context) {
	session := utils.SessionFromContext(c)

	var input CreateTechnicianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate the branch exists
	var branch models.Branch
	if err := config.DB.First(&branch, "id = ?", input.BranchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	technician := models.Technician{
		Name:            input.Name,
		BranchID:        input.BranchID,
		CommissionType:  input.CommissionType,
		CommissionValue: input.CommissionValue,
		Active:          true,
		Image:           input.Image,
	}
	if technician.CommissionType == "" {
		technician.CommissionType = models.CommissionPercentage
	}
	if input.Color != "" {
		technician.Color = input.Color
	}

	if err := config.DB.Create(&technician).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create technician")
		return
	}

	if userID, err := uuid.Parse(session.UserID); err == nil {
		services.RecordAudit(userID, models.AuditCreate, "Technician", technician.ID.String(),
			fmt.Sprintf("Created technician %s", technician.Name))
	}

	c.JSON(http.StatusCreated, technician)
}

// UpdateTechnician applies a role-dependent partial update. Technicians may
// edit their own profile only; staff edit anyone.
func UpdateTechnician(c *gin.Context) {
	session := utils.SessionFromContext(c)

	technicianID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid technician ID format")
		return
	}

	if session.Role == models.RoleTechnician && session.TechnicianID != technicianID.String() {
		utils.RespondWithError(c, http.StatusForbidden, "Forbidden")
		return
	}

	var input UpdateTechnicianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var technician models.Technician
	if err := config.DB.First(&technician, "id = ?", technicianID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	applyTechnicianUpdate(&technician, input, session.Role)

	if err := config.DB.Save(&technician).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update technician")
		return
	}

	if userID, err := uuid.Parse(session.UserID); err == nil {
		services.RecordAudit(userID, models.AuditUpdate, "Technician", technician.ID.String(),
			fmt.Sprintf("Updated technician %s", technician.Name))
	}

	c.JSON(http.StatusOK, technician)
}

// DeleteTechnician removes a technician. The user link is cleared first so
// the unique user_id index never dangles. Existing appointments keep their
// technician_id (no cascade).
func DeleteTechnician(c *gin.Context) {
	session := utils.SessionFromContext(c)

	technicianID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid technician ID format")
		return
	}

	// Clear any linked user reference to avoid unique constraint issues
	config.DB.Model(&models.Technician{}).
		Where("id = ?", technicianID).
		Update("user_id", nil)

	result := config.DB.Delete(&models.Technician{}, "id = ?", technicianID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete technician")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
		return
	}

	if userID, err := uuid.Parse(session.UserID); err == nil {
		services.RecordAudit(userID, models.AuditDelete, "Technician", technicianID.String(),
			fmt.Sprintf("Deleted technician %s", technicianID))
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
