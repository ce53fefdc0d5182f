// controllers/branch.go
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

// CreateBranchInput defines the expected JSON structure for creating a branch
type CreateBranchInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// UpdateBranchInput defines the expected JSON structure for updating a branch
type UpdateBranchInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// BranchWithCount carries a branch plus its technician headcount for the
// branch picker.
type BranchWithCount struct {
	models.Branch
	TechnicianCount int64 `json:"technicianCount"`
}

// GetBranches lists branches. Technicians only see their own branch; a
// technician with no branch yet sees everything.
func GetBranches(c *gin.Context) {
	session := utils.SessionFromContext(c)

	var technicianBranchID *uuid.UUID
	if session.Role == models.RoleTechnician {
		if session.BranchID != "" {
			if id, err := uuid.Parse(session.BranchID); err == nil {
				technicianBranchID = &id
			}
		} else if session.UserID != "" {
			// Fall back to the linked technician profile's branch
			var tech models.Technician
			if err := config.DB.Select("branch_id").First(&tech, "user_id = ?", session.UserID).Error; err == nil {
				technicianBranchID = &tech.BranchID
			}
		}
	}

	db := config.DB.Model(&models.Branch{})
	if technicianBranchID != nil {
		db = db.Where("id = ?", *technicianBranchID)
	}

	var branches []models.Branch
	if err := db.Find(&branches).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve branches")
		return
	}

	result := make([]BranchWithCount, 0, len(branches))
	for _, branch := range branches {
		var count int64
		config.DB.Model(&models.Technician{}).Where("branch_id = ?", branch.ID).Count(&count)
		result = append(result, BranchWithCount{Branch: branch, TechnicianCount: count})
	}

	c.JSON(http.StatusOK, result)
}

// CreateBranch opens a new salon location.
func CreateBranch(c *gin.Context) {
	session := utils.SessionFromContext(c)

	var input CreateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	branch := models.Branch{
		Name:    input.Name,
		Address: input.Address,
	}

	if err := config.DB.Create(&branch).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create branch")
		return
	}

	if userID, err := uuid.Parse(session.UserID); err == nil {
		services.RecordAudit(userID, models.AuditCreate, "Branch", branch.ID.String(),
			fmt.Sprintf("Created branch %s", branch.Name))
	}

	c.JSON(http.StatusCreated, branch)
}

// UpdateBranch renames or re-addresses a branch.
func UpdateBranch(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	var input UpdateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var branch models.Branch
	if err := config.DB.First(&branch, "id = ?", branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil && *input.Name != "" {
		branch.Name = *input.Name
	}
	if input.Address != nil {
		branch.Address = *input.Address
	}

	if err := config.DB.Save(&branch).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update branch")
		return
	}

	c.JSON(http.StatusOK, branch)
}

// DeleteBranch removes a branch. Linked users are detached first so their
// accounts survive; technician rows are left pointing at the gone branch on
// purpose (no cascade).
func DeleteBranch(c *gin.Context) {
	session := utils.SessionFromContext(c)

	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	// Detach users from the branch to satisfy FK constraints
	if err := config.DB.Model(&models.User{}).
		Where("branch_id = ?", branchID).
		Update("branch_id", nil).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to detach users")
		return
	}

	result := config.DB.Delete(&models.Branch{}, "id = ?", branchID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete branch")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Branch not found")
		return
	}

	if userID, err := uuid.Parse(session.UserID); err == nil {
		services.RecordAudit(userID, models.AuditDelete, "Branch", branchID.String(),
			fmt.Sprintf("Deleted branch %s", branchID))
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
