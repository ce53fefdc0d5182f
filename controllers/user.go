// controllers/user.go
package controllers

import (
	"errors"
	"net/http"

	"nailbook-backend/config"
	"nailbook-backend/models"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUserInput defines the expected JSON structure for creating a user
type CreateUserInput struct {
	Name         string     `json:"name" binding:"required"`
	Email        string     `json:"email" binding:"required,email"`
	Password     string     `json:"password" binding:"required,min=8"`
	Role         string     `json:"role"`
	BranchID     *uuid.UUID `json:"branchId"`
	TechnicianID *uuid.UUID `json:"technicianId"`
}

// UpdateProfileInput is the self-service subset.
type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

// GetUsers lists every account with branch and technician links.
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Preload("Branch").Preload("Technician").
		Order("created_at desc").
		Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser provisions a staff or technician account, optionally linking it
// to an existing technician profile.
func CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleTechnician
	}
	if !models.IsValidRole(role) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid role")
		return
	}

	// The technician link is unique; refuse to steal it from another user.
	if input.TechnicianID != nil {
		var technician models.Technician
		if err := config.DB.Select("user_id").First(&technician, "id = ?", *input.TechnicianID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		if technician.UserID != nil {
			utils.RespondWithError(c, http.StatusConflict, "Technician already linked to a user")
			return
		}
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    normalizeEmail(input.Email),
		Password: &hashed,
		Role:     role,
		BranchID: input.BranchID,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if input.TechnicianID != nil {
		if err := config.DB.Model(&models.Technician{}).
			Where("id = ?", *input.TechnicianID).
			Update("user_id", user.ID).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to link technician")
			return
		}
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser changes role, branch, password or technician link. Owner only.
func UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	// Raw body probe so "technicianId": null (unlink) is distinguishable
	// from an absent key.
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if roleVal, ok := raw["role"].(string); ok && roleVal != "" {
		if !models.IsValidRole(roleVal) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid role")
			return
		}
		user.Role = roleVal
	}

	if _, present := raw["branchId"]; present {
		if branchVal, ok := raw["branchId"].(string); ok && branchVal != "" {
			branchID, err := uuid.Parse(branchVal)
			if err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
				return
			}
			user.BranchID = &branchID
		} else {
			user.BranchID = nil
		}
	}

	if passwordVal, ok := raw["password"].(string); ok && passwordVal != "" {
		if len(passwordVal) < 8 {
			utils.RespondWithError(c, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}
		hashed, err := utils.HashPassword(passwordVal)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.Password = &hashed
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	if _, present := raw["technicianId"]; present {
		// Clear any previous link then set the new one
		if err := config.DB.Model(&models.Technician{}).
			Where("user_id = ?", userID).
			Update("user_id", nil).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to unlink technician")
			return
		}

		if techVal, ok := raw["technicianId"].(string); ok && techVal != "" {
			technicianID, err := uuid.Parse(techVal)
			if err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid technician ID format")
				return
			}

			var technician models.Technician
			if err := config.DB.Select("user_id").First(&technician, "id = ?", technicianID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
				} else {
					utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				}
				return
			}
			if technician.UserID != nil && *technician.UserID != userID {
				utils.RespondWithError(c, http.StatusConflict, "Technician already linked to another user")
				return
			}

			if err := config.DB.Model(&models.Technician{}).
				Where("id = ?", technicianID).
				Update("user_id", userID).Error; err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to link technician")
				return
			}
		}
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account, releasing any technician link first.
func DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := config.DB.Model(&models.Technician{}).
		Where("user_id = ?", userID).
		Update("user_id", nil).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to unlink technician")
		return
	}

	result := config.DB.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateProfile lets any authenticated user change their own name and image.
func UpdateProfile(c *gin.Context) {
	session := utils.SessionFromContext(c)

	userID, err := uuid.Parse(session.UserID)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Image != nil {
		if *input.Image == "" {
			user.Image = nil
		} else {
			user.Image = input.Image
		}
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, user)
}
