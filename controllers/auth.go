// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"nailbook-backend/config"
	"nailbook-backend/models"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// normalizeEmail canonicalizes addresses so signups, owner-created accounts
// and login lookups all agree on casing.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sessionClaimsFor(user models.User) utils.SessionClaims {
	claims := utils.SessionClaims{
		UserID: user.ID.String(),
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.Name,
	}
	if user.BranchID != nil {
		claims.BranchID = user.BranchID.String()
	}
	if user.Technician != nil {
		claims.TechnicianID = user.Technician.ID.String()
	}
	return claims
}

// Register self-signs-up a new account. Fresh signups start as TECHNICIAN;
// an owner promotes them later.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := normalizeEmail(input.Email)

	var existing models.User
	result := config.DB.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    email,
		Password: &hashed,
		Role:     models.RoleTechnician,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(sessionClaimsFor(user))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	email := normalizeEmail(input.Email)

	var user models.User
	result := config.DB.Preload("Technician").Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// OAuth-provisioned accounts carry no local password
	if user.Password == nil || !utils.CheckPasswordHash(input.Password, *user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(sessionClaimsFor(user))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"name":     user.Name,
			"role":     user.Role,
			"branchId": user.BranchID,
		},
	})
}

func Me(c *gin.Context) {
	session := utils.SessionFromContext(c)

	var user models.User
	if err := config.DB.Preload("Branch").Preload("Technician").
		First(&user, "id = ?", session.UserID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
