// controllers/appointment.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"nailbook-backend/config"
	"nailbook-backend/models"
	"nailbook-backend/scheduling"
	"nailbook-backend/services"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInput defines the expected JSON structure for creating an appointment
type CreateAppointmentInput struct {
	BranchID         uuid.UUID `json:"branchId" binding:"required"`
	TechnicianID     uuid.UUID `json:"technicianId" binding:"required"`
	CustomerName     string    `json:"customerName" binding:"required"`
	CustomerPhone    *string   `json:"customerPhone"`
	StartAt          time.Time `json:"startAt" binding:"required"`
	EndAt            time.Time `json:"endAt" binding:"required"`
	Price            float64   `json:"price" binding:"min=0"`
	CommissionAmount *float64  `json:"commissionAmount" binding:"omitempty,min=0"`
	Notes            string    `json:"notes"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an
// appointment. Nil means unchanged; an explicitly empty customerPhone clears
// the stored number.
type UpdateAppointmentInput struct {
	BranchID         *uuid.UUID `json:"branchId"`
	TechnicianID     *uuid.UUID `json:"technicianId"`
	CustomerName     *string    `json:"customerName"`
	CustomerPhone    *string    `json:"customerPhone"`
	StartAt          *time.Time `json:"startAt"`
	EndAt            *time.Time `json:"endAt"`
	Price            *float64   `json:"price" binding:"omitempty,min=0"`
	CommissionAmount *float64   `json:"commissionAmount" binding:"omitempty,min=0"`
	Notes            *string    `json:"notes"`
	Status           *string    `json:"status" binding:"omitempty,oneof=BOOKED DONE CANCELLED"`
}

// GetAppointments lists a single day for one branch (day calendar view).
// Matches appointments that start within the requested day.
func GetAppointments(c *gin.Context) {
	session := utils.SessionFromContext(c)

	dateParam := c.Query("date")
	branchParam := c.Query("branchId")
	if dateParam == "" || branchParam == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing parameters")
		return
	}

	branchID, err := uuid.Parse(branchParam)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	date, err := utils.ParseDateParam(dateParam)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
		return
	}

	// Technicians may only look at their own branch's day.
	if session.Role == models.RoleTechnician && session.BranchID != "" && session.BranchID != branchParam {
		utils.RespondWithError(c, http.StatusForbidden, "Forbidden")
		return
	}

	query := appointmentQuery{Mode: modeStartWithin}
	query.setRange(date, date)
	if err := query.applySessionScope(session); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, scopeErrorMessage(err))
		return
	}
	query.BranchID = &branchID

	var appointments []models.Appointment
	if err := query.apply(config.DB).
		Preload("Technician").
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Order("start_at asc").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	respondWithLayout(c, appointments)
}

// GetAppointmentsRange lists a date window for one branch (week and month
// calendar views). Matches any appointment overlapping the window, so
// bookings spanning a boundary still show up.
func GetAppointmentsRange(c *gin.Context) {
	session := utils.SessionFromContext(c)

	startParam := c.Query("startDate")
	endParam := c.Query("endDate")
	branchParam := c.Query("branchId")
	if startParam == "" || endParam == "" || branchParam == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing parameters")
		return
	}

	branchID, err := uuid.Parse(branchParam)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
		return
	}

	start, err := utils.ParseDateParam(startParam)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid startDate format")
		return
	}
	end, err := utils.ParseDateParam(endParam)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid endDate format")
		return
	}

	if session.Role == models.RoleTechnician && session.BranchID != "" && session.BranchID != branchParam {
		utils.RespondWithError(c, http.StatusForbidden, "Forbidden")
		return
	}

	query := appointmentQuery{Mode: modeOverlap}
	query.setRange(start, end)
	if err := query.applySessionScope(session); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, scopeErrorMessage(err))
		return
	}
	query.BranchID = &branchID

	var appointments []models.Appointment
	if err := query.apply(config.DB).
		Preload("Technician").
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Order("start_at asc").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	respondWithLayout(c, appointments)
}

// respondWithLayout writes the listing, optionally annotated with display
// columns when a layout mode is requested. "technician" lays out each
// technician's lane per day; "merged" shares one lane per day across all
// technicians.
func respondWithLayout(c *gin.Context, appointments []models.Appointment) {
	mode := c.Query("layout")
	if mode == "" {
		c.JSON(http.StatusOK, appointments)
		return
	}

	events := make([]scheduling.Event, 0, len(appointments))
	for _, a := range appointments {
		key := a.StartAt.Format("2006-01-02")
		if mode == "technician" {
			key = a.TechnicianID.String() + "/" + key
		}
		events = append(events, scheduling.Event{
			ID:           a.ID.String(),
			PartitionKey: key,
			Start:        a.StartAt,
			End:          a.EndAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": appointments,
		"layout":       scheduling.AssignColumns(events),
	})
}

// resolveCreator returns the user id to record as creator. A stale session
// whose user row is gone falls back to a well-known system account,
// provisioned on first use rather than failing the booking.
func resolveCreator(session utils.SessionClaims) (uuid.UUID, error) {
	if userID, err := uuid.Parse(session.UserID); err == nil {
		var user models.User
		if err := config.DB.First(&user, "id = ?", userID).Error; err == nil {
			return user.ID, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, err
		}
	}

	email := session.Email
	if email == "" {
		email = "system@system.local"
	}
	name := session.Name
	if name == "" {
		name = "System User"
	}
	role := session.Role
	if !models.IsValidRole(role) {
		role = models.RoleAdmin
	}

	var system models.User
	err := config.DB.Where("email = ?", email).First(&system).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		system = models.User{Name: name, Email: email, Role: role}
		if session.BranchID != "" {
			if branchID, err := uuid.Parse(session.BranchID); err == nil {
				system.BranchID = &branchID
			}
		}
		if err := config.DB.Create(&system).Error; err != nil {
			return uuid.Nil, err
		}
	} else if err != nil {
		return uuid.Nil, err
	}

	return system.ID, nil
}

// CreateAppointment books a customer with a technician. Overlap checking is
// deliberately absent: double-booking a technician is allowed and the
// calendar renders concurrent appointments side by side.
func CreateAppointment(c *gin.Context) {
	session := utils.SessionFromContext(c)

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate the technician exists
	var technician models.Technician
	if err := config.DB.First(&technician, "id = ?", input.TechnicianID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	creatorID, err := resolveCreator(session)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve creator")
		return
	}

	// Clients normally submit the commission they previewed. When it is
	// omitted, fall back to the technician's current commission config.
	commission := scheduling.Round2(scheduling.ComputeCommission(
		input.Price, technician.CommissionType, technician.CommissionValue))
	if input.CommissionAmount != nil {
		commission = *input.CommissionAmount
	}

	appointment := models.Appointment{
		BranchID:         input.BranchID,
		TechnicianID:     input.TechnicianID,
		CustomerName:     input.CustomerName,
		CustomerPhone:    normalizePhone(input.CustomerPhone),
		StartAt:          input.StartAt,
		EndAt:            input.EndAt,
		Price:            input.Price,
		CommissionAmount: commission,
		Notes:            input.Notes,
		Status:           models.StatusBooked,
		CreatedBy:        creatorID,
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	services.RecordAudit(creatorID, models.AuditCreate, "Appointment", appointment.ID.String(),
		fmt.Sprintf("Created appointment for %s", input.CustomerName))

	config.DB.Preload("Technician").First(&appointment, "id = ?", appointment.ID)

	c.JSON(http.StatusCreated, appointment)
}

// UpdateAppointment applies a partial update; any status transition between
// BOOKED, DONE and CANCELLED is allowed.
func UpdateAppointment(c *gin.Context) {
	session := utils.SessionFromContext(c)

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.BranchID != nil {
		appointment.BranchID = *input.BranchID
	}
	if input.TechnicianID != nil {
		appointment.TechnicianID = *input.TechnicianID
	}
	if input.CustomerName != nil {
		appointment.CustomerName = *input.CustomerName
	}
	if input.CustomerPhone != nil {
		// an explicitly empty phone clears the stored value
		appointment.CustomerPhone = normalizePhone(input.CustomerPhone)
	}
	if input.StartAt != nil {
		appointment.StartAt = *input.StartAt
	}
	if input.EndAt != nil {
		appointment.EndAt = *input.EndAt
	}
	if input.Price != nil {
		appointment.Price = *input.Price
	}
	if input.CommissionAmount != nil {
		appointment.CommissionAmount = *input.CommissionAmount
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}
	if input.Status != nil {
		appointment.Status = *input.Status
	}

	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	if userID, err := uuid.Parse(session.UserID); err == nil {
		services.RecordAudit(userID, models.AuditUpdate, "Appointment", appointment.ID.String(),
			fmt.Sprintf("Updated appointment %s", appointment.ID))
	}

	config.DB.Preload("Technician").First(&appointment, "id = ?", appointment.ID)

	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment removes the booking outright.
func DeleteAppointment(c *gin.Context) {
	session := utils.SessionFromContext(c)

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	result := config.DB.Delete(&models.Appointment{}, "id = ?", appointmentID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	if userID, err := uuid.Parse(session.UserID); err == nil {
		services.RecordAudit(userID, models.AuditDelete, "Appointment", appointmentID.String(),
			fmt.Sprintf("Deleted appointment %s", appointmentID))
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// normalizePhone maps empty strings to NULL so cleared numbers don't linger
// as empty text.
func normalizePhone(phone *string) *string {
	if phone == nil || *phone == "" {
		return nil
	}
	return phone
}
