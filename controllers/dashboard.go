// controllers/dashboard.go
package controllers

import (
	"net/http"
	"sort"

	"nailbook-backend/config"
	"nailbook-backend/models"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TechnicianSummary aggregates one technician's bookings over the requested
// window for the revenue report.
type TechnicianSummary struct {
	TechnicianID    uuid.UUID `json:"technicianId"`
	TechnicianName  string    `json:"technicianName"`
	Count           int       `json:"count"`
	TotalRevenue    float64   `json:"totalRevenue"`
	TotalCommission float64   `json:"totalCommission"`
	NetRevenue      float64   `json:"netRevenue"`
}

// GetDashboardSummary returns revenue/commission totals grouped by
// technician, filtered by the shared appointment query semantics.
func GetDashboardSummary(c *gin.Context) {
	session := utils.SessionFromContext(c)

	query := appointmentQuery{
		Mode:     modeStartWithin,
		Statuses: parseStatusParam(c.Query("status")),
	}

	if startParam := c.Query("startDate"); startParam != "" {
		start, err := utils.ParseDateParam(startParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid startDate format")
			return
		}
		query.Start = &start
	}
	if endParam := c.Query("endDate"); endParam != "" {
		end, err := utils.ParseDateParam(endParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid endDate format")
			return
		}
		end = utils.EndOfDay(end)
		query.End = &end
	}

	if err := query.applySessionScope(session); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, scopeErrorMessage(err))
		return
	}

	// An explicit branchId replaces the session branch. The technician
	// narrowing above is unconditional, so a technician still only ever
	// sees their own rows.
	if branchParam := c.Query("branchId"); branchParam != "" {
		branchID, err := uuid.Parse(branchParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
			return
		}
		query.BranchID = &branchID
	}
	if techParam := c.Query("technicianId"); techParam != "" && session.Role != models.RoleTechnician {
		techID, err := uuid.Parse(techParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid technician ID format")
			return
		}
		query.TechnicianID = &techID
	}

	var appointments []models.Appointment
	if err := query.apply(config.DB).
		Preload("Technician").
		Preload("Branch").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	byTechnician := make(map[uuid.UUID]*TechnicianSummary)
	for _, apt := range appointments {
		summary, ok := byTechnician[apt.TechnicianID]
		if !ok {
			name := ""
			if apt.Technician != nil {
				name = apt.Technician.Name
			}
			summary = &TechnicianSummary{
				TechnicianID:   apt.TechnicianID,
				TechnicianName: name,
			}
			byTechnician[apt.TechnicianID] = summary
		}
		summary.Count++
		summary.TotalRevenue += apt.Price
		summary.TotalCommission += apt.CommissionAmount
		summary.NetRevenue += apt.Price - apt.CommissionAmount
	}

	summaries := make([]TechnicianSummary, 0, len(byTechnician))
	for _, s := range byTechnician {
		summaries = append(summaries, *s)
	}
	// Technician names are Thai; order them the way the UI's locale would.
	// Collators buffer internally, so build one per request.
	collator := collate.New(language.Thai)
	sort.Slice(summaries, func(i, j int) bool {
		return collator.CompareString(summaries[i].TechnicianName, summaries[j].TechnicianName) < 0
	})

	c.JSON(http.StatusOK, summaries)
}

// GetDashboardDetails lists the raw appointment rows behind the summary,
// ordered by start time.
func GetDashboardDetails(c *gin.Context) {
	session := utils.SessionFromContext(c)

	query := appointmentQuery{
		Mode:     modeStartWithin,
		Statuses: parseStatusParam(c.Query("status")),
	}

	if startParam := c.Query("startDate"); startParam != "" {
		start, err := utils.ParseDateParam(startParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid startDate format")
			return
		}
		query.Start = &start
	}
	if endParam := c.Query("endDate"); endParam != "" {
		end, err := utils.ParseDateParam(endParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid endDate format")
			return
		}
		end = utils.EndOfDay(end)
		query.End = &end
	}

	if err := query.applySessionScope(session); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, scopeErrorMessage(err))
		return
	}

	// An explicit branchId replaces the session branch. The technician
	// narrowing above is unconditional, so a technician still only ever
	// sees their own rows.
	if branchParam := c.Query("branchId"); branchParam != "" {
		branchID, err := uuid.Parse(branchParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid branch ID format")
			return
		}
		query.BranchID = &branchID
	}

	var appointments []models.Appointment
	if err := query.apply(config.DB).
		Preload("Technician").
		Preload("Branch").
		Order("start_at asc").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}
