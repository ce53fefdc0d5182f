// controllers/appointment_query.go
package controllers

import (
	"errors"
	"strings"
	"time"

	"nailbook-backend/models"
	"nailbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Every appointment listing (day calendar, month calendar, dashboard) runs
// through the same filter so the date and role semantics stay in one place.

type queryMode int

const (
	// modeOverlap includes any appointment whose interval intersects the
	// window, including ones that span it entirely.
	modeOverlap queryMode = iota
	// modeStartWithin includes only appointments that start inside the
	// window.
	modeStartWithin
)

// errTechnicianNotLinked is a validation failure: a TECHNICIAN session with
// no technician profile cannot be scoped, so the request is rejected.
var errTechnicianNotLinked = errors.New("technician profile not linked")

// scopeErrorMessage maps scope failures to their API error message.
func scopeErrorMessage(err error) string {
	if errors.Is(err, errTechnicianNotLinked) {
		return "Technician profile not linked"
	}
	return err.Error()
}

type appointmentQuery struct {
	Start        *time.Time
	End          *time.Time
	BranchID     *uuid.UUID
	TechnicianID *uuid.UUID
	Statuses     []string
	Mode         queryMode
}

// parseStatusParam accepts a single status or a comma-separated list,
// case-insensitively, dropping anything outside the known set. An empty or
// fully invalid parameter falls back to all statuses.
func parseStatusParam(param string) []string {
	if param == "" {
		return models.AllStatuses
	}
	var statuses []string
	for _, s := range strings.Split(param, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if models.IsValidStatus(s) {
			statuses = append(statuses, s)
		}
	}
	if len(statuses) == 0 {
		return models.AllStatuses
	}
	return statuses
}

// applySessionScope force-intersects the filter with a technician's own
// scope. Explicit query parameters were applied before this, so the
// session's own ids always win for TECHNICIAN roles.
func (q *appointmentQuery) applySessionScope(session utils.SessionClaims) error {
	if session.Role != models.RoleTechnician {
		return nil
	}
	if session.TechnicianID == "" {
		return errTechnicianNotLinked
	}
	techID, err := uuid.Parse(session.TechnicianID)
	if err != nil {
		return errTechnicianNotLinked
	}
	q.TechnicianID = &techID
	if session.BranchID != "" {
		if branchID, err := uuid.Parse(session.BranchID); err == nil {
			q.BranchID = &branchID
		}
	}
	return nil
}

// setRange stores the window, normalizing the end boundary to end of day so
// a date-only parameter includes the whole closing day.
func (q *appointmentQuery) setRange(start, end time.Time) {
	start = utils.BeginningOfDay(start)
	end = utils.EndOfDay(end)
	q.Start = &start
	q.End = &end
}

// apply translates the filter into gorm conditions.
func (q appointmentQuery) apply(db *gorm.DB) *gorm.DB {
	statuses := q.Statuses
	if len(statuses) == 0 {
		statuses = models.AllStatuses
	}
	db = db.Where("status IN ?", statuses)

	if q.Start != nil && q.End != nil {
		switch q.Mode {
		case modeOverlap:
			db = db.Where("start_at <= ? AND end_at >= ?", *q.End, *q.Start)
		case modeStartWithin:
			db = db.Where("start_at BETWEEN ? AND ?", *q.Start, *q.End)
		}
	} else if q.Start != nil {
		db = db.Where("start_at >= ?", *q.Start)
	} else if q.End != nil {
		db = db.Where("start_at <= ?", *q.End)
	}

	if q.BranchID != nil {
		db = db.Where("branch_id = ?", *q.BranchID)
	}
	if q.TechnicianID != nil {
		db = db.Where("technician_id = ?", *q.TechnicianID)
	}

	return db
}
