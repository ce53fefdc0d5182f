package controllers

import (
	"testing"
	"time"

	"nailbook-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestApply_OverlapModePredicate(t *testing.T) {
	db := dryRunDB(t)

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)
	q := appointmentQuery{Mode: modeOverlap, Start: &start, End: &end}

	stmt := q.apply(db).Find(&[]models.Appointment{}).Statement

	// Overlap means the interval intersects the window, so an appointment
	// spanning the whole window still matches.
	assert.Contains(t, stmt.SQL.String(), "start_at <= ? AND end_at >= ?")
	assert.Contains(t, stmt.Vars, end)
	assert.Contains(t, stmt.Vars, start)
}

func TestApply_StartWithinModePredicate(t *testing.T) {
	db := dryRunDB(t)

	start := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 10, 23, 59, 59, 0, time.UTC)
	q := appointmentQuery{Mode: modeStartWithin, Start: &start, End: &end}

	stmt := q.apply(db).Find(&[]models.Appointment{}).Statement

	assert.Contains(t, stmt.SQL.String(), "start_at BETWEEN ? AND ?")
}

func TestApply_DefaultsToAllStatuses(t *testing.T) {
	db := dryRunDB(t)

	stmt := appointmentQuery{}.apply(db).Find(&[]models.Appointment{}).Statement

	assert.Contains(t, stmt.SQL.String(), "status IN")
	assert.Contains(t, stmt.Vars, models.StatusBooked)
	assert.Contains(t, stmt.Vars, models.StatusDone)
	assert.Contains(t, stmt.Vars, models.StatusCancelled)
}

func TestApply_ScopesByBranchAndTechnician(t *testing.T) {
	db := dryRunDB(t)

	branchID := uuid.New()
	techID := uuid.New()
	q := appointmentQuery{BranchID: &branchID, TechnicianID: &techID}

	stmt := q.apply(db).Find(&[]models.Appointment{}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "branch_id = ?")
	assert.Contains(t, sql, "technician_id = ?")
	assert.Contains(t, stmt.Vars, branchID)
	assert.Contains(t, stmt.Vars, techID)
}
