package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nailbook-backend/models"
	"nailbook-backend/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	assert.Nil(t, normalizePhone(nil))

	// explicitly supplied empty value clears the stored number
	assert.Nil(t, normalizePhone(strPtr("")))

	got := normalizePhone(strPtr("0812345678"))
	assert.NotNil(t, got)
	assert.Equal(t, "0812345678", *got)
}

func layoutResponse(t *testing.T, target string, appointments []models.Appointment) (int, map[string]json.RawMessage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)

	respondWithLayout(c, appointments)

	var body map[string]json.RawMessage
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w.Code, body
}

func TestRespondWithLayout(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	techA := uuid.New()
	techB := uuid.New()

	first := models.Appointment{
		ID: uuid.New(), TechnicianID: techA,
		StartAt: day.Add(10 * time.Hour), EndAt: day.Add(11 * time.Hour),
	}
	second := models.Appointment{
		ID: uuid.New(), TechnicianID: techB,
		StartAt: day.Add(10*time.Hour + 30*time.Minute), EndAt: day.Add(11*time.Hour + 30*time.Minute),
	}
	appointments := []models.Appointment{first, second}

	t.Run("no layout param returns plain list", func(t *testing.T) {
		code, body := layoutResponse(t, "/api/appointments?date=2026-03-09", appointments)
		assert.Equal(t, http.StatusOK, code)
		assert.Nil(t, body)
	})

	t.Run("merged mode splits concurrent technicians", func(t *testing.T) {
		code, body := layoutResponse(t, "/api/appointments?date=2026-03-09&layout=merged", appointments)
		require.Equal(t, http.StatusOK, code)
		require.Contains(t, body, "appointments")
		require.Contains(t, body, "layout")

		var layout map[string]scheduling.Placement
		require.NoError(t, json.Unmarshal(body["layout"], &layout))
		require.Len(t, layout, 2)
		assert.NotEqual(t, layout[first.ID.String()].Column, layout[second.ID.String()].Column)
		assert.Equal(t, 2, layout[first.ID.String()].TotalColumns)
		assert.Equal(t, 2, layout[second.ID.String()].TotalColumns)
	})

	t.Run("technician mode keeps separate lanes full width", func(t *testing.T) {
		_, body := layoutResponse(t, "/api/appointments?date=2026-03-09&layout=technician", appointments)

		var layout map[string]scheduling.Placement
		require.NoError(t, json.Unmarshal(body["layout"], &layout))
		assert.Equal(t, scheduling.Placement{Column: 0, TotalColumns: 1}, layout[first.ID.String()])
		assert.Equal(t, scheduling.Placement{Column: 0, TotalColumns: 1}, layout[second.ID.String()])
	})
}
