package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses.
const (
	StatusBooked    = "BOOKED"
	StatusDone      = "DONE"
	StatusCancelled = "CANCELLED"
)

// AllStatuses is the full status set, used as the default filter.
var AllStatuses = []string{StatusBooked, StatusDone, StatusCancelled}

func IsValidStatus(status string) bool {
	switch status {
	case StatusBooked, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a timed booking for a customer with one technician.
// Overlapping appointments for the same technician are allowed on purpose;
// the calendar views spread them into side-by-side columns instead.
type Appointment struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchID     uuid.UUID `gorm:"type:uuid;index;not null" json:"branchId"`
	TechnicianID uuid.UUID `gorm:"type:uuid;index;not null" json:"technicianId"`

	CustomerName  string  `gorm:"not null" json:"customerName"`
	CustomerPhone *string `json:"customerPhone"`

	StartAt time.Time `gorm:"index;not null" json:"startAt"`
	EndAt   time.Time `gorm:"not null" json:"endAt"`

	Price float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	// Denormalized from the technician's commission config at booking time.
	// Never recomputed server-side; the client recalculates before submit.
	CommissionAmount float64 `gorm:"type:decimal(10,2);not null;default:0" json:"commissionAmount"`

	Notes  string `json:"notes"`
	Status string `gorm:"type:varchar(20);not null;default:'BOOKED'" json:"status"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"createdBy"`

	Technician *Technician `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	Branch     *Branch     `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Creator    *User       `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusBooked
	}
	return
}
