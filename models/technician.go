package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Commission configuration types for a technician.
const (
	CommissionPercentage = "PERCENTAGE"
	CommissionFixed      = "FIXED"
)

type Technician struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	BranchID uuid.UUID `gorm:"type:uuid;index;not null" json:"branchId"`

	CommissionType  string  `gorm:"type:varchar(20);not null;default:'PERCENTAGE'" json:"commissionType"`
	CommissionValue float64 `gorm:"type:decimal(10,2);not null;default:0" json:"commissionValue"`

	Active bool    `gorm:"default:true" json:"active"`
	Color  string  `gorm:"type:varchar(20);default:'#f472b6'" json:"color"`
	Image  *string `json:"image"`

	// Optional one-to-one link to a login account. Must stay unique so a
	// user can never back two technician profiles at once.
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"userId"`

	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (t *Technician) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
