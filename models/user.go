package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application roles. Owners manage everything, admins run the front desk,
// technicians only see their own schedule.
const (
	RoleOwner      = "OWNER"
	RoleAdmin      = "ADMIN"
	RoleTechnician = "TECHNICIAN"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleTechnician:
		return true
	}
	return false
}

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	// Nullable: accounts provisioned through OAuth first-login carry no
	// local password.
	Password *string `json:"-"`

	Role     string     `gorm:"type:varchar(20);not null;default:'TECHNICIAN'" json:"role"`
	BranchID *uuid.UUID `gorm:"type:uuid;index" json:"branchId"`
	Image    *string    `json:"image"`

	Branch     *Branch     `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Technician *Technician `gorm:"foreignKey:UserID" json:"technician,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
