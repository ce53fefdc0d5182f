package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Branch struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Address string    `json:"address"`

	Technicians []Technician `gorm:"foreignKey:BranchID" json:"technicians,omitempty"`
	Users       []User       `gorm:"foreignKey:BranchID" json:"users,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
