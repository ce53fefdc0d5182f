package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit actions.
const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// AuditLog is an append-only trail of mutations. Writes are best-effort:
// a failed audit write never fails or rolls back the primary operation.
type AuditLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Action   string    `gorm:"type:varchar(20);not null" json:"action"`
	Entity   string    `gorm:"type:varchar(50);not null" json:"entity"`
	EntityID string    `gorm:"type:varchar(64);index" json:"entityId"`
	Details  string    `gorm:"type:text" json:"details"`

	CreatedAt time.Time `json:"createdAt"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
