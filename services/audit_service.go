// services/audit_service.go
package services

import (
	"log"

	"nailbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRecorder writes audit entries off the request path. Entries go
// through a buffered channel to a single background writer; a full buffer
// or a failed insert is logged and dropped, never surfaced to the caller.
type AuditRecorder struct {
	db      *gorm.DB
	entries chan models.AuditLog
}

var auditRecorder *AuditRecorder

func StartAuditRecorder(db *gorm.DB) {
	auditRecorder = &AuditRecorder{
		db:      db,
		entries: make(chan models.AuditLog, 256),
	}
	go auditRecorder.run()
	log.Println("Audit recorder started")
}

func (r *AuditRecorder) run() {
	for entry := range r.entries {
		if err := r.db.Create(&entry).Error; err != nil {
			log.Printf("Failed to create audit log: %v", err)
		}
	}
}

// RecordAudit enqueues a best-effort audit entry.
func RecordAudit(userID uuid.UUID, action, entity, entityID, details string) {
	if auditRecorder == nil {
		return
	}
	entry := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}
	select {
	case auditRecorder.entries <- entry:
	default:
		log.Printf("Audit buffer full, dropping %s %s %s", action, entity, entityID)
	}
}
