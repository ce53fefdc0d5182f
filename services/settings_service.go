// services/settings_service.go
package services

import (
	"errors"
	"sync"

	"nailbook-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const StatusColorsKey = "statusColors"

// DefaultStatusColors is used whenever no stored palette exists.
var DefaultStatusColors = models.JSONB{
	models.StatusBooked:    "#3b82f6",
	models.StatusDone:      "#22c55e",
	models.StatusCancelled: "#6b7280",
}

// settingsCache keeps settings blobs in process so calendar views don't hit
// the database per request. Writes go through SaveSetting, which invalidates
// the cached entry.
type settingsCache struct {
	mu     sync.RWMutex
	values map[string]models.JSONB
}

var cache = settingsCache{values: make(map[string]models.JSONB)}

// GetSetting returns the stored blob for key, falling back to the given
// default when no row exists.
func GetSetting(db *gorm.DB, key string, fallback models.JSONB) (models.JSONB, error) {
	cache.mu.RLock()
	if v, ok := cache.values[key]; ok {
		cache.mu.RUnlock()
		return v, nil
	}
	cache.mu.RUnlock()

	var setting models.Setting
	err := db.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fallback, nil
	}
	if err != nil {
		return nil, err
	}

	cache.mu.Lock()
	cache.values[key] = setting.Value
	cache.mu.Unlock()

	return setting.Value, nil
}

// SaveSetting upserts the blob and invalidates the cached entry.
func SaveSetting(db *gorm.DB, key string, value models.JSONB) error {
	setting := models.Setting{Key: key, Value: value}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
	if err != nil {
		return err
	}

	cache.mu.Lock()
	delete(cache.values, key)
	cache.mu.Unlock()

	return nil
}
