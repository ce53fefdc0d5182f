package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Setting is a singleton-per-key configuration blob, e.g. the status color
// palette under key "statusColors".
type Setting struct {
	Key   string `gorm:"primary_key;type:varchar(64)" json:"key"`
	Value JSONB  `gorm:"type:jsonb;default:'{}'" json:"value"`
}

// Custom JSONB type for settings blobs
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
