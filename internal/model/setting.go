package model

import (
	"encoding/json"
	"time"
)

// Setting represents an admin-configurable key/value option,
// e.g. the allowed domain list or UTM suggestion lists.
type Setting struct {
	Key         string          `json:"key" gorm:"primaryKey;type:varchar(100)"`
	Value       json.RawMessage `json:"value" gorm:"type:json"`
	Description string          `json:"description,omitempty" gorm:"type:varchar(512)"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for Setting
func (Setting) TableName() string {
	return "settings"
}

// UpsertSettingRequest represents the request to create or replace a setting
type UpsertSettingRequest struct {
	Value       json.RawMessage `json:"value" binding:"required"`
	Description string          `json:"description"`
}
