package model

import (
	"time"
)

// ClickEvent represents a single recorded redirect
type ClickEvent struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug      string    `json:"slug" gorm:"type:varchar(100);index;not null"`
	ClientIP  string    `json:"client_ip" gorm:"type:varchar(64)"`
	UserAgent string    `json:"user_agent" gorm:"type:varchar(512)"`
	Referer   string    `json:"referer" gorm:"type:varchar(512)"`
	ClickedAt time.Time `json:"clicked_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for ClickEvent
func (ClickEvent) TableName() string {
	return "click_events"
}

// LinkStats represents per-link click statistics
type LinkStats struct {
	Slug         string       `json:"slug"`
	ClickCount   int64        `json:"click_count"`
	RecentClicks []ClickEvent `json:"recent_clicks"`
}
