package mq

import (
	"time"
)

// ClickMessage represents a click event published for async persistence
type ClickMessage struct {
	Slug      string    `json:"slug"`
	ClientIP  string    `json:"client_ip"`
	UserAgent string    `json:"user_agent"`
	Referer   string    `json:"referer"`
	ClickedAt time.Time `json:"clicked_at"`
}
