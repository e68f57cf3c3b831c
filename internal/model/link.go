package model

import (
	"time"
)

// UTMParams holds the five UTM tracking parameters attached to a link.
// All fields are optional; empty values are never written to the target URL.
type UTMParams struct {
	Source   string `json:"utm_source,omitempty"`
	Medium   string `json:"utm_medium,omitempty"`
	Campaign string `json:"utm_campaign,omitempty"`
	Term     string `json:"utm_term,omitempty"`
	Content  string `json:"utm_content,omitempty"`
}

// IsEmpty reports whether no UTM parameter is set
func (p UTMParams) IsEmpty() bool {
	return p == UTMParams{}
}

// Link represents a short link entity
type Link struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug        string     `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	URL         string     `json:"url" gorm:"type:varchar(2048);not null"`
	Domain      string     `json:"domain,omitempty" gorm:"type:varchar(255)"`
	UTMParams   UTMParams  `json:"utm_params" gorm:"type:json;serializer:json"`
	Tags        []string   `json:"tags" gorm:"type:json;serializer:json"`
	Description string     `json:"description,omitempty" gorm:"type:varchar(1024)"`
	ClickCount  int64      `json:"click_count" gorm:"default:0"`
	IsActive    bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" gorm:"index"`
}

// TableName returns the table name for Link
func (Link) TableName() string {
	return "links"
}

// IsExpired reports whether the link has expired at the given instant
func (l *Link) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// CreateLinkRequest represents the request to create a link
type CreateLinkRequest struct {
	URL         string     `json:"url" binding:"required"`
	Slug        string     `json:"slug"`
	Domain      string     `json:"domain"`
	UTMParams   *UTMParams `json:"utm_params"`
	Tags        []string   `json:"tags"`
	Description string     `json:"description"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// UpdateLinkRequest represents a partial update; nil fields are left unchanged
type UpdateLinkRequest struct {
	URL         *string    `json:"url"`
	Domain      *string    `json:"domain"`
	UTMParams   *UTMParams `json:"utm_params"`
	Tags        *[]string  `json:"tags"`
	Description *string    `json:"description"`
	ExpiresAt   *time.Time `json:"expires_at"`
	IsActive    *bool      `json:"is_active"`
}

// LinkResponse is a link record plus the rendered short URL
type LinkResponse struct {
	Link
	ShortURL string `json:"short_url"`
}
