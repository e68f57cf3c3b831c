package service

import (
	"errors"
)

var (
	// ErrInvalidSlug is returned when a slug fails format validation
	ErrInvalidSlug = errors.New("invalid slug format")
	// ErrInvalidURL is returned when a destination is not an absolute http(s) URL
	ErrInvalidURL = errors.New("invalid destination URL")
	// ErrSlugTaken is returned when a requested slug is already in use
	ErrSlugTaken = errors.New("slug already taken")
	// ErrLinkNotFound is returned when no link matches the slug
	ErrLinkNotFound = errors.New("link not found")
	// ErrLinkExpired is returned when the link exists but has expired
	ErrLinkExpired = errors.New("link has expired")
	// ErrLinkDisabled is returned when the link exists but was soft-deleted
	ErrLinkDisabled = errors.New("link is disabled")
	// ErrSettingNotFound is returned when no setting matches the key
	ErrSettingNotFound = errors.New("setting not found")
)
