package store

import (
	"context"
	"errors"

	"linktrack/internal/model"
)

var (
	// ErrNotFound is returned when no record matches the slug
	ErrNotFound = errors.New("link not found")
	// ErrDisabled marks a lookup that surfaced a soft-deleted record.
	// Both bundled stores pre-filter on Get and never return it; the
	// resolver still maps it for store implementations that don't.
	ErrDisabled = errors.New("link disabled")
	// ErrDuplicateSlug is returned when an insert collides with an
	// existing slug. Uniqueness is enforced over all rows, active and
	// soft-deleted alike, so a soft-deleted slug is not reusable.
	ErrDuplicateSlug = errors.New("slug already taken")
	// ErrSettingNotFound is returned when no setting matches the key
	ErrSettingNotFound = errors.New("setting not found")
)

// LinkStore defines the durable slug -> link mapping.
//
// Get applies the is_active filter and is the lookup used on the
// redirect path; GetAny does not filter and backs management views.
type LinkStore interface {
	Get(ctx context.Context, slug string) (*model.Link, error)
	GetAny(ctx context.Context, slug string) (*model.Link, error)
	Create(ctx context.Context, link *model.Link) error
	Update(ctx context.Context, slug string, req *model.UpdateLinkRequest) (*model.Link, error)
	SoftDelete(ctx context.Context, slug string) (bool, error)
	Exists(ctx context.Context, slug string) (bool, error)
	ListActive(ctx context.Context) ([]model.Link, error)
	IncrementClicks(ctx context.Context, slug string) error
	SaveClick(ctx context.Context, click *model.ClickEvent) error
	RecentClicks(ctx context.Context, slug string, limit int) ([]model.ClickEvent, error)
}

// SettingStore defines the key -> JSON value mapping for admin settings
type SettingStore interface {
	UpsertSetting(ctx context.Context, setting *model.Setting) error
	GetSetting(ctx context.Context, key string) (*model.Setting, error)
	ListSettings(ctx context.Context) ([]model.Setting, error)
}
