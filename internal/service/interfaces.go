package service

import (
	"context"
	"time"

	"linktrack/internal/model"
)

// LinkCache defines the cache operations used on the redirect path
// (for testing and for running without Redis)
type LinkCache interface {
	SaveLink(ctx context.Context, link *model.Link, ttl time.Duration) error
	GetLink(ctx context.Context, slug string) (*model.Link, error)
	Invalidate(ctx context.Context, slug string) error
}

// LinkServiceInterface defines the management operations over links
type LinkServiceInterface interface {
	Create(ctx context.Context, req *model.CreateLinkRequest) (*model.LinkResponse, error)
	Get(ctx context.Context, slug string) (*model.LinkResponse, error)
	List(ctx context.Context) ([]model.LinkResponse, error)
	Update(ctx context.Context, slug string, req *model.UpdateLinkRequest) (*model.LinkResponse, error)
	Delete(ctx context.Context, slug string) error
	Available(ctx context.Context, slug string) (bool, error)
	Stats(ctx context.Context, slug string) (*model.LinkStats, error)
}

// ResolverInterface defines the redirect decision procedure
type ResolverInterface interface {
	Resolve(ctx context.Context, slug string) (string, error)
	RecordClick(click *model.ClickEvent)
}

// SettingServiceInterface defines operations over admin settings
type SettingServiceInterface interface {
	Upsert(ctx context.Context, key string, req *model.UpsertSettingRequest) (*model.Setting, error)
	Get(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]model.Setting, error)
}
