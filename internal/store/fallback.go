package store

import (
	"context"
	"errors"
	"sync/atomic"

	"linktrack/internal/model"

	"github.com/rs/zerolog/log"
)

// Mode names the backend a Fallback store is currently serving from
type Mode string

const (
	// ModePrimary means requests are served by the primary store
	ModePrimary Mode = "primary"
	// ModeFallback means the primary failed and requests are served
	// by the in-memory standby
	ModeFallback Mode = "fallback"
)

// Fallback decorates a primary LinkStore with an in-memory standby.
// The first transport-level failure from the primary switches the
// store into fallback mode for the rest of the process lifetime;
// Mode exposes the current backend so operators and tests can observe
// the switch instead of inferring it from logs.
//
// Domain errors (not found, duplicate slug, disabled) never trigger
// the switch.
type Fallback struct {
	primary  LinkStore
	standby  *Memory
	degraded atomic.Bool
}

// NewFallback wraps primary with an empty in-memory standby
func NewFallback(primary LinkStore) *Fallback {
	return &Fallback{
		primary: primary,
		standby: NewMemory(),
	}
}

// Mode returns the backend currently serving requests
func (f *Fallback) Mode() Mode {
	if f.degraded.Load() {
		return ModeFallback
	}
	return ModePrimary
}

// active returns the store to serve the next call from
func (f *Fallback) active() LinkStore {
	if f.degraded.Load() {
		return f.standby
	}
	return f.primary
}

// isTransport reports whether err is a transport failure rather than
// a domain outcome
func isTransport(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrNotFound) &&
		!errors.Is(err, ErrDisabled) &&
		!errors.Is(err, ErrDuplicateSlug)
}

// degrade flips the store into fallback mode
func (f *Fallback) degrade(err error) {
	if f.degraded.CompareAndSwap(false, true) {
		log.Error().Err(err).Msg("Primary link store unavailable, switching to in-memory fallback")
	}
}

// Get retrieves an active link, falling back on transport failure
func (f *Fallback) Get(ctx context.Context, slug string) (*model.Link, error) {
	link, err := f.active().Get(ctx, slug)
	if isTransport(err) && !f.degraded.Load() {
		f.degrade(err)
		return f.standby.Get(ctx, slug)
	}
	return link, err
}

// GetAny retrieves a link regardless of its active flag
func (f *Fallback) GetAny(ctx context.Context, slug string) (*model.Link, error) {
	link, err := f.active().GetAny(ctx, slug)
	if isTransport(err) && !f.degraded.Load() {
		f.degrade(err)
		return f.standby.GetAny(ctx, slug)
	}
	return link, err
}

// Create inserts a new link
func (f *Fallback) Create(ctx context.Context, link *model.Link) error {
	err := f.active().Create(ctx, link)
	if isTransport(err) && !f.degraded.Load() {
		f.degrade(err)
		return f.standby.Create(ctx, link)
	}
	return err
}

// Update applies a partial update
func (f *Fallback) Update(ctx context.Context, slug string, req *model.UpdateLinkRequest) (*model.Link, error) {
	link, err := f.active().Update(ctx, slug, req)
	if isTransport(err) && !f.degraded.Load() {
		f.degrade(err)
		return f.standby.Update(ctx, slug, req)
	}
	return link, err
}

// SoftDelete flips is_active to false
func (f *Fallback) SoftDelete(ctx context.Context, slug string) (bool, error) {
	ok, err := f.active().SoftDelete(ctx, slug)
	if isTransport(err) && !f.degraded.Load() {
		f.degrade(err)
		return f.standby.SoftDelete(ctx, slug)
	}
	return ok, err
}

// Exists checks whether the slug is taken
func (f *Fallback) Exists(ctx context.Context, slug string) (bool, error) {
	ok, err := f.active().Exists(ctx, slug)
	if isTransport(err) && !f.degraded.Load() {
		f.degrade(err)
		return f.standby.Exists(ctx, slug)
	}
	return ok, err
}

// ListActive returns active links, newest first
func (f *Fallback) ListActive(ctx context.Context) ([]model.Link, error) {
	links, err := f.active().ListActive(ctx)
	if isTransport(err) && !f.degraded.Load() {
		f.degrade(err)
		return f.standby.ListActive(ctx)
	}
	return links, err
}

// IncrementClicks bumps the click counter
func (f *Fallback) IncrementClicks(ctx context.Context, slug string) error {
	err := f.active().IncrementClicks(ctx, slug)
	if isTransport(err) && !f.degraded.Load() {
		f.degrade(err)
		return f.standby.IncrementClicks(ctx, slug)
	}
	return err
}

// SaveClick persists a click event
func (f *Fallback) SaveClick(ctx context.Context, click *model.ClickEvent) error {
	err := f.active().SaveClick(ctx, click)
	if isTransport(err) && !f.degraded.Load() {
		f.degrade(err)
		return f.standby.SaveClick(ctx, click)
	}
	return err
}

// RecentClicks retrieves the most recent click events for a slug
func (f *Fallback) RecentClicks(ctx context.Context, slug string, limit int) ([]model.ClickEvent, error) {
	clicks, err := f.active().RecentClicks(ctx, slug, limit)
	if isTransport(err) && !f.degraded.Load() {
		f.degrade(err)
		return f.standby.RecentClicks(ctx, slug, limit)
	}
	return clicks, err
}
