package store

import (
	"context"
	"errors"
	"testing"

	"linktrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")

// brokenStore simulates a primary whose transport is down
type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, slug string) (*model.Link, error) {
	return nil, errConnRefused
}
func (brokenStore) GetAny(ctx context.Context, slug string) (*model.Link, error) {
	return nil, errConnRefused
}
func (brokenStore) Create(ctx context.Context, link *model.Link) error { return errConnRefused }
func (brokenStore) Update(ctx context.Context, slug string, req *model.UpdateLinkRequest) (*model.Link, error) {
	return nil, errConnRefused
}
func (brokenStore) SoftDelete(ctx context.Context, slug string) (bool, error) {
	return false, errConnRefused
}
func (brokenStore) Exists(ctx context.Context, slug string) (bool, error) {
	return false, errConnRefused
}
func (brokenStore) ListActive(ctx context.Context) ([]model.Link, error) {
	return nil, errConnRefused
}
func (brokenStore) IncrementClicks(ctx context.Context, slug string) error { return errConnRefused }
func (brokenStore) SaveClick(ctx context.Context, click *model.ClickEvent) error {
	return errConnRefused
}
func (brokenStore) RecentClicks(ctx context.Context, slug string, limit int) ([]model.ClickEvent, error) {
	return nil, errConnRefused
}

func TestFallback_StartsOnPrimary(t *testing.T) {
	primary := NewMemory()
	fb := NewFallback(primary)

	assert.Equal(t, ModePrimary, fb.Mode())
}

func TestFallback_DomainErrorsDoNotDegrade(t *testing.T) {
	primary := NewMemory()
	fb := NewFallback(primary)
	ctx := context.Background()

	_, err := fb.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, ModePrimary, fb.Mode())

	require.NoError(t, fb.Create(ctx, &model.Link{Slug: "demo", URL: "https://example.com", IsActive: true}))
	err = fb.Create(ctx, &model.Link{Slug: "demo", URL: "https://example.com", IsActive: true})
	assert.ErrorIs(t, err, ErrDuplicateSlug)
	assert.Equal(t, ModePrimary, fb.Mode())
}

func TestFallback_TransportErrorDegrades(t *testing.T) {
	fb := NewFallback(brokenStore{})
	ctx := context.Background()

	// First call hits the broken primary, flips the mode and is
	// retried against the standby
	_, err := fb.Get(ctx, "demo")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, ModeFallback, fb.Mode())

	// Subsequent operations are served by the standby
	require.NoError(t, fb.Create(ctx, &model.Link{Slug: "demo", URL: "https://example.com", IsActive: true}))

	got, err := fb.Get(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got.URL)

	links, err := fb.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestFallback_WriteDegrades(t *testing.T) {
	fb := NewFallback(brokenStore{})
	ctx := context.Background()

	// The failed write itself is retried on the standby
	err := fb.Create(ctx, &model.Link{Slug: "demo", URL: "https://example.com", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, ModeFallback, fb.Mode())

	taken, err := fb.Exists(ctx, "demo")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestFallback_StickyForProcessLifetime(t *testing.T) {
	fb := NewFallback(brokenStore{})
	ctx := context.Background()

	_, _ = fb.Get(ctx, "x")
	require.Equal(t, ModeFallback, fb.Mode())

	// Standby domain errors must not flap the mode back
	_, err := fb.Get(ctx, "still-missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, ModeFallback, fb.Mode())
}
