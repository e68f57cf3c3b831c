package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"linktrack/internal/model"
)

// Memory is a process-local LinkStore and SettingStore. It backs the
// fallback path when MySQL is unreachable and doubles as the store
// fake in service and handler tests. Lookup semantics match the MySQL
// store: Get pre-filters soft-deleted records, so a disabled slug
// resolves as not found on the redirect path regardless of backend.
type Memory struct {
	mu       sync.RWMutex
	nextID   int64
	links    map[string]*model.Link
	clicks   map[string][]model.ClickEvent
	settings map[string]*model.Setting
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		links:    make(map[string]*model.Link),
		clicks:   make(map[string][]model.ClickEvent),
		settings: make(map[string]*model.Setting),
	}
}

// Get retrieves an active link by slug; soft-deleted links are not found
func (m *Memory) Get(ctx context.Context, slug string) (*model.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[slug]
	if !ok || !link.IsActive {
		return nil, ErrNotFound
	}

	// Return a copy so callers cannot bypass the store
	cp := *link
	return &cp, nil
}

// GetAny retrieves a link by slug regardless of its active flag
func (m *Memory) GetAny(ctx context.Context, slug string) (*model.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[slug]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *link
	return &cp, nil
}

// Create inserts a new link, rejecting duplicate slugs
func (m *Memory) Create(ctx context.Context, link *model.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.links[link.Slug]; exists {
		return ErrDuplicateSlug
	}

	m.nextID++
	now := time.Now().UTC()
	cp := *link
	cp.ID = m.nextID
	cp.CreatedAt = now
	cp.UpdatedAt = now

	m.links[cp.Slug] = &cp
	*link = cp
	return nil
}

// Update applies the non-nil fields of req and returns the updated link
func (m *Memory) Update(ctx context.Context, slug string, req *model.UpdateLinkRequest) (*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[slug]
	if !ok {
		return nil, ErrNotFound
	}

	applyUpdate(link, req)
	link.UpdatedAt = time.Now().UTC()

	cp := *link
	return &cp, nil
}

// applyUpdate copies the non-nil fields of req onto link
func applyUpdate(link *model.Link, req *model.UpdateLinkRequest) {
	if req.URL != nil {
		link.URL = *req.URL
	}
	if req.Domain != nil {
		link.Domain = *req.Domain
	}
	if req.UTMParams != nil {
		link.UTMParams = *req.UTMParams
	}
	if req.Tags != nil {
		link.Tags = *req.Tags
	}
	if req.Description != nil {
		link.Description = *req.Description
	}
	if req.ExpiresAt != nil {
		link.ExpiresAt = req.ExpiresAt
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}
}

// SoftDelete flips is_active to false
func (m *Memory) SoftDelete(ctx context.Context, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[slug]
	if !ok {
		return false, nil
	}
	link.IsActive = false
	link.UpdatedAt = time.Now().UTC()
	return true, nil
}

// Exists checks whether any record holds the slug
func (m *Memory) Exists(ctx context.Context, slug string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.links[slug]
	return ok, nil
}

// ListActive returns active links, newest first
func (m *Memory) ListActive(ctx context.Context) ([]model.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	links := make([]model.Link, 0, len(m.links))
	for _, link := range m.links {
		if link.IsActive {
			links = append(links, *link)
		}
	}

	sort.Slice(links, func(i, j int) bool {
		if links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].ID > links[j].ID
		}
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})

	return links, nil
}

// IncrementClicks bumps the click counter
func (m *Memory) IncrementClicks(ctx context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[slug]
	if !ok {
		return ErrNotFound
	}
	link.ClickCount++
	return nil
}

// SaveClick records a click event
func (m *Memory) SaveClick(ctx context.Context, click *model.ClickEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *click
	if cp.ClickedAt.IsZero() {
		cp.ClickedAt = time.Now().UTC()
	}
	m.clicks[cp.Slug] = append(m.clicks[cp.Slug], cp)
	return nil
}

// RecentClicks returns the most recent click events for a slug
func (m *Memory) RecentClicks(ctx context.Context, slug string, limit int) ([]model.ClickEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.clicks[slug]
	out := make([]model.ClickEvent, len(all))
	copy(out, all)

	sort.Slice(out, func(i, j int) bool {
		return out[i].ClickedAt.After(out[j].ClickedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpsertSetting creates or replaces a setting by key
func (m *Memory) UpsertSetting(ctx context.Context, setting *model.Setting) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *setting
	cp.UpdatedAt = time.Now().UTC()
	m.settings[cp.Key] = &cp
	*setting = cp
	return nil
}

// GetSetting retrieves a setting by key
func (m *Memory) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	setting, ok := m.settings[key]
	if !ok {
		return nil, ErrSettingNotFound
	}
	cp := *setting
	return &cp, nil
}

// ListSettings retrieves all settings ordered by key
func (m *Memory) ListSettings(ctx context.Context) ([]model.Setting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	settings := make([]model.Setting, 0, len(m.settings))
	for _, s := range m.settings {
		settings = append(settings, *s)
	}
	sort.Slice(settings, func(i, j int) bool {
		return settings[i].Key < settings[j].Key
	})
	return settings, nil
}
