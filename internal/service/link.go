package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"linktrack/internal/model"
	"linktrack/internal/slug"
	"linktrack/internal/store"

	"github.com/rs/zerolog/log"
)

// recentClickLimit caps the click events returned by Stats
const recentClickLimit = 50

// LinkService handles link management operations. All input validation
// happens here, before any store call; the store only ever sees
// well-formed slugs and URLs.
type LinkService struct {
	store   store.LinkStore
	cache   LinkCache
	gen     *slug.Generator
	baseURL string
}

// NewLinkService creates a new LinkService. cache may be nil.
func NewLinkService(linkStore store.LinkStore, cache LinkCache, gen *slug.Generator, baseURL string) *LinkService {
	return &LinkService{
		store:   linkStore,
		cache:   cache,
		gen:     gen,
		baseURL: baseURL,
	}
}

// Create validates the request, generates a slug when none is supplied,
// and inserts the link. A taken slug yields ErrSlugTaken, never a
// silent rename.
func (s *LinkService) Create(ctx context.Context, req *model.CreateLinkRequest) (*model.LinkResponse, error) {
	if err := validateURL(req.URL); err != nil {
		return nil, err
	}

	linkSlug := req.Slug
	if linkSlug != "" {
		if !slug.IsValid(linkSlug) {
			return nil, ErrInvalidSlug
		}
		taken, err := s.store.Exists(ctx, linkSlug)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug availability: %w", err)
		}
		if taken {
			return nil, ErrSlugTaken
		}
	} else {
		generated, err := s.gen.Generate(ctx)
		if err != nil {
			if errors.Is(err, slug.ErrExhausted) {
				return nil, ErrSlugTaken
			}
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}
		linkSlug = generated
	}

	link := &model.Link{
		Slug:        linkSlug,
		URL:         req.URL,
		Domain:      req.Domain,
		Tags:        req.Tags,
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
		IsActive:    true,
	}
	if req.UTMParams != nil {
		link.UTMParams = *req.UTMParams
	}

	if err := s.store.Create(ctx, link); err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			// Lost the race between the availability check and the insert
			return nil, ErrSlugTaken
		}
		log.Error().Err(err).Str("slug", linkSlug).Msg("Failed to create link")
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	s.cacheLink(ctx, link)

	return s.buildResponse(link), nil
}

// Get fetches one link for management views, including soft-deleted records
func (s *LinkService) Get(ctx context.Context, linkSlug string) (*model.LinkResponse, error) {
	if !slug.IsValid(linkSlug) {
		return nil, ErrInvalidSlug
	}

	link, err := s.store.GetAny(ctx, linkSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return s.buildResponse(link), nil
}

// List returns all active links, newest first
func (s *LinkService) List(ctx context.Context) ([]model.LinkResponse, error) {
	links, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	out := make([]model.LinkResponse, 0, len(links))
	for i := range links {
		out = append(out, *s.buildResponse(&links[i]))
	}
	return out, nil
}

// Update applies the non-nil fields of req to an existing link
func (s *LinkService) Update(ctx context.Context, linkSlug string, req *model.UpdateLinkRequest) (*model.LinkResponse, error) {
	if !slug.IsValid(linkSlug) {
		return nil, ErrInvalidSlug
	}
	if req.URL != nil {
		if err := validateURL(*req.URL); err != nil {
			return nil, err
		}
	}

	link, err := s.store.Update(ctx, linkSlug, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to update link: %w", err)
	}

	s.invalidate(ctx, linkSlug)

	return s.buildResponse(link), nil
}

// Delete soft-deletes a link; the record remains visible via Get
func (s *LinkService) Delete(ctx context.Context, linkSlug string) error {
	if !slug.IsValid(linkSlug) {
		return ErrInvalidSlug
	}

	deleted, err := s.store.SoftDelete(ctx, linkSlug)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	if !deleted {
		return ErrLinkNotFound
	}

	s.invalidate(ctx, linkSlug)

	return nil
}

// Available reports whether the slug is taken by any record
func (s *LinkService) Available(ctx context.Context, linkSlug string) (bool, error) {
	if !slug.IsValid(linkSlug) {
		return false, ErrInvalidSlug
	}
	return s.store.Exists(ctx, linkSlug)
}

// Stats returns the aggregate click count and recent click events
func (s *LinkService) Stats(ctx context.Context, linkSlug string) (*model.LinkStats, error) {
	if !slug.IsValid(linkSlug) {
		return nil, ErrInvalidSlug
	}

	link, err := s.store.GetAny(ctx, linkSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	clicks, err := s.store.RecentClicks(ctx, linkSlug, recentClickLimit)
	if err != nil {
		log.Warn().Err(err).Str("slug", linkSlug).Msg("Failed to load recent clicks")
		clicks = []model.ClickEvent{}
	}

	return &model.LinkStats{
		Slug:         linkSlug,
		ClickCount:   link.ClickCount,
		RecentClicks: clicks,
	}, nil
}

// cacheLink warms the cache, best effort
func (s *LinkService) cacheLink(ctx context.Context, link *model.Link) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveLink(ctx, link, store.LinkCacheTTL); err != nil {
		log.Warn().Err(err).Str("slug", link.Slug).Msg("Failed to cache link")
	}
}

// invalidate drops the cached record, best effort
func (s *LinkService) invalidate(ctx context.Context, linkSlug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, linkSlug); err != nil {
		log.Warn().Err(err).Str("slug", linkSlug).Msg("Failed to invalidate cached link")
	}
}

// buildResponse attaches the rendered short URL to a link record
func (s *LinkService) buildResponse(link *model.Link) *model.LinkResponse {
	base := s.baseURL
	if link.Domain != "" {
		base = "https://" + link.Domain
	}
	return &model.LinkResponse{
		Link:     *link,
		ShortURL: fmt.Sprintf("%s/%s", base, link.Slug),
	}
}

// validateURL requires an absolute http(s) URL with a host
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
