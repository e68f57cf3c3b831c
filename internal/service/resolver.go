package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linktrack/internal/model"
	"linktrack/internal/mq"
	"linktrack/internal/slug"
	"linktrack/internal/store"
	"linktrack/internal/utm"

	"github.com/rs/zerolog/log"
)

// defaultClickTimeout bounds the fire-and-forget click recording so a
// hung store can never pile up goroutines behind redirects
const defaultClickTimeout = 3 * time.Second

// Resolver is the per-request decision procedure for GET /{slug}:
// validate, look up, check expiry, merge UTM parameters, redirect.
type Resolver struct {
	store        store.LinkStore
	cache        LinkCache
	producer     mq.ProducerInterface
	clickTimeout time.Duration
}

// NewResolver creates a new Resolver. cache and producer may be nil;
// without a producer, clicks are written straight to the store.
func NewResolver(linkStore store.LinkStore, cache LinkCache, producer mq.ProducerInterface) *Resolver {
	return &Resolver{
		store:        linkStore,
		cache:        cache,
		producer:     producer,
		clickTimeout: defaultClickTimeout,
	}
}

// Resolve maps a slug to its redirect target URL.
// Returns ErrInvalidSlug, ErrLinkNotFound, ErrLinkExpired or
// ErrLinkDisabled for the user-facing outcomes; anything else is an
// internal failure.
func (r *Resolver) Resolve(ctx context.Context, linkSlug string) (string, error) {
	if !slug.IsValid(linkSlug) {
		return "", ErrInvalidSlug
	}

	link, err := r.lookup(ctx, linkSlug)
	if err != nil {
		return "", err
	}

	if link.IsExpired(time.Now()) {
		return "", ErrLinkExpired
	}

	target, err := utm.Merge(link.URL, link.UTMParams)
	if err != nil {
		// The URL was validated at create time; reaching this is a bug
		return "", fmt.Errorf("failed to merge UTM parameters for %q: %w", linkSlug, err)
	}

	return target, nil
}

// lookup serves from cache when possible, then falls through to the store
func (r *Resolver) lookup(ctx context.Context, linkSlug string) (*model.Link, error) {
	if r.cache != nil {
		if link, err := r.cache.GetLink(ctx, linkSlug); err == nil && link != nil {
			if !link.IsActive {
				return nil, ErrLinkDisabled
			}
			return link, nil
		}
	}

	link, err := r.store.Get(ctx, linkSlug)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrLinkNotFound
		case errors.Is(err, store.ErrDisabled):
			// Defensive: only stores that skip the active pre-filter
			// surface this
			return nil, ErrLinkDisabled
		default:
			return nil, fmt.Errorf("failed to look up link: %w", err)
		}
	}

	if r.cache != nil {
		if err := r.cache.SaveLink(ctx, link, store.LinkCacheTTL); err != nil {
			log.Warn().Err(err).Str("slug", linkSlug).Msg("Failed to cache link")
		}
	}

	return link, nil
}

// RecordClick records one redirect, best effort. Callers invoke it in
// a goroutine; it never blocks the redirect response and its failure
// is logged, not surfaced. With a producer configured the event goes
// to the message queue, otherwise straight to the store.
func (r *Resolver) RecordClick(click *model.ClickEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), r.clickTimeout)
	defer cancel()

	if r.producer != nil {
		msg := &mq.ClickMessage{
			Slug:      click.Slug,
			ClientIP:  click.ClientIP,
			UserAgent: click.UserAgent,
			Referer:   click.Referer,
			ClickedAt: click.ClickedAt,
		}
		if err := r.producer.SendClick(ctx, msg); err != nil {
			log.Error().Err(err).Str("slug", click.Slug).Msg("Failed to publish click event")
		}
		return
	}

	if err := r.store.IncrementClicks(ctx, click.Slug); err != nil {
		log.Error().Err(err).Str("slug", click.Slug).Msg("Failed to increment click count")
	}
	if err := r.store.SaveClick(ctx, click); err != nil {
		log.Error().Err(err).Str("slug", click.Slug).Msg("Failed to save click event")
	}
}
