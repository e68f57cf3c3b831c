package service

import (
	"context"
	"errors"
	"fmt"

	"linktrack/internal/model"
	"linktrack/internal/slug"
	"linktrack/internal/store"
)

// SettingService handles admin-configurable settings: upsert by key,
// read by key, read all
type SettingService struct {
	store store.SettingStore
}

// NewSettingService creates a new SettingService
func NewSettingService(settingStore store.SettingStore) *SettingService {
	return &SettingService{store: settingStore}
}

// Upsert creates or replaces the setting under key
func (s *SettingService) Upsert(ctx context.Context, key string, req *model.UpsertSettingRequest) (*model.Setting, error) {
	if !slug.IsValid(key) {
		return nil, ErrInvalidSlug
	}

	setting := &model.Setting{
		Key:         key,
		Value:       req.Value,
		Description: req.Description,
	}
	if err := s.store.UpsertSetting(ctx, setting); err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}
	return setting, nil
}

// Get retrieves one setting by key
func (s *SettingService) Get(ctx context.Context, key string) (*model.Setting, error) {
	if !slug.IsValid(key) {
		return nil, ErrInvalidSlug
	}

	setting, err := s.store.GetSetting(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrSettingNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return setting, nil
}

// List retrieves all settings
func (s *SettingService) List(ctx context.Context) ([]model.Setting, error) {
	settings, err := s.store.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}
