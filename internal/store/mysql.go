package store

import (
	"context"
	"errors"
	"time"

	"linktrack/internal/config"
	"linktrack/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// MySQLStore is the primary LinkStore and SettingStore backed by MySQL
type MySQLStore struct {
	db *gorm.DB
}

// NewMySQLStore connects to MySQL and migrates the schema
func NewMySQLStore(cfg *config.MySQLConfig) (*MySQLStore, error) {
	// Configure GORM logger
	var gormLogger logger.Interface
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gormLogger = logger.Default.LogMode(logger.Silent)
	} else {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate tables
	if err := db.AutoMigrate(&model.Link{}, &model.Setting{}, &model.ClickEvent{}); err != nil {
		return nil, err
	}

	log.Info().Msg("MySQL connected successfully")

	return &MySQLStore{db: db}, nil
}

// GetDB returns the GORM DB instance
func (s *MySQLStore) GetDB() *gorm.DB {
	return s.db
}

// Get retrieves an active link by slug
func (s *MySQLStore) Get(ctx context.Context, slug string) (*model.Link, error) {
	var link model.Link
	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// GetAny retrieves a link by slug regardless of its active flag
func (s *MySQLStore) GetAny(ctx context.Context, slug string) (*model.Link, error) {
	var link model.Link
	err := s.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// Create inserts a new link. The unique index on slug is the
// conditional-insert arbiter; a duplicate key maps to ErrDuplicateSlug.
func (s *MySQLStore) Create(ctx context.Context, link *model.Link) error {
	err := s.db.WithContext(ctx).Create(link).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSlug
	}
	return err
}

// Update applies the non-nil fields of req to the link and returns the
// updated record. Only the supplied columns are written, so concurrent
// partial updates to different fields never clobber each other.
func (s *MySQLStore) Update(ctx context.Context, slug string, req *model.UpdateLinkRequest) (*model.Link, error) {
	if _, err := s.GetAny(ctx, slug); err != nil {
		return nil, err
	}

	if updates := updateColumns(req); len(updates) > 0 {
		err := s.db.WithContext(ctx).
			Model(&model.Link{}).
			Where("slug = ?", slug).
			Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}

	return s.GetAny(ctx, slug)
}

// updateColumns maps the non-nil fields of req to their columns
func updateColumns(req *model.UpdateLinkRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.Domain != nil {
		updates["domain"] = *req.Domain
	}
	if req.UTMParams != nil {
		updates["utm_params"] = *req.UTMParams
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ExpiresAt != nil {
		updates["expires_at"] = *req.ExpiresAt
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	return updates
}

// SoftDelete flips is_active to false. Returns false if the slug is unknown.
func (s *MySQLStore) SoftDelete(ctx context.Context, slug string) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("slug = ?", slug).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists checks whether any record, active or not, holds the slug
func (s *MySQLStore) Exists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

// ListActive returns active links, newest first
func (s *MySQLStore) ListActive(ctx context.Context) ([]model.Link, error) {
	var links []model.Link
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&links).Error
	return links, err
}

// IncrementClicks bumps the click counter without touching updated_at
func (s *MySQLStore) IncrementClicks(ctx context.Context, slug string) error {
	return s.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("slug = ?", slug).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
}

// SaveClick persists a single click event
func (s *MySQLStore) SaveClick(ctx context.Context, click *model.ClickEvent) error {
	return s.db.WithContext(ctx).Create(click).Error
}

// RecentClicks retrieves the most recent click events for a slug
func (s *MySQLStore) RecentClicks(ctx context.Context, slug string, limit int) ([]model.ClickEvent, error) {
	var clicks []model.ClickEvent
	query := s.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order("clicked_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&clicks).Error
	return clicks, err
}

// UpsertSetting creates or replaces a setting by key
func (s *MySQLStore) UpsertSetting(ctx context.Context, setting *model.Setting) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(setting).Error
}

// GetSetting retrieves a setting by key
func (s *MySQLStore) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	err := s.db.WithContext(ctx).
		Where("`key` = ?", key).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return &setting, nil
}

// ListSettings retrieves all settings
func (s *MySQLStore) ListSettings(ctx context.Context) ([]model.Setting, error) {
	var settings []model.Setting
	err := s.db.WithContext(ctx).Order("`key`").Find(&settings).Error
	return settings, err
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
