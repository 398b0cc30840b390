package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/anicatalog-go/internal/config"
	"github.com/user/anicatalog-go/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLStore implements Store interface using MySQL database
type MySQLStore struct {
	db *gorm.DB
}

// NewMySQLStore creates a new MySQL store instance
func NewMySQLStore(cfg *config.DBConfig) (*MySQLStore, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MaxConns / 2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Auto migrate tables
	if err := db.AutoMigrate(
		&model.Content{},
		&model.Episode{},
		&model.Genre{},
		&model.Studio{},
		&model.ExternalID{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// applyCriteria translates a criteria set into WHERE clauses. Every listing
// and count goes through here so that the same criteria always produce the
// same predicate.
func applyCriteria(tx *gorm.DB, c ContentCriteria) *gorm.DB {
	if c.Type != "" {
		tx = tx.Where("content_type = ?", c.Type)
	}
	if c.Status != "" {
		tx = tx.Where("release_status = ?", c.Status)
	}
	if c.MinRating != nil {
		tx = tx.Where("rating >= ?", *c.MinRating)
	}
	if c.Year != nil {
		tx = tx.Where("year = ?", *c.Year)
	}
	switch {
	case c.ReleasedFrom != nil && c.ReleasedTo != nil:
		tx = tx.Where("release_date BETWEEN ? AND ?", *c.ReleasedFrom, *c.ReleasedTo)
	case c.ReleasedFrom != nil:
		tx = tx.Where("release_date >= ?", *c.ReleasedFrom)
	case c.ReleasedTo != nil:
		tx = tx.Where("release_date <= ?", *c.ReleasedTo)
	}
	if c.TitleQuery != "" {
		// BINARY keeps the match case-sensitive under MySQL's default
		// collation.
		pattern := "%" + c.TitleQuery + "%"
		tx = tx.Where("title LIKE BINARY ? OR original_title LIKE BINARY ?", pattern, pattern)
	}
	if c.HasNextEpisode {
		tx = tx.Where("next_episode IS NOT NULL")
	}
	switch {
	case c.NextEpisodeFrom != nil && c.NextEpisodeTo != nil:
		tx = tx.Where("next_episode BETWEEN ? AND ?", *c.NextEpisodeFrom, *c.NextEpisodeTo)
	case c.NextEpisodeFrom != nil:
		tx = tx.Where("next_episode >= ?", *c.NextEpisodeFrom)
	case c.NextEpisodeTo != nil:
		tx = tx.Where("next_episode <= ?", *c.NextEpisodeTo)
	}
	return tx
}

// withRelations eagerly attaches the sub-entities every hydrated content
// listing carries.
func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Genres").
		Preload("Studios").
		Preload("ExternalIDs").
		Preload("Episodes")
}

// ListGenres returns all genre rows, unfiltered and unpaginated
func (s *MySQLStore) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	var genres []*model.Genre
	result := s.db.WithContext(ctx).Find(&genres)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list genres: %w", result.Error)
	}
	return genres, nil
}

// ListContent resolves a page of content matching the criteria, ordered by
// the given key, with relations attached
func (s *MySQLStore) ListContent(ctx context.Context, crit ContentCriteria, order OrderKey, limit, offset int) ([]*model.Content, error) {
	var contents []*model.Content

	tx := applyCriteria(s.db.WithContext(ctx).Model(&model.Content{}), crit)
	tx = withRelations(tx)
	if order != OrderDefault {
		tx = tx.Order(string(order))
	}
	if limit > 0 {
		tx = tx.Limit(limit).Offset(offset)
	}

	if result := tx.Find(&contents); result.Error != nil {
		return nil, fmt.Errorf("failed to list content: %w", result.Error)
	}
	return contents, nil
}

// GetContentByID retrieves a single content entry with relations attached.
// Returns (nil, nil) when no row matches.
func (s *MySQLStore) GetContentByID(ctx context.Context, id int64) (*model.Content, error) {
	var content model.Content
	result := withRelations(s.db.WithContext(ctx)).
		Where("content_id = ?", id).
		First(&content)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get content by id: %w", result.Error)
	}
	return &content, nil
}

// CountContent returns the number of content rows matching the criteria
func (s *MySQLStore) CountContent(ctx context.Context, crit ContentCriteria) (int64, error) {
	var count int64
	tx := applyCriteria(s.db.WithContext(ctx).Model(&model.Content{}), crit)
	if result := tx.Count(&count); result.Error != nil {
		return 0, fmt.Errorf("failed to count content: %w", result.Error)
	}
	return count, nil
}

// ListContentIDs returns every content identifier with no relation
// hydration, for sitemap-style consumers
func (s *MySQLStore) ListContentIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	result := s.db.WithContext(ctx).
		Model(&model.Content{}).
		Pluck("content_id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list content ids: %w", result.Error)
	}
	return ids, nil
}

// Ping checks database connectivity
func (s *MySQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying db: %w", err)
	}
	return sqlDB.Close()
}

// DB returns the underlying gorm.DB instance (for testing purposes)
func (s *MySQLStore) DB() *gorm.DB {
	return s.db
}
