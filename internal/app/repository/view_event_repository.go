package repository

import (
	"context"
	"time"

	"github.com/klantroef/medialink/internal/app/model"
	"gorm.io/gorm"
)

// DayCount is one row of the per-day view histogram.
type DayCount struct {
	Day   string `json:"day"`
	Views int64  `json:"views"`
}

// ViewEventRepository defines the data access contract for view events.
// The event set is append-only; the aggregate queries never mutate it.
type ViewEventRepository interface {
	Create(ctx context.Context, event *model.ViewEvent) error
	CountByAsset(ctx context.Context, assetID uint) (int64, error)
	CountDistinctSources(ctx context.Context, assetID uint) (int64, error)
	CountByDay(ctx context.Context, assetID uint, since time.Time) ([]DayCount, error)
	TopSources(ctx context.Context, assetID uint, limit int) ([]model.SourceCount, error)
}

type viewEventRepository struct {
	db *gorm.DB
}

// NewViewEventRepository returns a GORM-backed ViewEventRepository.
func NewViewEventRepository(db *gorm.DB) ViewEventRepository {
	return &viewEventRepository{db: db}
}

func (r *viewEventRepository) Create(ctx context.Context, event *model.ViewEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *viewEventRepository) CountByAsset(ctx context.Context, assetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ViewEvent{}).
		Where("asset_id = ?", assetID).
		Count(&count).Error
	return count, err
}

func (r *viewEventRepository) CountDistinctSources(ctx context.Context, assetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ViewEvent{}).
		Where("asset_id = ?", assetID).
		Distinct("source_ip").
		Count(&count).Error
	return count, err
}

func (r *viewEventRepository) CountByDay(ctx context.Context, assetID uint, since time.Time) ([]DayCount, error) {
	var rows []DayCount
	err := r.db.WithContext(ctx).
		Model(&model.ViewEvent{}).
		Select("to_char(occurred_at, 'YYYY-MM-DD') AS day, COUNT(*) AS views").
		Where("asset_id = ? AND occurred_at >= ?", assetID, since).
		Group("day").
		Order("day DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *viewEventRepository) TopSources(ctx context.Context, assetID uint, limit int) ([]model.SourceCount, error) {
	if limit <= 0 {
		limit = model.TopSourcesLimit
	}

	var rows []model.SourceCount
	err := r.db.WithContext(ctx).
		Model(&model.ViewEvent{}).
		Select("source_ip, COUNT(*) AS views").
		Where("asset_id = ?", assetID).
		Group("source_ip").
		Order("views DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
