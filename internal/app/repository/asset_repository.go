package repository

import (
	"context"
	"errors"

	"github.com/klantroef/medialink/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrAssetNotFound signals that the requested media asset does not exist.
	ErrAssetNotFound = errors.New("media asset not found")
)

// AssetRepository defines the data access contract for media assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *model.MediaAsset) error
	GetByID(ctx context.Context, id uint) (*model.MediaAsset, error)
	List(ctx context.Context, limit, offset int) ([]model.MediaAsset, error)
}

type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository returns a GORM-backed AssetRepository.
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.MediaAsset) error {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return err
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id uint) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	if err := r.db.WithContext(ctx).First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context, limit, offset int) ([]model.MediaAsset, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var result []model.MediaAsset
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
