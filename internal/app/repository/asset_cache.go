package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/klantroef/medialink/internal/app/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const assetCacheTTL = 5 * time.Minute

// CachedAssetRepository wraps an AssetRepository with a Redis read-through
// cache on GetByID. Assets are immutable after creation, so stale entries
// only matter for the cache TTL after a delete, which the service does not
// support. Cache failures degrade to the inner repository.
type CachedAssetRepository struct {
	inner  AssetRepository
	redis  *redis.Client
	logger *zap.Logger
}

// NewCachedAssetRepository decorates inner with a Redis cache.
func NewCachedAssetRepository(inner AssetRepository, redisClient *redis.Client, logger *zap.Logger) *CachedAssetRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedAssetRepository{inner: inner, redis: redisClient, logger: logger}
}

func (r *CachedAssetRepository) Create(ctx context.Context, asset *model.MediaAsset) error {
	return r.inner.Create(ctx, asset)
}

func (r *CachedAssetRepository) GetByID(ctx context.Context, id uint) (*model.MediaAsset, error) {
	key := assetCacheKey(id)

	if data, err := r.redis.Get(ctx, key).Bytes(); err == nil {
		var asset model.MediaAsset
		if err := json.Unmarshal(data, &asset); err == nil {
			return &asset, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Debug("asset cache read failed", zap.Uint("asset_id", id), zap.Error(err))
	}

	asset, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(asset); err == nil {
		if err := r.redis.Set(ctx, key, data, assetCacheTTL).Err(); err != nil {
			r.logger.Debug("asset cache write failed", zap.Uint("asset_id", id), zap.Error(err))
		}
	}

	return asset, nil
}

func (r *CachedAssetRepository) List(ctx context.Context, limit, offset int) ([]model.MediaAsset, error) {
	return r.inner.List(ctx, limit, offset)
}

func assetCacheKey(id uint) string {
	return fmt.Sprintf("asset:%d", id)
}
