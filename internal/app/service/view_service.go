package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klantroef/medialink/internal/app/model"
	"github.com/klantroef/medialink/internal/app/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ViewService records view events and computes read-only aggregates over
// them. Events are append-only; aggregates re-scan the event store on every
// call rather than maintaining counters.
type ViewService interface {
	RecordView(ctx context.Context, assetID uint, sourceIP string, at time.Time) (string, error)
	ComputeAnalytics(ctx context.Context, assetID uint) (*model.AnalyticsSnapshot, error)
	LiveViews(ctx context.Context, assetID uint) (int64, error)
}

type viewService struct {
	assets    repository.AssetRepository
	events    repository.ViewEventRepository
	publisher *ViewPublisher
	redis     *redis.Client
	logger    *zap.Logger
	now       func() time.Time
}

// NewViewService returns a recorder/aggregator backed by the given
// repositories. publisher and redisClient may be nil; the NATS fan-out and
// the live counter are then disabled.
func NewViewService(assets repository.AssetRepository, events repository.ViewEventRepository, publisher *ViewPublisher, redisClient *redis.Client, logger *zap.Logger) ViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &viewService{
		assets:    assets,
		events:    events,
		publisher: publisher,
		redis:     redisClient,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordView appends one view event for the asset and returns its id.
func (s *viewService) RecordView(ctx context.Context, assetID uint, sourceIP string, at time.Time) (string, error) {
	if _, err := s.assets.GetByID(ctx, assetID); err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return "", err
		}
		return "", fmt.Errorf("load asset: %w", err)
	}

	event := &model.ViewEvent{
		ID:         uuid.New().String(),
		AssetID:    assetID,
		SourceIP:   sourceIP,
		OccurredAt: at,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return "", fmt.Errorf("append view event: %w", err)
	}

	// Best-effort fan-out to JetStream for the live counter pipeline.
	if s.publisher != nil {
		if err := s.publisher.Publish(event); err != nil {
			s.logger.Warn("failed to publish view event",
				zap.String("event_id", event.ID),
				zap.Uint("asset_id", assetID),
				zap.Error(err))
		}
	}

	return event.ID, nil
}

// ComputeAnalytics aggregates the asset's full view history. The per-day
// histogram is restricted to a trailing 30-day window with calendar-day
// truncation; days without events are omitted.
func (s *viewService) ComputeAnalytics(ctx context.Context, assetID uint) (*model.AnalyticsSnapshot, error) {
	if _, err := s.assets.GetByID(ctx, assetID); err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load asset: %w", err)
	}

	total, err := s.events.CountByAsset(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("count views: %w", err)
	}

	unique, err := s.events.CountDistinctSources(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("count distinct sources: %w", err)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -model.AnalyticsWindowDays)

	daily, err := s.events.CountByDay(ctx, assetID, since)
	if err != nil {
		return nil, fmt.Errorf("count views by day: %w", err)
	}
	viewsByDay := make(map[string]int64, len(daily))
	for _, row := range daily {
		viewsByDay[row.Day] = row.Views
	}

	top, err := s.events.TopSources(ctx, assetID, model.TopSourcesLimit)
	if err != nil {
		return nil, fmt.Errorf("rank top sources: %w", err)
	}

	return &model.AnalyticsSnapshot{
		AssetID:       assetID,
		TotalViews:    total,
		UniqueSources: unique,
		ViewsByDay:    viewsByDay,
		TopSources:    top,
		ComputedAt:    now,
	}, nil
}

// LiveViews reads the approximate view counter the JetStream consumer keeps
// in Redis. It lags the durable count until the next reconciliation pass.
func (s *viewService) LiveViews(ctx context.Context, assetID uint) (int64, error) {
	if _, err := s.assets.GetByID(ctx, assetID); err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("load asset: %w", err)
	}

	if s.redis == nil {
		return 0, nil
	}

	count, err := s.redis.Get(ctx, LiveViewKey(assetID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("read live view counter: %w", err)
	}
	return count, nil
}

// LiveViewKey is the Redis key of the per-asset live view counter.
func LiveViewKey(assetID uint) string {
	return fmt.Sprintf("views:live:%d", assetID)
}
