package service

import (
	"context"
	"strconv"
	"time"

	"github.com/klantroef/medialink/internal/app/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const reconcileBatch = 1000

// CounterReconciler periodically overwrites the Redis live view counters
// with the durable counts from Postgres, correcting drift from dropped or
// double-delivered JetStream messages.
type CounterReconciler struct {
	logger   *zap.Logger
	assets   repository.AssetRepository
	events   repository.ViewEventRepository
	redis    *redis.Client
	interval time.Duration
	stopChan chan struct{}
}

// NewCounterReconciler creates a new live counter reconciler.
func NewCounterReconciler(logger *zap.Logger, assets repository.AssetRepository, events repository.ViewEventRepository, redisClient *redis.Client, interval time.Duration) *CounterReconciler {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CounterReconciler{
		logger:   logger,
		assets:   assets,
		events:   events,
		redis:    redisClient,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the periodic reconciliation.
func (r *CounterReconciler) Start() {
	go r.run()
}

// Stop stops the periodic reconciliation.
func (r *CounterReconciler) Stop() {
	close(r.stopChan)
}

func (r *CounterReconciler) run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.reconcile()
		case <-r.stopChan:
			r.logger.Info("view counter reconciler stopped")
			return
		}
	}
}

func (r *CounterReconciler) reconcile() {
	ctx := context.Background()

	var fixed int
	for offset := 0; ; offset += reconcileBatch {
		assets, err := r.assets.List(ctx, reconcileBatch, offset)
		if err != nil {
			r.logger.Error("failed to list assets for reconciliation", zap.Error(err))
			return
		}
		if len(assets) == 0 {
			break
		}

		for _, asset := range assets {
			count, err := r.events.CountByAsset(ctx, asset.ID)
			if err != nil {
				r.logger.Error("failed to count views",
					zap.Uint("asset_id", asset.ID), zap.Error(err))
				continue
			}

			if err := r.redis.Set(ctx, LiveViewKey(asset.ID), strconv.FormatInt(count, 10), 0).Err(); err != nil {
				r.logger.Error("failed to write live view counter",
					zap.Uint("asset_id", asset.ID), zap.Error(err))
				continue
			}
			fixed++
		}

		if len(assets) < reconcileBatch {
			break
		}
	}

	if fixed > 0 {
		r.logger.Debug("reconciled live view counters", zap.Int("assets", fixed))
	}
}
