package service

import (
	"context"
	"time"

	"github.com/klantroef/medialink/internal/app/model"
	"github.com/klantroef/medialink/internal/app/repository"
)

type mockAssetRepository struct {
	createFn func(ctx context.Context, asset *model.MediaAsset) error
	getFn    func(ctx context.Context, id uint) (*model.MediaAsset, error)
	listFn   func(ctx context.Context, limit, offset int) ([]model.MediaAsset, error)
}

func (m *mockAssetRepository) Create(ctx context.Context, asset *model.MediaAsset) error {
	if m.createFn != nil {
		return m.createFn(ctx, asset)
	}
	return nil
}

func (m *mockAssetRepository) GetByID(ctx context.Context, id uint) (*model.MediaAsset, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, repository.ErrAssetNotFound
}

func (m *mockAssetRepository) List(ctx context.Context, limit, offset int) ([]model.MediaAsset, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return nil, nil
}

type mockViewEventRepository struct {
	createFn        func(ctx context.Context, event *model.ViewEvent) error
	countFn         func(ctx context.Context, assetID uint) (int64, error)
	countDistinctFn func(ctx context.Context, assetID uint) (int64, error)
	countByDayFn    func(ctx context.Context, assetID uint, since time.Time) ([]repository.DayCount, error)
	topSourcesFn    func(ctx context.Context, assetID uint, limit int) ([]model.SourceCount, error)
}

func (m *mockViewEventRepository) Create(ctx context.Context, event *model.ViewEvent) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}

func (m *mockViewEventRepository) CountByAsset(ctx context.Context, assetID uint) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, assetID)
	}
	return 0, nil
}

func (m *mockViewEventRepository) CountDistinctSources(ctx context.Context, assetID uint) (int64, error) {
	if m.countDistinctFn != nil {
		return m.countDistinctFn(ctx, assetID)
	}
	return 0, nil
}

func (m *mockViewEventRepository) CountByDay(ctx context.Context, assetID uint, since time.Time) ([]repository.DayCount, error) {
	if m.countByDayFn != nil {
		return m.countByDayFn(ctx, assetID, since)
	}
	return nil, nil
}

func (m *mockViewEventRepository) TopSources(ctx context.Context, assetID uint, limit int) ([]model.SourceCount, error) {
	if m.topSourcesFn != nil {
		return m.topSourcesFn(ctx, assetID, limit)
	}
	return nil, nil
}

type mockUserRepository struct {
	createFn     func(ctx context.Context, user *model.AdminUser) error
	getByEmailFn func(ctx context.Context, email string) (*model.AdminUser, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.AdminUser) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, repository.ErrUserNotFound
}

type mockViewService struct {
	recordFn  func(ctx context.Context, assetID uint, sourceIP string, at time.Time) (string, error)
	computeFn func(ctx context.Context, assetID uint) (*model.AnalyticsSnapshot, error)
	liveFn    func(ctx context.Context, assetID uint) (int64, error)
}

func (m *mockViewService) RecordView(ctx context.Context, assetID uint, sourceIP string, at time.Time) (string, error) {
	if m.recordFn != nil {
		return m.recordFn(ctx, assetID, sourceIP, at)
	}
	return "view-1", nil
}

func (m *mockViewService) ComputeAnalytics(ctx context.Context, assetID uint) (*model.AnalyticsSnapshot, error) {
	if m.computeFn != nil {
		return m.computeFn(ctx, assetID)
	}
	return &model.AnalyticsSnapshot{AssetID: assetID}, nil
}

func (m *mockViewService) LiveViews(ctx context.Context, assetID uint) (int64, error) {
	if m.liveFn != nil {
		return m.liveFn(ctx, assetID)
	}
	return 0, nil
}
