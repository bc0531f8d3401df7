package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/klantroef/medialink/internal/app/model"
	"github.com/klantroef/medialink/internal/app/repository"
)

func TestViewService_RecordView(t *testing.T) {
	assets := &mockAssetRepository{
		getFn: func(ctx context.Context, id uint) (*model.MediaAsset, error) {
			return testAsset(id), nil
		},
	}

	at := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	var stored *model.ViewEvent
	events := &mockViewEventRepository{
		createFn: func(ctx context.Context, event *model.ViewEvent) error {
			stored = event
			return nil
		},
	}

	svc := NewViewService(assets, events, nil, nil, nil)

	viewID, err := svc.RecordView(context.Background(), 7, "203.0.113.20", at)
	if err != nil {
		t.Fatalf("RecordView returned error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected an event to be appended")
	}
	if viewID != stored.ID || viewID == "" {
		t.Fatalf("expected returned id %q to match stored event id %q", viewID, stored.ID)
	}
	if stored.AssetID != 7 || stored.SourceIP != "203.0.113.20" || !stored.OccurredAt.Equal(at) {
		t.Fatalf("unexpected event %+v", stored)
	}
}

func TestViewService_RecordViewUnknownAsset(t *testing.T) {
	events := &mockViewEventRepository{
		createFn: func(ctx context.Context, event *model.ViewEvent) error {
			t.Fatal("no event must be appended for an unknown asset")
			return nil
		},
	}

	svc := NewViewService(&mockAssetRepository{}, events, nil, nil, nil)

	_, err := svc.RecordView(context.Background(), 42, "203.0.113.1", time.Now())
	if !errors.Is(err, repository.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestViewService_RecordViewAppendFailure(t *testing.T) {
	assets := &mockAssetRepository{
		getFn: func(ctx context.Context, id uint) (*model.MediaAsset, error) {
			return testAsset(id), nil
		},
	}
	events := &mockViewEventRepository{
		createFn: func(ctx context.Context, event *model.ViewEvent) error {
			return errors.New("connection reset")
		},
	}

	svc := NewViewService(assets, events, nil, nil, nil)

	if _, err := svc.RecordView(context.Background(), 1, "192.0.2.1", time.Now()); err == nil {
		t.Fatal("expected append failure to propagate")
	}
}

func TestViewService_ComputeAnalytics(t *testing.T) {
	assets := &mockAssetRepository{
		getFn: func(ctx context.Context, id uint) (*model.MediaAsset, error) {
			return testAsset(id), nil
		},
	}

	var gotSince time.Time
	var gotLimit int
	events := &mockViewEventRepository{
		countFn: func(ctx context.Context, assetID uint) (int64, error) {
			return 42, nil
		},
		countDistinctFn: func(ctx context.Context, assetID uint) (int64, error) {
			return 11, nil
		},
		countByDayFn: func(ctx context.Context, assetID uint, since time.Time) ([]repository.DayCount, error) {
			gotSince = since
			return []repository.DayCount{
				{Day: "2025-06-02", Views: 3},
				{Day: "2025-06-01", Views: 5},
			}, nil
		},
		topSourcesFn: func(ctx context.Context, assetID uint, limit int) ([]model.SourceCount, error) {
			gotLimit = limit
			return []model.SourceCount{
				{SourceIP: "203.0.113.20", Views: 30},
				{SourceIP: "198.51.100.4", Views: 12},
			}, nil
		},
	}

	svc := NewViewService(assets, events, nil, nil, nil)
	impl := svc.(*viewService)
	now := time.Date(2025, 6, 2, 17, 45, 0, 0, time.UTC)
	impl.now = func() time.Time { return now }

	snapshot, err := svc.ComputeAnalytics(context.Background(), 7)
	if err != nil {
		t.Fatalf("ComputeAnalytics returned error: %v", err)
	}

	if snapshot.TotalViews != 42 {
		t.Fatalf("expected 42 total views, got %d", snapshot.TotalViews)
	}
	if snapshot.UniqueSources != 11 {
		t.Fatalf("expected 11 unique sources, got %d", snapshot.UniqueSources)
	}
	if snapshot.UniqueSources > snapshot.TotalViews {
		t.Fatal("unique sources must never exceed total views")
	}

	// Window starts 30 days before today's midnight, inclusive.
	wantSince := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)
	if !gotSince.Equal(wantSince) {
		t.Fatalf("expected window since %v, got %v", wantSince, gotSince)
	}

	if len(snapshot.ViewsByDay) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(snapshot.ViewsByDay))
	}
	if snapshot.ViewsByDay["2025-06-01"] != 5 || snapshot.ViewsByDay["2025-06-02"] != 3 {
		t.Fatalf("unexpected day buckets %v", snapshot.ViewsByDay)
	}
	var daySum int64
	for _, v := range snapshot.ViewsByDay {
		daySum += v
	}
	if daySum > snapshot.TotalViews {
		t.Fatal("windowed day counts must not exceed total views")
	}

	if gotLimit != model.TopSourcesLimit {
		t.Fatalf("expected top sources limit %d, got %d", model.TopSourcesLimit, gotLimit)
	}
	if len(snapshot.TopSources) != 2 {
		t.Fatalf("expected 2 top sources, got %d", len(snapshot.TopSources))
	}
	for i := 1; i < len(snapshot.TopSources); i++ {
		if snapshot.TopSources[i].Views > snapshot.TopSources[i-1].Views {
			t.Fatal("top sources must be sorted by views descending")
		}
	}

	if !snapshot.ComputedAt.Equal(now) {
		t.Fatalf("expected computedAt %v, got %v", now, snapshot.ComputedAt)
	}
}

func TestViewService_ComputeAnalyticsUnknownAsset(t *testing.T) {
	svc := NewViewService(&mockAssetRepository{}, &mockViewEventRepository{}, nil, nil, nil)

	_, err := svc.ComputeAnalytics(context.Background(), 404)
	if !errors.Is(err, repository.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestViewService_LiveViewsWithoutRedis(t *testing.T) {
	assets := &mockAssetRepository{
		getFn: func(ctx context.Context, id uint) (*model.MediaAsset, error) {
			return testAsset(id), nil
		},
	}
	svc := NewViewService(assets, &mockViewEventRepository{}, nil, nil, nil)

	count, err := svc.LiveViews(context.Background(), 1)
	if err != nil {
		t.Fatalf("LiveViews returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 without a counter backend, got %d", count)
	}
}
