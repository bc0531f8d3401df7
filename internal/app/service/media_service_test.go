package service

import (
	"context"
	"errors"
	"testing"

	"github.com/klantroef/medialink/internal/app/model"
	"github.com/klantroef/medialink/internal/app/repository"
)

func TestMediaService_CreateAssetValidation(t *testing.T) {
	cases := []struct {
		name  string
		input CreateAssetInput
	}{
		{"missing title", CreateAssetInput{Type: model.AssetTypeVideo, FileURL: "https://cdn.example.com/a.mp4"}},
		{"blank title", CreateAssetInput{Title: "   ", Type: model.AssetTypeVideo, FileURL: "https://cdn.example.com/a.mp4"}},
		{"missing file url", CreateAssetInput{Title: "a", Type: model.AssetTypeAudio}},
		{"missing type", CreateAssetInput{Title: "a", FileURL: "https://cdn.example.com/a.mp4"}},
		{"bad type", CreateAssetInput{Title: "a", Type: "podcast", FileURL: "https://cdn.example.com/a.mp4"}},
	}

	repo := &mockAssetRepository{
		createFn: func(ctx context.Context, asset *model.MediaAsset) error {
			t.Fatal("invalid input must be rejected before any side effect")
			return nil
		},
	}
	svc := NewMediaService(repo)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAsset(context.Background(), tc.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestMediaService_CreateAsset(t *testing.T) {
	repo := &mockAssetRepository{
		createFn: func(ctx context.Context, asset *model.MediaAsset) error {
			asset.ID = 12
			return nil
		},
	}
	svc := NewMediaService(repo)

	asset, err := svc.CreateAsset(context.Background(), CreateAssetInput{
		Title:   "  morning show  ",
		Type:    model.AssetTypeAudio,
		FileURL: "https://cdn.example.com/show.mp3",
	})
	if err != nil {
		t.Fatalf("CreateAsset returned error: %v", err)
	}
	if asset.ID != 12 {
		t.Fatalf("expected id from repository, got %d", asset.ID)
	}
	if asset.Title != "morning show" {
		t.Fatalf("expected trimmed title, got %q", asset.Title)
	}
}

func TestMediaService_GetAssetNotFound(t *testing.T) {
	svc := NewMediaService(&mockAssetRepository{})

	_, err := svc.GetAsset(context.Background(), 404)
	if !errors.Is(err, repository.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestMediaService_ListAssets(t *testing.T) {
	repo := &mockAssetRepository{
		listFn: func(ctx context.Context, limit, offset int) ([]model.MediaAsset, error) {
			return []model.MediaAsset{{ID: 2}, {ID: 1}}, nil
		},
	}
	svc := NewMediaService(repo)

	assets, err := svc.ListAssets(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListAssets returned error: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assets))
	}
}
