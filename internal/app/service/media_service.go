package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/klantroef/medialink/internal/app/model"
	"github.com/klantroef/medialink/internal/app/repository"
)

// ErrValidation marks malformed input rejected before any side effect.
var ErrValidation = errors.New("validation failed")

// MediaService defines behaviour-level operations on media assets.
type MediaService interface {
	CreateAsset(ctx context.Context, input CreateAssetInput) (*model.MediaAsset, error)
	GetAsset(ctx context.Context, id uint) (*model.MediaAsset, error)
	ListAssets(ctx context.Context, limit, offset int) ([]model.MediaAsset, error)
}

type mediaService struct {
	repo repository.AssetRepository
}

// NewMediaService returns a service implementation backed by the given repository.
func NewMediaService(repo repository.AssetRepository) MediaService {
	return &mediaService{repo: repo}
}

// CreateAssetInput captures data required to register a media asset.
type CreateAssetInput struct {
	Title   string
	Type    string
	FileURL string
}

func (s *mediaService) CreateAsset(ctx context.Context, input CreateAssetInput) (*model.MediaAsset, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.FileURL == "" {
		return nil, fmt.Errorf("%w: file_url is required", ErrValidation)
	}
	if !model.ValidAssetType(input.Type) {
		return nil, fmt.Errorf("%w: type must be %q or %q", ErrValidation, model.AssetTypeVideo, model.AssetTypeAudio)
	}

	asset := &model.MediaAsset{
		Title:   title,
		Type:    input.Type,
		FileURL: input.FileURL,
	}
	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return asset, nil
}

func (s *mediaService) GetAsset(ctx context.Context, id uint) (*model.MediaAsset, error) {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return asset, nil
}

func (s *mediaService) ListAssets(ctx context.Context, limit, offset int) ([]model.MediaAsset, error) {
	assets, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}
