package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klantroef/medialink/internal/app/model"
	"github.com/klantroef/medialink/internal/app/repository"
	"go.uber.org/zap"
)

var (
	// ErrLinkNotFound signals that no streaming link with this id is held
	// (it never existed, or was already swept after expiry).
	ErrLinkNotFound = errors.New("streaming link not found")
	// ErrLinkExpired signals that the link existed but its TTL elapsed.
	ErrLinkExpired = errors.New("streaming link expired")
)

// IssuedLink is the caller-facing result of minting a streaming link.
type IssuedLink struct {
	LinkID     string
	PublicPath string
	ExpiresAt  time.Time
	Asset      *model.MediaAsset
}

// StreamLinkService mints time-boxed indirection links for asset playback
// and resolves them safely.
type StreamLinkService interface {
	IssueLink(ctx context.Context, assetID uint, sourceIP string) (*IssuedLink, error)
	ResolveLink(linkID string) (string, error)
	LiveLinks() int
}

type streamLinkService struct {
	assets repository.AssetRepository
	views  ViewService
	logger *zap.Logger
	filter *LinkFilter
	now    func() time.Time

	mu    sync.Mutex
	links map[string]*model.StreamingLink
}

// NewStreamLinkService returns an issuer backed by an in-memory link store.
// Each instance owns its own store, so tests can run against isolated ones.
func NewStreamLinkService(assets repository.AssetRepository, views ViewService, logger *zap.Logger) StreamLinkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &streamLinkService{
		assets: assets,
		views:  views,
		logger: logger,
		filter: NewLinkFilter(),
		now:    time.Now,
		links:  make(map[string]*model.StreamingLink),
	}
}

// IssueLink mints a fresh link for the asset. Issuance itself counts as a
// view, independent of any later redemption; a failed view append is logged
// and reported through metrics but does not block issuance.
func (s *streamLinkService) IssueLink(ctx context.Context, assetID uint, sourceIP string) (*IssuedLink, error) {
	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load asset: %w", err)
	}

	now := s.now()
	if _, err := s.views.RecordView(ctx, assetID, sourceIP, now); err != nil {
		// Losing a view event is non-fatal to the user-facing function.
		s.logger.Error("failed to record issuance view",
			zap.Uint("asset_id", assetID),
			zap.String("source_ip", sourceIP),
			zap.Error(err))
	}

	link := &model.StreamingLink{
		ID:        uuid.New().String(),
		AssetID:   assetID,
		TargetURL: asset.FileURL,
		IssuedAt:  now,
		ExpiresAt: now.Add(model.StreamLinkTTL),
	}

	s.mu.Lock()
	s.sweepLocked(now)
	s.links[link.ID] = link
	s.mu.Unlock()

	s.filter.Add(link.ID)

	s.logger.Debug("streaming link issued",
		zap.String("link_id", link.ID),
		zap.Uint("asset_id", assetID),
		zap.Time("expires_at", link.ExpiresAt))

	return &IssuedLink{
		LinkID:     link.ID,
		PublicPath: fmt.Sprintf("/media/stream/%s", link.ID),
		ExpiresAt:  link.ExpiresAt,
		Asset:      asset,
	}, nil
}

// ResolveLink returns the real location behind a link. The entry is removed
// on the first resolve that observes it expired; within the TTL window a
// link may be redeemed repeatedly.
func (s *streamLinkService) ResolveLink(linkID string) (string, error) {
	// Negative-lookup guard: ids that were never issued by this process
	// cannot be in the store, so skip the lock entirely.
	if !s.filter.MayContain(linkID) {
		return "", ErrLinkNotFound
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.links[linkID]
	if !ok {
		return "", ErrLinkNotFound
	}
	if link.Expired(now) {
		delete(s.links, linkID)
		return "", ErrLinkExpired
	}
	return link.TargetURL, nil
}

// LiveLinks reports how many links are currently held, expired or not.
func (s *streamLinkService) LiveLinks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links)
}

// sweepLocked removes every expired entry in a single pass. Callers must
// hold s.mu.
func (s *streamLinkService) sweepLocked(now time.Time) {
	for id, link := range s.links {
		if link.Expired(now) {
			delete(s.links, id)
		}
	}
}
