package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/klantroef/medialink/internal/app/service"
)

type stubStreamService struct {
	issueFn   func(ctx context.Context, assetID uint, sourceIP string) (*service.IssuedLink, error)
	resolveFn func(linkID string) (string, error)
}

func (s *stubStreamService) IssueLink(ctx context.Context, assetID uint, sourceIP string) (*service.IssuedLink, error) {
	if s.issueFn != nil {
		return s.issueFn(ctx, assetID, sourceIP)
	}
	return nil, nil
}

func (s *stubStreamService) ResolveLink(linkID string) (string, error) {
	if s.resolveFn != nil {
		return s.resolveFn(linkID)
	}
	return "", service.ErrLinkNotFound
}

func (s *stubStreamService) LiveLinks() int { return 0 }

func newStreamApp(streams service.StreamLinkService) *fiber.App {
	app := fiber.New()
	h := NewStreamHandler(StreamDeps{Streams: streams})
	h.Register(app)
	return app
}

func TestStreamHandler_Redirect(t *testing.T) {
	app := newStreamApp(&stubStreamService{
		resolveFn: func(linkID string) (string, error) {
			if linkID != "abc-123" {
				t.Fatalf("unexpected link id %q", linkID)
			}
			return "https://cdn.example.com/assets/launch.mp4", nil
		},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/media/stream/abc-123", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "https://cdn.example.com/assets/launch.mp4" {
		t.Fatalf("unexpected redirect target %q", got)
	}
}

func TestStreamHandler_NotFound(t *testing.T) {
	app := newStreamApp(&stubStreamService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/media/stream/missing", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestStreamHandler_Expired(t *testing.T) {
	app := newStreamApp(&stubStreamService{
		resolveFn: func(linkID string) (string, error) {
			return "", service.ErrLinkExpired
		},
	})

	req := httptest.NewRequest("GET", "/media/stream/stale", nil)
	req.Header.Set("Accept", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusGone {
		t.Fatalf("expected 410, got %d", resp.StatusCode)
	}
}

func TestStreamHandler_ExpiredBrowserPage(t *testing.T) {
	app := newStreamApp(&stubStreamService{
		resolveFn: func(linkID string) (string, error) {
			return "", service.ErrLinkExpired
		},
	})

	req := httptest.NewRequest("GET", "/media/stream/stale", nil)
	req.Header.Set("Accept", "text/html")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusGone {
		t.Fatalf("expected 410, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html response, got %q", ct)
	}
}
