package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/klantroef/medialink/internal/app/service"
	"github.com/klantroef/medialink/internal/http/view"
	infraPrometheus "github.com/klantroef/medialink/internal/infra/prometheus"
	"go.uber.org/zap"
)

// StreamDeps groups dependencies required by streaming handlers.
type StreamDeps struct {
	Logger  *zap.Logger
	Streams service.StreamLinkService
}

// StreamHandler redeems streaming links on the public redirect surface.
type StreamHandler struct {
	logger  *zap.Logger
	streams service.StreamLinkService
}

// NewStreamHandler creates a stream handler with the provided dependencies.
func NewStreamHandler(deps StreamDeps) *StreamHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamHandler{
		logger:  logger,
		streams: deps.Streams,
	}
}

// Register wires streaming routes onto the provided router.
func (h *StreamHandler) Register(router fiber.Router) {
	router.Get("/", h.Health)
	router.Get("/health", h.Health)
	router.Get("/media/stream/:linkId", h.Stream)
}

// Health is a simple root endpoint so we know the service is running.
func (h *StreamHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "medialink",
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Stream handles GET /media/stream/:linkId and redirects to the real
// location while the link is within its TTL window.
func (h *StreamHandler) Stream(c *fiber.Ctx) error {
	linkID := c.Params("linkId")
	if linkID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing link id",
		})
	}

	target, err := h.streams.ResolveLink(linkID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			infraPrometheus.LinksResolved.WithLabelValues("not_found").Inc()
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "streaming link not found or expired",
			})
		case errors.Is(err, service.ErrLinkExpired):
			infraPrometheus.LinksResolved.WithLabelValues("expired").Inc()
			return h.renderExpired(c)
		default:
			h.logger.Error("failed to resolve streaming link", zap.Error(err), zap.String("link_id", linkID))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}
	}

	infraPrometheus.LinksResolved.WithLabelValues("ok").Inc()
	h.logger.Debug("redirecting streaming link", zap.String("link_id", linkID))
	return c.Redirect(target, fiber.StatusFound)
}

func (h *StreamHandler) renderExpired(c *fiber.Ctx) error {
	// Browsers get a small page; API clients get JSON.
	if c.Accepts("json", "html") == "html" {
		html, err := view.RenderExpiredPage(view.ExpiredPageData{
			Title:  "Streaming link expired",
			Reason: "This link was only valid for 10 minutes.",
		})
		if err != nil {
			h.logger.Error("failed to render expired page", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to render page",
			})
		}
		return c.Status(fiber.StatusGone).
			Type("html", "utf-8").
			SendString(html)
	}

	return c.Status(fiber.StatusGone).JSON(fiber.Map{
		"error": "streaming link has expired",
	})
}
