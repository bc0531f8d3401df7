package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/klantroef/medialink/internal/app/model"
	"github.com/klantroef/medialink/internal/app/repository"
	"github.com/klantroef/medialink/internal/app/service"
	infraPrometheus "github.com/klantroef/medialink/internal/infra/prometheus"
	"go.uber.org/zap"
)

// APIDeps groups dependencies required by API handlers.
type APIDeps struct {
	Logger  *zap.Logger
	Auth    service.AuthService
	Media   service.MediaService
	Views   service.ViewService
	Streams service.StreamLinkService
}

// APIHandler implements the management and telemetry API endpoints.
type APIHandler struct {
	logger  *zap.Logger
	auth    service.AuthService
	media   service.MediaService
	views   service.ViewService
	streams service.StreamLinkService
}

// NewAPIHandler creates an API handler with the provided dependencies.
func NewAPIHandler(deps APIDeps) *APIHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		logger:  logger,
		auth:    deps.Auth,
		media:   deps.Media,
		views:   deps.Views,
		streams: deps.Streams,
	}
}

// Register wires API routes onto the provided router. authRequired guards
// the asset management and analytics endpoints; view logging and stream-url
// issuance stay public so players can call them without a session.
func (h *APIHandler) Register(router fiber.Router, authRequired fiber.Handler) {
	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.Post("/signup", h.Signup)
			auth.Post("/login", h.Login)
		}

		media := api.Group("/media")
		{
			media.Post("/", authRequired, h.CreateAsset)
			media.Get("/", authRequired, h.ListAssets)
			media.Get("/:id", authRequired, h.GetAsset)
			media.Post("/:id/view", h.RecordView)
			media.Get("/:id/analytics", authRequired, h.GetAnalytics)
			media.Get("/:id/views/live", authRequired, h.LiveViews)
			media.Get("/:id/stream-url", h.CreateStreamURL)
		}
	}
}

// SignupRequest represents the request body for creating an admin account.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup
func (h *APIHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	user, err := h.auth.Signup(h.reqCtx(c), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "user with this email already exists",
			})
		default:
			h.logger.Error("failed to create user", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create user",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user created successfully",
		"user_id": user.ID,
	})
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *APIHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	token, user, err := h.auth.Login(h.reqCtx(c), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid credentials",
			})
		}
		h.logger.Error("failed to log in user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to log in",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// CreateAssetRequest represents the request body for registering media.
type CreateAssetRequest struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	FileURL string `json:"file_url"`
}

// AssetResponse represents a media asset in API responses.
type AssetResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

func assetResponse(a *model.MediaAsset) AssetResponse {
	return AssetResponse{
		ID:        a.ID,
		Title:     a.Title,
		Type:      a.Type,
		FileURL:   a.FileURL,
		CreatedAt: a.CreatedAt,
	}
}

// CreateAsset handles POST /api/media
func (h *APIHandler) CreateAsset(c *fiber.Ctx) error {
	var req CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	asset, err := h.media.CreateAsset(h.reqCtx(c), service.CreateAssetInput{
		Title:   req.Title,
		Type:    req.Type,
		FileURL: req.FileURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("failed to create media asset", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create media asset",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "media asset created successfully",
		"media":   assetResponse(asset),
	})
}

// ListAssets handles GET /api/media
func (h *APIHandler) ListAssets(c *fiber.Ctx) error {
	limit := 20
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed := c.QueryInt("limit"); parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed := c.QueryInt("offset"); parsed >= 0 {
			offset = parsed
		}
	}

	assets, err := h.media.ListAssets(h.reqCtx(c), limit, offset)
	if err != nil {
		h.logger.Error("failed to list media assets", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list media assets",
		})
	}

	response := make([]AssetResponse, len(assets))
	for i := range assets {
		response[i] = assetResponse(&assets[i])
	}

	return c.JSON(fiber.Map{
		"media":  response,
		"limit":  limit,
		"offset": offset,
		"count":  len(response),
	})
}

// GetAsset handles GET /api/media/:id
func (h *APIHandler) GetAsset(c *fiber.Ctx) error {
	assetID, ok := h.assetID(c)
	if !ok {
		return h.badAssetID(c)
	}

	asset, err := h.media.GetAsset(h.reqCtx(c), assetID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return h.assetNotFound(c)
		}
		h.logger.Error("failed to get media asset", zap.Error(err), zap.Uint("asset_id", assetID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.JSON(fiber.Map{"media": assetResponse(asset)})
}

// RecordView handles POST /api/media/:id/view
func (h *APIHandler) RecordView(c *fiber.Ctx) error {
	assetID, ok := h.assetID(c)
	if !ok {
		return h.badAssetID(c)
	}

	now := time.Now()
	viewID, err := h.views.RecordView(h.reqCtx(c), assetID, c.IP(), now)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return h.assetNotFound(c)
		}
		h.logger.Error("failed to record view", zap.Error(err), zap.Uint("asset_id", assetID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to log view",
		})
	}

	infraPrometheus.ViewsRecorded.Inc()
	return c.JSON(fiber.Map{
		"message":   "view logged successfully",
		"view_id":   viewID,
		"media_id":  assetID,
		"ip":        c.IP(),
		"timestamp": now.UTC().Format(time.RFC3339),
	})
}

// GetAnalytics handles GET /api/media/:id/analytics
func (h *APIHandler) GetAnalytics(c *fiber.Ctx) error {
	assetID, ok := h.assetID(c)
	if !ok {
		return h.badAssetID(c)
	}

	snapshot, err := h.views.ComputeAnalytics(h.reqCtx(c), assetID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return h.assetNotFound(c)
		}
		h.logger.Error("failed to compute analytics", zap.Error(err), zap.Uint("asset_id", assetID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to compute analytics",
		})
	}

	return c.JSON(fiber.Map{"analytics": snapshot})
}

// LiveViews handles GET /api/media/:id/views/live
func (h *APIHandler) LiveViews(c *fiber.Ctx) error {
	assetID, ok := h.assetID(c)
	if !ok {
		return h.badAssetID(c)
	}

	count, err := h.views.LiveViews(h.reqCtx(c), assetID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return h.assetNotFound(c)
		}
		h.logger.Error("failed to read live views", zap.Error(err), zap.Uint("asset_id", assetID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read live views",
		})
	}

	return c.JSON(fiber.Map{
		"media_id":   assetID,
		"live_views": count,
	})
}

// CreateStreamURL handles GET /api/media/:id/stream-url
func (h *APIHandler) CreateStreamURL(c *fiber.Ctx) error {
	assetID, ok := h.assetID(c)
	if !ok {
		return h.badAssetID(c)
	}

	issued, err := h.streams.IssueLink(h.reqCtx(c), assetID, c.IP())
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return h.assetNotFound(c)
		}
		h.logger.Error("failed to issue streaming link", zap.Error(err), zap.Uint("asset_id", assetID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to generate streaming URL",
		})
	}

	infraPrometheus.LinksIssued.Inc()
	return c.JSON(fiber.Map{
		"message":    "streaming URL generated successfully",
		"stream_url": issued.PublicPath,
		"expires_at": issued.ExpiresAt.UTC().Format(time.RFC3339),
		"media": fiber.Map{
			"id":    issued.Asset.ID,
			"title": issued.Asset.Title,
			"type":  issued.Asset.Type,
		},
	})
}

func (h *APIHandler) assetID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *APIHandler) badAssetID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid media id",
	})
}

func (h *APIHandler) assetNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "media not found",
	})
}

func (h *APIHandler) reqCtx(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}
