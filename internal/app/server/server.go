package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klantroef/medialink/internal/app/service"
	inthttp "github.com/klantroef/medialink/internal/http/handler"
	"github.com/klantroef/medialink/internal/http/middleware"
	httpUtil "github.com/klantroef/medialink/internal/http/util"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies bundles infrastructure dependencies required by the HTTP server.
type Dependencies struct {
	Logger    *zap.Logger
	Postgres  *pgxpool.Pool
	Redis     *redis.Client
	NATS      *nats.Conn
	JetStream nats.JetStreamContext
	Auth      service.AuthService
	Media     service.MediaService
	Views     service.ViewService
	Streams   service.StreamLinkService
	Tokens    *httpUtil.JWTManager
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates a new HTTP server instance with default routes.
func New(deps Dependencies) *Server {
	app := fiber.New()

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerRoutes()
	return s
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerRoutes() {
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Recovery(s.deps.Logger))
	s.app.Use(middleware.Logger(s.deps.Logger))
	s.app.Use(middleware.CORS())

	// Credential endpoints are the only rate-limited surface; link issuance
	// is deliberately left unthrottled.
	if s.deps.Redis != nil {
		s.app.Use("/api/auth", middleware.RateLimit(s.deps.Redis, middleware.DefaultRateLimitConfig(), s.deps.Logger))
	}

	apiHandler := inthttp.NewAPIHandler(inthttp.APIDeps{
		Logger:  s.deps.Logger,
		Auth:    s.deps.Auth,
		Media:   s.deps.Media,
		Views:   s.deps.Views,
		Streams: s.deps.Streams,
	})
	apiHandler.Register(s.app, middleware.Auth(s.deps.Tokens))

	streamHandler := inthttp.NewStreamHandler(inthttp.StreamDeps{
		Logger:  s.deps.Logger,
		Streams: s.deps.Streams,
	})
	streamHandler.Register(s.app)
}
