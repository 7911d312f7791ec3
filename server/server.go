package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/NextMind-AI/relay-go/relay"
)

// EventHandler runs one parsed webhook event to completion.
type EventHandler interface {
	Handle(ctx context.Context, event relay.Event) relay.Status
}

// SignatureValidator checks that a form webhook really comes from the SMS gateway.
type SignatureValidator interface {
	ValidateSignature(url string, params map[string]string, signature string) bool
}

type Config struct {
	RequestTimeout time.Duration
	// WebhookURL is the public URL the SMS gateway signs. Empty disables
	// signature checks.
	WebhookURL string
}

type Server struct {
	app       *fiber.App
	config    Config
	handler   EventHandler
	validator SignatureValidator
}

// New builds the HTTP surface. validator may be nil.
func New(config Config, handler EventHandler, validator SignatureValidator) *Server {
	server := &Server{
		config:    config,
		handler:   handler,
		validator: validator,
	}

	server.app = fiber.New(fiber.Config{
		AppName:      "relay-go",
		ErrorHandler: server.errorHandler,
	})

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start(port string) error {
	log.Info().Str("port", port).Msg("Starting relay server")

	return s.app.Listen(":"+port, fiber.ListenConfig{
		DisableStartupMessage: true,
	})
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
