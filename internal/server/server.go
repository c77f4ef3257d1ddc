// Package server contains the HTTP handlers for the lost-and-found API.
package server

import (
	"context"
	"fmt"
	"time"

	"lostfound/internal/config"
	"lostfound/internal/middleware"
	"lostfound/internal/repository"
	"lostfound/internal/seed"
	"lostfound/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          store.Store
	promMiddleware *fiberprometheus.FiberPrometheus
	posts          repository.PostRepository
	identity       repository.IdentityStore
	convs          repository.ConversationRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("store open failed: %w", err)
	}
	return NewServerWithStore(cfg, st), nil
}

// NewServerWithStore creates a Server over an already-opened store. Use
// this in tests or when a bootstrap layer establishes the store itself.
func NewServerWithStore(cfg *config.Config, st store.Store) *Server {
	return &Server{
		config:         cfg,
		store:          st,
		promMiddleware: middleware.InitMetrics("lostfound-api"),
		posts:          repository.NewPostRepository(st, seed.Posts),
		identity:       repository.NewIdentityStore(st, cfg.InstitutionDomain),
		convs:          repository.NewConversationRepository(st),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Structured logging middleware (after requestid)
	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)
	auth.Post("/logout", s.Logout)
	auth.Get("/me", s.Me)

	// Post routes. Specific /:id/:resource routes before generic /:id.
	posts := api.Group("/posts")
	posts.Get("/", s.ListPosts)
	posts.Post("/", s.CreatePost)
	posts.Get("/mine", s.MyPosts)
	posts.Get("/:id/messages", s.GetMessages)
	posts.Post("/:id/messages", s.SendDetailMessage)
	posts.Post("/:id/report", s.ReportPost)
	posts.Get("/:id/report", s.ReportStatus)
	posts.Get("/:id", s.GetPost)

	// Conversation routes (aggregated messages surface)
	convs := api.Group("/conversations")
	convs.Get("/", s.ListConversations)
	convs.Post("/:id/messages", s.SendConversationMessage)
}

// LivenessCheck handles GET /health/live.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck handles GET /health/ready. Readiness means the backing
// store answers a read.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if _, _, err := s.store.Get(ctx, "health_probe"); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
