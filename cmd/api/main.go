package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"nysc-services/internal/config"
	"nysc-services/internal/handler"
	"nysc-services/internal/middleware"
	"nysc-services/internal/repository"
	"nysc-services/internal/service"
	"nysc-services/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (letter upload will not work)", err)
	}

	repos := repository.NewRepositories(db, redis, cfg.DraftTTL)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	if err := services.Auth.EnsureAdmin(context.Background()); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Session-ID",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	app.Use(middleware.RequestInfo())
	app.Use(middleware.ClientSession(cfg.DraftTTL))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Get("/me", middleware.AuthRequired(authService), h.Auth.Me)

	pricing := v1.Group("/pricing")
	pricing.Get("/states", h.Pricing.ListStates)
	pricing.Get("/quote", h.Pricing.Quote)

	// Intake and payment run behind optional auth: guests can buy, accounts
	// get the request linked to their dashboard.
	services := v1.Group("/services", middleware.OptionalAuth(authService))
	services.Post("/direct-posting", h.ServiceRequest.SubmitDirectPosting)
	services.Post("/relocation", h.ServiceRequest.SubmitRelocation)
	services.Post("/ppa-change", h.ServiceRequest.SubmitPPAChange)
	services.Get("/draft", h.ServiceRequest.GetDraft)

	documents := v1.Group("/documents")
	documents.Post("/", h.Document.Upload)

	payments := v1.Group("/payments", middleware.OptionalAuth(authService))
	payments.Get("/methods", h.Payment.ListMethods)
	payments.Post("/checkout", h.Payment.Checkout)
	payments.Post("/bank-transfer", h.Payment.StartBankTransfer)
	payments.Post("/bank-transfer/confirm", h.Payment.ConfirmBankTransfer)

	protected := v1.Group("", middleware.AuthRequired(authService))

	requests := protected.Group("/requests")
	requests.Get("/", h.ServiceRequest.ListMine)
	requests.Get("/:requestId", h.ServiceRequest.GetMine)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:notificationId/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	admin := protected.Group("/admin", middleware.RequireAdmin())
	admin.Get("/requests", h.Admin.ListRequests)
	admin.Get("/requests/export", h.Admin.ExportCSV)
	admin.Get("/requests/:requestId", h.Admin.GetRequest)
	admin.Get("/requests/:requestId/history", h.Admin.RequestHistory)
	admin.Post("/requests/:requestId/approve", h.Admin.Approve)
	admin.Post("/requests/:requestId/reject", h.Admin.Reject)
	admin.Get("/stats", h.Admin.Stats)
	admin.Get("/activity", h.Admin.RecentActivity)
	admin.Get("/documents/:documentId/download", h.Document.Download)
}
