package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"studiodeck/internal/config"
	"studiodeck/internal/database"
	"studiodeck/internal/handlers"
	"studiodeck/internal/jobs"
	"studiodeck/internal/logging"
	"studiodeck/internal/middleware"
	"studiodeck/internal/services"
	"studiodeck/internal/storage"
	"studiodeck/pkg/auth"
)

func main() {
	logging.Init()

	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️  No .env file found, using environment variables")
	}

	cfg := config.Load()

	// MongoDB is required; there is no degraded mode without the catalog
	if cfg.MongoURI == "" {
		log.Fatal("❌ MONGODB_URI is required")
	}
	mongodb, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	if err := mongodb.Initialize(context.Background()); err != nil {
		log.Fatalf("❌ Failed to initialize MongoDB: %v", err)
	}
	log.Println("✅ MongoDB connected")

	// Redis backs the shared deck cache; the service runs without it
	var redisService *services.RedisService
	if cfg.RedisURL != "" {
		redisService, err = services.NewRedisService(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Redis unavailable, deck caching disabled: %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	} else {
		log.Println("⚠️ REDIS_URL not set, deck caching disabled")
	}

	// Blob storage for slide images; uploads are disabled without it
	var blobStore *storage.BlobStore
	if cfg.StorageBucket != "" {
		blobStore, err = storage.NewBlobStore(cfg)
		if err != nil {
			log.Printf("⚠️ Blob storage unavailable, uploads disabled: %v", err)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := blobStore.EnsureBucket(ctx); err != nil {
				log.Printf("⚠️ Failed to ensure storage bucket: %v", err)
			}
			cancel()
			log.Println("✅ Blob storage connected")
		}
	} else {
		log.Println("⚠️ STORAGE_BUCKET not set, uploads disabled")
	}

	metrics := services.InitMetrics()

	// Services
	projectService := services.NewProjectService(mongodb)
	pageService := services.NewPageService(mongodb, projectService)
	deckService := services.NewDeckService(projectService, redisService, metrics,
		time.Duration(cfg.DeckCacheTTLSeconds)*time.Second)

	// Admin gate; nil leaves admin routes open in development only
	var sessionGate *auth.SessionGate
	if cfg.AdminPassword != "" || cfg.AdminPasswordHash != "" {
		sessionGate, err = auth.NewSessionGate(cfg.JWTSecret, cfg.AdminPassword,
			cfg.AdminPasswordHash, time.Duration(cfg.SessionTTLHours)*time.Hour)
		if err != nil {
			log.Fatalf("❌ Failed to initialize admin gate: %v", err)
		}
		log.Println("✅ Admin gate initialized")
	} else {
		log.Println("⚠️ ADMIN_PASSWORD not set, admin gate disabled")
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler(mongodb, redisService)
	authHandler := handlers.NewAuthHandler(sessionGate)
	projectHandler := handlers.NewProjectHandler(projectService, blobStore)
	pageHandler := handlers.NewPageHandler(pageService, deckService)
	builderHandler := handlers.NewBuilderHandler(pageService, deckService)
	presentationHandler := handlers.NewPresentationHandler(pageService, deckService)
	uploadHandler := handlers.NewUploadHandler(blobStore)

	app := fiber.New(fiber.Config{
		AppName:      "StudioDeck v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    64 * 1024 * 1024, // three 20MB slide images plus form overhead
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	prometheus := fiberprometheus.New("studiodeck")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173,http://localhost:3000"
		log.Println("⚠️  ALLOWED_ORIGINS not set, using development defaults")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: allowedOrigins != "*",
	}))

	// Brute-force protection on the shared-password login
	loginLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("⚠️  [RATE-LIMIT] Login limit reached for %s", c.IP())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many login attempts. Please wait before trying again.",
			})
		},
	})

	// Public routes
	app.Get("/health", healthHandler.Handle)
	app.Get("/api/presentations/:slug", presentationHandler.Get)

	// Auth
	app.Post("/api/auth/login", loginLimiter, authHandler.Login)
	app.Post("/api/auth/logout", authHandler.Logout)
	app.Get("/api/auth/session", middleware.SessionMiddleware(sessionGate), authHandler.Session)

	// Admin routes
	admin := app.Group("/api", middleware.SessionMiddleware(sessionGate))

	admin.Get("/projects", projectHandler.List)
	admin.Post("/projects", projectHandler.Create)
	admin.Get("/projects/:id", projectHandler.Get)
	admin.Put("/projects/:id", projectHandler.Update)
	admin.Delete("/projects/:id", projectHandler.Delete)

	admin.Get("/pages", pageHandler.List)
	admin.Post("/pages", pageHandler.Create)
	admin.Get("/pages/:id", pageHandler.Get)
	admin.Put("/pages/:id", pageHandler.Update)
	admin.Delete("/pages/:id", pageHandler.Delete)

	admin.Post("/pages/:id/content/projects", builderHandler.AddProject)
	admin.Post("/pages/:id/content/breaks", builderHandler.AddBreak)
	admin.Put("/pages/:id/content/reorder", builderHandler.Reorder)
	admin.Put("/pages/:id/content/:itemId/slides", builderHandler.UpdateSlides)
	admin.Delete("/pages/:id/content/:itemId", builderHandler.DeleteItem)

	admin.Post("/uploads/slides", uploadHandler.Slides)
	admin.Delete("/uploads", uploadHandler.Delete)

	// Background jobs
	var scheduler *jobs.Scheduler
	if blobStore != nil {
		scheduler, err = jobs.NewScheduler()
		if err != nil {
			log.Printf("⚠️ Failed to create job scheduler: %v", err)
		} else {
			cleanup := jobs.NewTempUploadCleanupJob(blobStore,
				time.Duration(cfg.TempUploadMaxAgeHours)*time.Hour)
			if err := scheduler.Register("temp-upload-cleanup", 1*time.Hour, cleanup); err != nil {
				log.Printf("⚠️ Failed to register cleanup job: %v", err)
			}
			scheduler.Start()
		}
	}

	log.Printf("✅ Server ready on port %s", cfg.Port)
	log.Printf("📡 Health check: http://localhost:%s/health", cfg.Port)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		if scheduler != nil {
			scheduler.Stop()
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
		if redisService != nil {
			redisService.Close()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongodb.Close(ctx); err != nil {
			log.Printf("⚠️ Error closing MongoDB: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
