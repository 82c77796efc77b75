package main

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"leadhub/config"
	"leadhub/middleware"
	"leadhub/routes"
	"leadhub/store"
	"leadhub/store/relational"
	"leadhub/store/supabase"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "LEADHUB: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize error reporting
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("⚠️ Sentry initialization failed: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Open the configured store backend
	var st *store.Store
	var err error
	switch config.AppConfig.StoreBackend {
	case "supabase":
		st, err = supabase.New(config.AppConfig)
	case "postgres", "sqlite":
		st, err = relational.Open(config.AppConfig)
	default:
		logger.Fatalf("Unknown store backend %q", config.AppConfig.StoreBackend)
	}
	if err != nil {
		logger.Fatalf("Failed to open %s store: %v", config.AppConfig.StoreBackend, err)
	}
	defer st.Close()
	logger.Printf("✅ %s store ready", config.AppConfig.StoreBackend)

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(app, st)

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
