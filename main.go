package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("[WARN] JWT_SECRET is not set; tokens will be signed with an empty key")
	}

	database.ConnectDB()

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // waste/recycling photo uploads
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "wastetrack-api"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupClientRoutes(app)
	routes.SetupWasteDataRoutes(app)
	routes.SetupRecyclingRoutes(app)
	routes.SetupMasterDataRoutes(app)
	routes.SetupReportRoutes(app)
	routes.SetupSettingsRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupDashboardRoutes(app)
	routes.SetupLogisticsRoutes(app)
	routes.SetupSustainabilityRoutes(app)
	routes.SetupTranslateRoutes(app)

	// Uploaded images and the SPA build.
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	app.Static("/uploads", uploadDir)
	app.Static("/", "./public")

	port := os.Getenv("PORT")
	if port == "" {
		port = "3030"
	}

	go func() {
		log.Println("🚀 server listening on http://localhost:" + port)
		if err := app.Listen(":" + port); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
