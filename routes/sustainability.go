package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/integrations/worldbank"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/middleware"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/services/sustainability"
)

var sustainabilityService = sustainability.NewService(worldbank.NewClient())

func SetupSustainabilityRoutes(app *fiber.App) {
	app.Get("/api/global-sustainability", middleware.JWTMiddleware, getGlobalSustainability)
}

// GET /api/global-sustainability
// Cached proxy over the World Bank open data API.
func getGlobalSustainability(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	payload, err := sustainabilityService.Get(ctx)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Global sustainability data unavailable"})
	}
	return c.JSON(payload)
}
