package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/integrations/maps"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/middleware"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/utils"
)

var mapsClient = maps.NewClientFromEnv()

func SetupLogisticsRoutes(app *fiber.App) {
	app.Post("/api/logistics/calculate-distance", middleware.JWTMiddleware, calculateDistance)
}

type distancePayload struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
}

// POST /api/logistics/calculate-distance
// Always answers: a failed or unconfigured live lookup degrades to a mock
// distance so the entry form is never blocked on the integration.
func calculateDistance(c *fiber.Ctx) error {
	var body distancePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "origin and destination are required"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	return c.JSON(mapsClient.CalculateDistance(ctx, body.Origin, body.Destination))
}
