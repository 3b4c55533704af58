package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/integrations/translate"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/middleware"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/utils"
)

func SetupTranslateRoutes(app *fiber.App) {
	app.Post("/api/translate", middleware.JWTMiddleware, translateTexts)
}

type translatePayload struct {
	Texts  []string `json:"texts" validate:"required,min=1"`
	Target string   `json:"target" validate:"required,len=2"`
}

// POST /api/translate
// Thin proxy so the frontend never holds the translation API key.
func translateTexts(c *fiber.Ctx) error {
	var body translatePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "texts and a 2-letter target are required"})
	}

	client, err := translate.NewClientFromEnv()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Translation service not configured"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	translated, err := client.Translate(ctx, body.Texts, body.Target)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Translation failed"})
	}
	return c.JSON(fiber.Map{"translations": translated})
}
