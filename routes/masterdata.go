package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/middleware"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
)

func SetupMasterDataRoutes(app *fiber.App) {
	app.Get("/api/master-data", middleware.JWTMiddleware, getMasterData)
}

// GET /api/master-data
// Static taxonomy plus the caller's tenant-scoped technologies and the
// report question templates.
func getMasterData(c *fiber.Ctx) error {
	var categories []models.WasteCategory
	if err := database.DB.Preload("Types").Order("name ASC").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch master data"})
	}

	var technologies []models.RecyclingTechnology
	if err := database.DB.
		Where("tenant_id = ?", middleware.TenantID(c)).
		Order("name ASC").
		Find(&technologies).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch master data"})
	}

	var questions []models.ReportQuestionTemplate
	if err := database.DB.Order("id ASC").Find(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch master data"})
	}

	return c.JSON(fiber.Map{
		"categories":         categories,
		"technologies":       technologies,
		"question_templates": questions,
	})
}
