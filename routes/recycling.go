package routes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/middleware"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/utils"
)

func SetupRecyclingRoutes(app *fiber.App) {
	app.Post("/api/recycling-processes", middleware.JWTMiddleware, createRecyclingProcess)
}

type recyclingProcessPayload struct {
	WasteDataID      uint    `json:"waste_data_id" validate:"required"`
	QuantityRecycled float64 `json:"quantity_recycled" validate:"required,gt=0"`
	RecycledDate     string  `json:"recycled_date" validate:"required"`
}

var (
	errWasteDataNotFound = errors.New("waste entry not found")
	errOverAllocated     = errors.New("recycled quantity exceeds remaining waste quantity")
)

// POST /api/recycling-processes
// Inserts the process row and bumps the parent's recycled quantity in one
// transaction. The guard lives in the UPDATE's WHERE clause so two
// concurrent submissions cannot both pass the check and over-allocate.
func createRecyclingProcess(c *fiber.Ctx) error {
	var body recyclingProcessPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload", "details": err.Error()})
	}
	recycledDate, err := time.Parse("2006-01-02", body.RecycledDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "recycled_date format must be YYYY-MM-DD"})
	}

	var process models.RecyclingProcess
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.WasteData
		err := wasteDataForTenant(tx, middleware.TenantID(c)).
			Where("waste_data.id = ?", body.WasteDataID).
			First(&entry).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errWasteDataNotFound
			}
			return err
		}

		res := tx.Model(&models.WasteData{}).
			Where("id = ? AND recycled_quantity + ? <= quantity + ?",
				entry.ID, body.QuantityRecycled, models.QuantityTolerance).
			Updates(map[string]interface{}{
				"recycled_quantity": gorm.Expr("recycled_quantity + ?", body.QuantityRecycled),
				"recycled_date":     recycledDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errOverAllocated
		}

		process = models.RecyclingProcess{
			WasteDataID:      entry.ID,
			QuantityRecycled: body.QuantityRecycled,
			RecycledDate:     recycledDate,
		}
		if err := tx.Create(&process).Error; err != nil {
			return err
		}

		// Recompute status from the updated row.
		var updated models.WasteData
		if err := tx.First(&updated, entry.ID).Error; err != nil {
			return err
		}
		return tx.Model(&updated).
			Update("status", models.StatusFor(updated.Quantity, updated.RecycledQuantity)).Error
	})

	switch {
	case errors.Is(err, errWasteDataNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Waste entry not found"})
	case errors.Is(err, errOverAllocated):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Recycled quantity exceeds the remaining waste quantity"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not record recycling process"})
	}

	var entry models.WasteData
	database.DB.Preload("RecyclingProcesses").First(&entry, process.WasteDataID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"process":    process,
		"waste_data": entry,
	})
}
