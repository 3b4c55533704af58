package routes

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/middleware"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
)

func SetupWasteDataRoutes(app *fiber.App) {
	waste := app.Group("/api/waste-data", middleware.JWTMiddleware)
	waste.Post("/", createWasteData)
	waste.Get("/:clientId", listWasteData)
	waste.Put("/:id", updateWasteData)
	waste.Delete("/:id", deleteWasteData)
}

// wasteDataForTenant scopes waste entries to the caller's tenant through
// the owning client. Tenant id always comes from the token, never the body.
// Entries of soft-deleted clients are excluded.
func wasteDataForTenant(db *gorm.DB, tenantID uint) *gorm.DB {
	return db.Model(&models.WasteData{}).
		Joins("JOIN clients ON clients.id = waste_data.client_id AND clients.deleted_at IS NULL").
		Where("clients.tenant_id = ?", tenantID)
}

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

func saveImages(c *fiber.Ctx, files []*multipart.FileHeader) ([]string, error) {
	dir := uploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var urls []string
	for _, f := range files {
		name := uuid.NewString() + filepath.Ext(f.Filename)
		if err := c.SaveFile(f, filepath.Join(dir, name)); err != nil {
			return nil, err
		}
		urls = append(urls, "/uploads/"+name)
	}
	return urls, nil
}

func parseOptionalID(v string) *uint {
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil || n == 0 {
		return nil
	}
	id := uint(n)
	return &id
}

// POST /api/waste-data (multipart)
// Fields: clientId, wasteTypeId, quantity, unit, pickupDate, recycledDate?,
// distanceKm?, recyclingTechnologyId?, facilityId?, pickupLocationId?,
// vehicleTypeId?; files: wasteImages[], recyclingImages[].
func createWasteData(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Multipart form required"})
	}
	field := func(name string) string {
		if v, ok := form.Value[name]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	clientID, err := strconv.ParseUint(field("clientId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "clientId is required"})
	}
	wasteTypeID, err := strconv.ParseUint(field("wasteTypeId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "wasteTypeId is required"})
	}
	quantity, err := strconv.ParseFloat(field("quantity"), 64)
	if err != nil || quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity must be a positive number"})
	}
	unit := field("unit")
	if unit == "" {
		unit = "KG"
	}
	quantityKg, err := models.NormalizeToKg(quantity, unit)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unit must be one of KG, G, T, LB"})
	}
	pickupDate, err := time.Parse("2006-01-02", field("pickupDate"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "pickupDate is required, format YYYY-MM-DD"})
	}
	var recycledDate *time.Time
	if v := field("recycledDate"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "recycledDate format must be YYYY-MM-DD"})
		}
		recycledDate = &d
	}
	distanceKm, _ := strconv.ParseFloat(field("distanceKm"), 64)

	// The client must belong to the caller's tenant.
	var client models.Client
	err = database.DB.
		Where("id = ? AND tenant_id = ?", clientID, middleware.TenantID(c)).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch client"})
	}

	wasteImages, err := saveImages(c, form.File["wasteImages"])
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not store waste images"})
	}
	recyclingImages, err := saveImages(c, form.File["recyclingImages"])
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not store recycling images"})
	}

	entry := models.WasteData{
		ClientID:              client.ID,
		WasteTypeID:           uint(wasteTypeID),
		RecyclingTechnologyID: parseOptionalID(field("recyclingTechnologyId")),
		FacilityID:            parseOptionalID(field("facilityId")),
		PickupLocationID:      parseOptionalID(field("pickupLocationId")),
		VehicleTypeID:         parseOptionalID(field("vehicleTypeId")),
		Quantity:              quantityKg,
		RecycledQuantity:      0,
		Status:                models.StatusPartiallyRecycled,
		PickupDate:            pickupDate,
		RecycledDate:          recycledDate,
		DistanceKm:            distanceKm,
		WasteImages:           toJSONArray(wasteImages),
		RecyclingImages:       toJSONArray(recyclingImages),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create waste entry"})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GET /api/waste-data/:clientId
func listWasteData(c *fiber.Ctx) error {
	var client models.Client
	err := database.DB.
		Where("id = ? AND tenant_id = ?", c.Params("clientId"), middleware.TenantID(c)).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch client"})
	}

	var entries []models.WasteData
	if err := database.DB.
		Where("client_id = ?", client.ID).
		Preload("WasteType").
		Preload("RecyclingProcesses").
		Order("pickup_date DESC").
		Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch waste entries"})
	}
	return c.JSON(entries)
}

type wasteDataUpdatePayload struct {
	PickupDate   string  `json:"pickup_date"`
	RecycledDate string  `json:"recycled_date"`
	DistanceKm   float64 `json:"distance_km"`
}

// PUT /api/waste-data/:id
// Quantities are not editable after creation; recycling happens through
// recycling processes so the over-allocation guard cannot be bypassed.
func updateWasteData(c *fiber.Ctx) error {
	var body wasteDataUpdatePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}

	var entry models.WasteData
	err := wasteDataForTenant(database.DB, middleware.TenantID(c)).
		Where("waste_data.id = ?", c.Params("id")).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Waste entry not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch waste entry"})
	}

	updates := map[string]interface{}{}
	if body.PickupDate != "" {
		d, err := time.Parse("2006-01-02", body.PickupDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "pickup_date format must be YYYY-MM-DD"})
		}
		updates["pickup_date"] = d
	}
	if body.RecycledDate != "" {
		d, err := time.Parse("2006-01-02", body.RecycledDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "recycled_date format must be YYYY-MM-DD"})
		}
		updates["recycled_date"] = d
	}
	if body.DistanceKm > 0 {
		updates["distance_km"] = body.DistanceKm
	}
	if len(updates) == 0 {
		return c.JSON(entry)
	}

	if err := database.DB.Model(&entry).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update waste entry"})
	}
	return c.JSON(entry)
}

// DELETE /api/waste-data/:id
func deleteWasteData(c *fiber.Ctx) error {
	var entry models.WasteData
	err := wasteDataForTenant(database.DB, middleware.TenantID(c)).
		Where("waste_data.id = ?", c.Params("id")).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Waste entry not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch waste entry"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("waste_data_id = ?", entry.ID).Delete(&models.RecyclingProcess{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entry).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete waste entry"})
	}
	return c.JSON(fiber.Map{"message": "Waste entry deleted"})
}

func toJSONArray(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}
