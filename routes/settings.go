package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/middleware"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/utils"
)

func SetupSettingsRoutes(app *fiber.App) {
	settings := app.Group("/api/settings", middleware.JWTMiddleware)
	settings.Get("/profile", getProfile)
	settings.Put("/profile", updateProfile)

	settings.Get("/facilities", listFacilities)
	settings.Post("/facilities", createFacility)
	settings.Put("/facilities/:id", updateFacility)
	settings.Delete("/facilities/:id", deleteFacility)

	settings.Get("/pickup-locations", listPickupLocations)
	settings.Post("/pickup-locations", createPickupLocation)
	settings.Put("/pickup-locations/:id", updatePickupLocation)
	settings.Delete("/pickup-locations/:id", deletePickupLocation)

	settings.Get("/vehicle-types", listVehicleTypes)
	settings.Post("/vehicle-types", createVehicleType)
	settings.Put("/vehicle-types/:id", updateVehicleType)
	settings.Delete("/vehicle-types/:id", deleteVehicleType)

	settings.Get("/technologies", listTechnologies)
	settings.Post("/technologies", createTechnology)
	settings.Put("/technologies/:id", updateTechnology)
	settings.Delete("/technologies/:id", deleteTechnology)
}

// GET /api/settings/profile
func getProfile(c *fiber.Ctx) error {
	var tenant models.Tenant
	err := database.DB.First(&tenant, middleware.TenantID(c)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tenant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch profile"})
	}
	return c.JSON(tenant)
}

type profilePayload struct {
	Name         string `json:"name" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// PUT /api/settings/profile
func updateProfile(c *fiber.Ctx) error {
	var body profilePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload", "details": err.Error()})
	}

	res := database.DB.Model(&models.Tenant{}).
		Where("id = ?", middleware.TenantID(c)).
		Updates(map[string]interface{}{
			"name":          body.Name,
			"contact_email": body.ContactEmail,
			"phone":         body.Phone,
			"address":       body.Address,
		})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update profile"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tenant not found"})
	}

	var tenant models.Tenant
	database.DB.First(&tenant, middleware.TenantID(c))
	return c.JSON(tenant)
}

type namedPayload struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
}

// --- Facilities

func listFacilities(c *fiber.Ctx) error {
	var items []models.Facility
	if err := database.DB.Where("tenant_id = ?", middleware.TenantID(c)).Order("name ASC").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch facilities"})
	}
	return c.JSON(items)
}

func createFacility(c *fiber.Ctx) error {
	var body namedPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	item := models.Facility{TenantID: middleware.TenantID(c), Name: body.Name, Address: body.Address}
	if err := database.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create facility"})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func updateFacility(c *fiber.Ctx) error {
	var body namedPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	res := database.DB.Model(&models.Facility{}).
		Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).
		Updates(map[string]interface{}{"name": body.Name, "address": body.Address})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update facility"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Facility not found"})
	}
	return c.JSON(fiber.Map{"message": "Facility updated"})
}

func deleteFacility(c *fiber.Ctx) error {
	res := database.DB.Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).Delete(&models.Facility{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete facility"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Facility not found"})
	}
	return c.JSON(fiber.Map{"message": "Facility deleted"})
}

// --- Pickup locations

func listPickupLocations(c *fiber.Ctx) error {
	var items []models.PickupLocation
	if err := database.DB.Where("tenant_id = ?", middleware.TenantID(c)).Order("name ASC").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch pickup locations"})
	}
	return c.JSON(items)
}

func createPickupLocation(c *fiber.Ctx) error {
	var body namedPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	item := models.PickupLocation{TenantID: middleware.TenantID(c), Name: body.Name, Address: body.Address}
	if err := database.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create pickup location"})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func updatePickupLocation(c *fiber.Ctx) error {
	var body namedPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	res := database.DB.Model(&models.PickupLocation{}).
		Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).
		Updates(map[string]interface{}{"name": body.Name, "address": body.Address})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update pickup location"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pickup location not found"})
	}
	return c.JSON(fiber.Map{"message": "Pickup location updated"})
}

func deletePickupLocation(c *fiber.Ctx) error {
	res := database.DB.Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).Delete(&models.PickupLocation{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete pickup location"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pickup location not found"})
	}
	return c.JSON(fiber.Map{"message": "Pickup location deleted"})
}

// --- Vehicle types

type vehicleTypePayload struct {
	Name           string  `json:"name" validate:"required"`
	EmissionFactor float64 `json:"emission_factor"`
}

func listVehicleTypes(c *fiber.Ctx) error {
	var items []models.VehicleType
	if err := database.DB.Where("tenant_id = ?", middleware.TenantID(c)).Order("name ASC").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch vehicle types"})
	}
	return c.JSON(items)
}

func createVehicleType(c *fiber.Ctx) error {
	var body vehicleTypePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	item := models.VehicleType{TenantID: middleware.TenantID(c), Name: body.Name, EmissionFactor: body.EmissionFactor}
	if err := database.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create vehicle type"})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func updateVehicleType(c *fiber.Ctx) error {
	var body vehicleTypePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	res := database.DB.Model(&models.VehicleType{}).
		Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).
		Updates(map[string]interface{}{"name": body.Name, "emission_factor": body.EmissionFactor})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update vehicle type"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle type not found"})
	}
	return c.JSON(fiber.Map{"message": "Vehicle type updated"})
}

func deleteVehicleType(c *fiber.Ctx) error {
	res := database.DB.Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).Delete(&models.VehicleType{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete vehicle type"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle type not found"})
	}
	return c.JSON(fiber.Map{"message": "Vehicle type deleted"})
}

// --- Recycling technologies

type technologyPayload struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func listTechnologies(c *fiber.Ctx) error {
	var items []models.RecyclingTechnology
	if err := database.DB.Where("tenant_id = ?", middleware.TenantID(c)).Order("name ASC").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch technologies"})
	}
	return c.JSON(items)
}

func createTechnology(c *fiber.Ctx) error {
	var body technologyPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	item := models.RecyclingTechnology{TenantID: middleware.TenantID(c), Name: body.Name, Description: body.Description}
	if err := database.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create technology"})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func updateTechnology(c *fiber.Ctx) error {
	var body technologyPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	res := database.DB.Model(&models.RecyclingTechnology{}).
		Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).
		Updates(map[string]interface{}{"name": body.Name, "description": body.Description})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update technology"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Technology not found"})
	}
	return c.JSON(fiber.Map{"message": "Technology updated"})
}

func deleteTechnology(c *fiber.Ctx) error {
	res := database.DB.Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).Delete(&models.RecyclingTechnology{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete technology"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Technology not found"})
	}
	return c.JSON(fiber.Map{"message": "Technology deleted"})
}
