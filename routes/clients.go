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

func SetupClientRoutes(app *fiber.App) {
	clients := app.Group("/api/clients", middleware.JWTMiddleware)
	clients.Get("/", listClients)
	clients.Post("/", createClient)
	clients.Get("/:id", getClient)
	clients.Put("/:id", updateClient)
	clients.Delete("/:id", deleteClient)
}

type clientPayload struct {
	CompanyName string `json:"company_name" validate:"required"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Industry    string `json:"industry"`
}

// GET /api/clients
func listClients(c *fiber.Ctx) error {
	var clients []models.Client
	if err := database.DB.
		Where("tenant_id = ?", middleware.TenantID(c)).
		Order("company_name ASC").
		Find(&clients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch clients"})
	}
	return c.JSON(clients)
}

// POST /api/clients
func createClient(c *fiber.Ctx) error {
	var body clientPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload", "details": err.Error()})
	}

	client := models.Client{
		TenantID:    middleware.TenantID(c),
		CompanyName: body.CompanyName,
		ContactName: body.ContactName,
		Email:       body.Email,
		Phone:       body.Phone,
		Address:     body.Address,
		Industry:    body.Industry,
	}
	if err := database.DB.Create(&client).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create client"})
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GET /api/clients/:id
func getClient(c *fiber.Ctx) error {
	var client models.Client
	err := database.DB.
		Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch client"})
	}
	return c.JSON(client)
}

// PUT /api/clients/:id
func updateClient(c *fiber.Ctx) error {
	var body clientPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload", "details": err.Error()})
	}

	res := database.DB.Model(&models.Client{}).
		Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).
		Updates(map[string]interface{}{
			"company_name": body.CompanyName,
			"contact_name": body.ContactName,
			"email":        body.Email,
			"phone":        body.Phone,
			"address":      body.Address,
			"industry":     body.Industry,
		})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update client"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	}

	var client models.Client
	database.DB.Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).First(&client)
	return c.JSON(client)
}

// DELETE /api/clients/:id
func deleteClient(c *fiber.Ctx) error {
	res := database.DB.
		Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).
		Delete(&models.Client{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete client"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	}
	return c.JSON(fiber.Map{"message": "Client deleted"})
}
