package routes

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/middleware"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/utils"
)

func SetupUserRoutes(app *fiber.App) {
	users := app.Group("/api/users", middleware.JWTMiddleware, middleware.RequireAdmin)
	users.Get("/", listUsers)
	users.Post("/", createUser)
	users.Put("/:id", updateUser)
	users.Delete("/:id", deleteUser)
}

// GET /api/users
func listUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.
		Where("tenant_id = ?", middleware.TenantID(c)).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch users"})
	}
	return c.JSON(users)
}

type createUserPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

// POST /api/users
func createUser(c *fiber.Ctx) error {
	var body createUserPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload", "details": err.Error()})
	}
	if body.Role != models.RoleAdmin && body.Role != models.RoleMember {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Role must be ADMIN or MEMBER"})
	}

	tenantID := middleware.TenantID(c)

	var count int64
	if err := database.DB.Model(&models.User{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not count users"})
	}
	if count >= models.MaxUsersPerTenant {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User limit reached for this account"})
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	var existing models.User
	database.DB.Where("email = ?", email).First(&existing)
	if existing.ID != 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already registered"})
	}

	hash, err := utils.HashPassword(body.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
	}

	user := models.User{
		TenantID: &tenantID,
		Name:     body.Name,
		Email:    email,
		Password: hash,
		Role:     body.Role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		// A concurrent registration can slip past the lookup above; the
		// unique index on email is the authoritative check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create user"})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type updateUserPayload struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

// PUT /api/users/:id
func updateUser(c *fiber.Ctx) error {
	var body updateUserPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload", "details": err.Error()})
	}
	if body.Role != "" && body.Role != models.RoleAdmin && body.Role != models.RoleMember {
		// SUPER_ADMIN cannot be granted through the API.
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Role must be ADMIN or MEMBER"})
	}

	var user models.User
	err := database.DB.
		Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).
		First(&user).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	updates := map[string]interface{}{}
	if body.Name != "" {
		updates["name"] = body.Name
	}
	if body.Role != "" {
		updates["role"] = body.Role
	}
	if body.Password != "" {
		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
		}
		updates["password"] = hash
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update user"})
		}
	}
	return c.JSON(user)
}

// DELETE /api/users/:id
func deleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}
	if uint(id) == middleware.UserID(c) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot delete your own account"})
	}

	res := database.DB.
		Where("id = ? AND tenant_id = ?", id, middleware.TenantID(c)).
		Delete(&models.User{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete user"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
