package routes

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/middleware"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/utils"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")
	auth.Post("/register", register)
	auth.Post("/login", login)
	auth.Get("/me", middleware.JWTMiddleware, me)
}

type registerPayload struct {
	Company  string `json:"company" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/register
// Creates a tenant and its first admin user. Intended for seeding and
// platform onboarding, not self-service signup.
func register(c *fiber.Ctx) error {
	var body registerPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload", "details": err.Error()})
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

	var user models.User
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		tenant := models.Tenant{
			Name:         body.Company,
			Slug:         utils.GenerateSlug(body.Company),
			ContactEmail: email,
			Plan:         "starter",
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		user = models.User{
			TenantID: &tenant.ID,
			Name:     body.Name,
			Email:    email,
			Password: hash,
			Role:     models.RoleAdmin,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		// A concurrent registration can slip past the lookup above; the
		// unique index on email is the authoritative check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create account"})
	}

	token, err := createToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not generate token"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}

// POST /api/auth/login
func login(c *fiber.Ctx) error {
	var body loginPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}

	// Unknown email and wrong password report the same message so the
	// endpoint cannot be used to enumerate accounts.
	var user models.User
	database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(body.Email))).First(&user)
	if user.ID == 0 || !utils.CheckPassword(user.Password, body.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := createToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not generate token"})
	}
	return c.JSON(fiber.Map{"token": token})
}

// GET /api/auth/me
func me(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

func createToken(user models.User) (string, error) {
	var tenantID uint
	if user.TenantID != nil {
		tenantID = *user.TenantID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   user.ID,
		"tenant_id": tenantID,
		"role":      user.Role,
		"email":     user.Email,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
