package middleware

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
)

// JWTMiddleware verifies the bearer token and attaches the caller's
// identity (user_id, tenant_id, role, email) to the request context.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization header"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	userID, _ := claims["user_id"].(float64)
	tenantID, _ := claims["tenant_id"].(float64)
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)

	c.Locals("user_id", uint(userID))
	c.Locals("tenant_id", uint(tenantID))
	c.Locals("role", role)
	c.Locals("email", email)
	return c.Next()
}

// RequireAdmin rejects callers that are not tenant admins.
func RequireAdmin(c *fiber.Ctx) error {
	if c.Locals("role") != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required"})
	}
	return c.Next()
}

// RequireSuperAdmin restricts a route to the platform super-admin.
func RequireSuperAdmin(c *fiber.Ctx) error {
	if c.Locals("role") != models.RoleSuperAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Super admin access required"})
	}
	return c.Next()
}

// TenantID returns the caller's tenant id set by JWTMiddleware.
func TenantID(c *fiber.Ctx) uint {
	id, _ := c.Locals("tenant_id").(uint)
	return id
}

// UserID returns the caller's user id set by JWTMiddleware.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}
