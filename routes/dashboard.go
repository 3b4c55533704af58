package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/middleware"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
)

func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/api/dashboard", middleware.JWTMiddleware)
	dashboard.Get("/tenant", getTenantDashboard)
	dashboard.Get("/superadmin", middleware.RequireSuperAdmin, getSuperAdminDashboard)
}

func timeframeSince(timeframe string, now time.Time) time.Time {
	switch timeframe {
	case "week":
		return now.AddDate(0, 0, -7)
	case "year":
		return now.AddDate(-1, 0, 0)
	default: // month
		return now.AddDate(0, -1, 0)
	}
}

type wasteTypeBreakdown struct {
	WasteType  string  `json:"waste_type"`
	TotalKg    float64 `json:"total_kg"`
	RecycledKg float64 `json:"recycled_kg"`
}

type trendPoint struct {
	Date       string  `json:"date"`
	RecycledKg float64 `json:"recycled_kg"`
}

// GET /api/dashboard/tenant?timeframe=week|month|year
func getTenantDashboard(c *fiber.Ctx) error {
	tenantID := middleware.TenantID(c)
	since := timeframeSince(c.Query("timeframe", "month"), time.Now())

	var clientCount int64
	if err := database.DB.Model(&models.Client{}).
		Where("tenant_id = ?", tenantID).
		Count(&clientCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build dashboard"})
	}

	type totalsRow struct {
		TotalKg    float64
		RecycledKg float64
		EntryCount int64
	}
	var totals totalsRow
	if err := wasteDataForTenant(database.DB, tenantID).
		Where("waste_data.pickup_date >= ?", since).
		Select(`COALESCE(SUM(waste_data.quantity), 0) AS total_kg,
			COALESCE(SUM(waste_data.recycled_quantity), 0) AS recycled_kg,
			COUNT(*) AS entry_count`).
		Scan(&totals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build dashboard"})
	}

	var breakdown []wasteTypeBreakdown
	if err := wasteDataForTenant(database.DB, tenantID).
		Joins("JOIN waste_types ON waste_types.id = waste_data.waste_type_id").
		Where("waste_data.pickup_date >= ?", since).
		Group("waste_types.name").
		Select(`waste_types.name AS waste_type,
			COALESCE(SUM(waste_data.quantity), 0) AS total_kg,
			COALESCE(SUM(waste_data.recycled_quantity), 0) AS recycled_kg`).
		Scan(&breakdown).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build dashboard"})
	}

	var trend []trendPoint
	if err := database.DB.Model(&models.RecyclingProcess{}).
		Joins("JOIN waste_data ON waste_data.id = recycling_processes.waste_data_id").
		Joins("JOIN clients ON clients.id = waste_data.client_id AND clients.deleted_at IS NULL").
		Where("clients.tenant_id = ? AND recycling_processes.recycled_date >= ?", tenantID, since).
		Group("recycling_processes.recycled_date").
		Order("recycling_processes.recycled_date ASC").
		Select(`recycling_processes.recycled_date AS date,
			COALESCE(SUM(recycling_processes.quantity_recycled), 0) AS recycled_kg`).
		Scan(&trend).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build dashboard"})
	}

	var recent []models.WasteData
	if err := database.DB.
		Joins("JOIN clients ON clients.id = waste_data.client_id AND clients.deleted_at IS NULL").
		Where("clients.tenant_id = ?", tenantID).
		Preload("Client").
		Preload("WasteType").
		Order("waste_data.created_at DESC").
		Limit(10).
		Find(&recent).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build dashboard"})
	}

	diversion := 0.0
	if totals.TotalKg > 0 {
		diversion = totals.RecycledKg / totals.TotalKg * 100
	}

	return c.JSON(fiber.Map{
		"client_count":      clientCount,
		"entry_count":       totals.EntryCount,
		"total_waste_kg":    totals.TotalKg,
		"total_recycled_kg": totals.RecycledKg,
		"diversion_rate":    diversion,
		"by_waste_type":     breakdown,
		"recycling_trend":   trend,
		"recent_activity":   recent,
	})
}

type tenantSummary struct {
	TenantID    uint    `json:"tenant_id"`
	Name        string  `json:"name"`
	UserCount   int64   `json:"user_count"`
	ClientCount int64   `json:"client_count"`
	TotalKg     float64 `json:"total_kg"`
	RecycledKg  float64 `json:"recycled_kg"`
}

// GET /api/dashboard/superadmin
func getSuperAdminDashboard(c *fiber.Ctx) error {
	var tenantCount, userCount, clientCount int64
	if err := database.DB.Model(&models.Tenant{}).Count(&tenantCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build dashboard"})
	}
	if err := database.DB.Model(&models.User{}).Where("role <> ?", models.RoleSuperAdmin).Count(&userCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build dashboard"})
	}
	if err := database.DB.Model(&models.Client{}).Count(&clientCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build dashboard"})
	}

	var tenants []models.Tenant
	if err := database.DB.Order("created_at ASC").Find(&tenants).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build dashboard"})
	}

	summaries := make([]tenantSummary, 0, len(tenants))
	for _, t := range tenants {
		s := tenantSummary{TenantID: t.ID, Name: t.Name}
		database.DB.Model(&models.User{}).Where("tenant_id = ?", t.ID).Count(&s.UserCount)
		database.DB.Model(&models.Client{}).Where("tenant_id = ?", t.ID).Count(&s.ClientCount)
		wasteDataForTenant(database.DB, t.ID).
			Select(`COALESCE(SUM(waste_data.quantity), 0) AS total_kg,
				COALESCE(SUM(waste_data.recycled_quantity), 0) AS recycled_kg`).
			Scan(&s)
		summaries = append(summaries, s)
	}

	return c.JSON(fiber.Map{
		"tenant_count": tenantCount,
		"user_count":   userCount,
		"client_count": clientCount,
		"tenants":      summaries,
	})
}
