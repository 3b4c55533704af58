package routes

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/middleware"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/services/ai"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/services/reportgen"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/utils"
)

func SetupReportRoutes(app *fiber.App) {
	ai.Init()
	reports := app.Group("/api/reports", middleware.JWTMiddleware)
	reports.Get("/", listReports)
	reports.Get("/config-data", getReportConfigData)
	reports.Post("/waste-types", getWasteTypesByIDs)
	reports.Post("/generate", generateReport)
	reports.Post("/generate-insights", generateInsights)
	reports.Get("/:id", getReport)
}

// GET /api/reports
func listReports(c *fiber.Ctx) error {
	var reports []models.Report
	if err := database.DB.
		Where("tenant_id = ?", middleware.TenantID(c)).
		Preload("Client").
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch reports"})
	}
	return c.JSON(reports)
}

// GET /api/reports/config-data
// Everything the report wizard needs up front.
func getReportConfigData(c *fiber.Ctx) error {
	tenantID := middleware.TenantID(c)

	var clients []models.Client
	if err := database.DB.Where("tenant_id = ?", tenantID).Order("company_name ASC").Find(&clients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch config data"})
	}
	var categories []models.WasteCategory
	if err := database.DB.Preload("Types").Order("name ASC").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch config data"})
	}
	var questions []models.ReportQuestionTemplate
	if err := database.DB.Order("id ASC").Find(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch config data"})
	}

	return c.JSON(fiber.Map{
		"clients":            clients,
		"waste_categories":   categories,
		"question_templates": questions,
	})
}

type wasteTypesPayload struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

// POST /api/reports/waste-types
func getWasteTypesByIDs(c *fiber.Ctx) error {
	var body wasteTypesPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ids is required"})
	}

	var types []models.WasteType
	if err := database.DB.Where("id IN ?", body.IDs).Find(&types).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch waste types"})
	}
	return c.JSON(types)
}

type reportQuestionPayload struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"`
}

type generateReportPayload struct {
	ClientID     uint                    `json:"client_id" validate:"required"`
	Title        string                  `json:"title"`
	StartDate    string                  `json:"start_date" validate:"required"`
	EndDate      string                  `json:"end_date" validate:"required"`
	WasteTypeIDs []uint                  `json:"waste_type_ids"`
	Questions    []reportQuestionPayload `json:"questions" validate:"dive"`
}

// POST /api/reports/generate
func generateReport(c *fiber.Ctx) error {
	var body generateReportPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id, start_date and end_date are required"})
	}
	start, end, err := parseDateRange(body.StartDate, body.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	in := reportgen.Input{
		ClientID:     body.ClientID,
		Title:        body.Title,
		StartDate:    start,
		EndDate:      end,
		WasteTypeIDs: body.WasteTypeIDs,
	}
	for _, q := range body.Questions {
		in.Questions = append(in.Questions, reportgen.Question{Text: q.Question, Answer: q.Answer})
	}

	report, err := reportgen.Generate(database.DB, middleware.TenantID(c), in)
	if err != nil {
		if errors.Is(err, reportgen.ErrClientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not generate report"})
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GET /api/reports/:id
// Stored KPIs plus a freshly queried itemized recycling log for the
// document appendix.
func getReport(c *fiber.Ctx) error {
	var report models.Report
	err := database.DB.
		Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).
		Preload("Client").
		Preload("Questions").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch report"})
	}

	log, err := reportgen.ItemizedLog(database.DB, &report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch recycling log"})
	}

	return c.JSON(fiber.Map{
		"report":        report,
		"recycling_log": log,
	})
}

type generateInsightsPayload struct {
	ClientID  uint     `json:"client_id" validate:"required"`
	StartDate string   `json:"start_date" validate:"required"`
	EndDate   string   `json:"end_date" validate:"required"`
	Questions []string `json:"questions" validate:"required,min=1"`
}

// POST /api/reports/generate-insights
func generateInsights(c *fiber.Ctx) error {
	var body generateInsightsPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := utils.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id, date range and questions are required"})
	}
	start, end, err := parseDateRange(body.StartDate, body.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 25*time.Second)
	defer cancel()

	answers, err := ai.Get().GenerateInsights(ctx, database.DB,
		middleware.TenantID(c), body.ClientID, start, end, body.Questions)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not generate insights"})
	}
	return c.JSON(fiber.Map{"answers": answers})
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("start_date format must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("end_date format must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end_date must not be before start_date")
	}
	// Include the whole end day.
	return start, end.Add(24*time.Hour - time.Nanosecond), nil
}
