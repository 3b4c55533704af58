package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/utils"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("UPLOAD_DIR", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	db, err := gorm.Open(
		sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"),
		&gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		},
	)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedMasterData(db))
	database.DB = db

	app := fiber.New()
	SetupAuthRoutes(app)
	SetupClientRoutes(app)
	SetupWasteDataRoutes(app)
	SetupRecyclingRoutes(app)
	SetupMasterDataRoutes(app)
	SetupReportRoutes(app)
	SetupSettingsRoutes(app)
	SetupUserRoutes(app)
	SetupDashboardRoutes(app)
	SetupLogisticsRoutes(app)
	SetupTranslateRoutes(app)
	return app
}

// seedTenantUser creates a tenant with one user and returns the user plus a
// valid bearer token.
func seedTenantUser(t *testing.T, name, email, role string) (models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	tenant := models.Tenant{Name: name, Slug: utils.GenerateSlug(name)}
	require.NoError(t, database.DB.Create(&tenant).Error)

	user := models.User{
		TenantID: &tenant.ID,
		Name:     name + " user",
		Email:    email,
		Password: hash,
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := createToken(user)
	require.NoError(t, err)
	return user, token
}

func seedSuperAdmin(t *testing.T, email string) (models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{Name: "Platform Admin", Email: email, Password: hash, Role: models.RoleSuperAdmin}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := createToken(user)
	require.NoError(t, err)
	return user, token
}

func seedClient(t *testing.T, tenantID uint, company string) models.Client {
	t.Helper()
	client := models.Client{TenantID: tenantID, CompanyName: company}
	require.NoError(t, database.DB.Create(&client).Error)
	return client
}

func jsonRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	return out
}
