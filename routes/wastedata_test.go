package routes

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
)

func postWasteEntry(t *testing.T, app *fiber.App, token string, fields map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("wasteImages", "pickup.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/waste-data", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateWasteDataNormalizesUnits(t *testing.T) {
	app := setupTestApp(t)
	user, token := seedTenantUser(t, "Acme Waste", "admin@acme.example", "ADMIN")
	client := seedClient(t, *user.TenantID, "Brewery Co")

	cases := []struct {
		unit     string
		quantity string
		wantKg   float64
	}{
		{"KG", "100", 100},
		{"G", "2500", 2.5},
		{"T", "1.5", 1500},
		{"LB", "10", 4.53592},
	}

	for _, tc := range cases {
		resp := postWasteEntry(t, app, token, map[string]string{
			"clientId":    fmt.Sprintf("%d", client.ID),
			"wasteTypeId": "1",
			"quantity":    tc.quantity,
			"unit":        tc.unit,
			"pickupDate":  "2026-02-01",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, tc.unit)
		body := decodeBody(t, resp)
		assert.InDelta(t, tc.wantKg, body["quantity"].(float64), 0.0001, tc.unit)
		assert.Equal(t, models.StatusPartiallyRecycled, body["status"])
		assert.EqualValues(t, 0, body["recycled_quantity"])
	}
}

func TestCreateWasteDataRejectsUnknownUnit(t *testing.T) {
	app := setupTestApp(t)
	user, token := seedTenantUser(t, "Acme Waste", "admin@acme.example", "ADMIN")
	client := seedClient(t, *user.TenantID, "Brewery Co")

	resp := postWasteEntry(t, app, token, map[string]string{
		"clientId":    fmt.Sprintf("%d", client.ID),
		"wasteTypeId": "1",
		"quantity":    "10",
		"unit":        "STONE",
		"pickupDate":  "2026-02-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateWasteDataForForeignClient(t *testing.T) {
	app := setupTestApp(t)
	userA, _ := seedTenantUser(t, "Tenant A", "a@a.example", "ADMIN")
	_, tokenB := seedTenantUser(t, "Tenant B", "b@b.example", "ADMIN")
	client := seedClient(t, *userA.TenantID, "A's Client")

	resp := postWasteEntry(t, app, tokenB, map[string]string{
		"clientId":    fmt.Sprintf("%d", client.ID),
		"wasteTypeId": "1",
		"quantity":    "10",
		"unit":        "KG",
		"pickupDate":  "2026-02-01",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var count int64
	database.DB.Model(&models.WasteData{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestListWasteDataScopedToTenant(t *testing.T) {
	app := setupTestApp(t)
	userA, tokenA := seedTenantUser(t, "Tenant A", "a@a.example", "ADMIN")
	_, tokenB := seedTenantUser(t, "Tenant B", "b@b.example", "ADMIN")
	client := seedClient(t, *userA.TenantID, "A's Client")
	seedWasteEntry(t, client.ID, 50)

	resp := jsonRequest(t, app, "GET", fmt.Sprintf("/api/waste-data/%d", client.ID), tokenA, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = jsonRequest(t, app, "GET", fmt.Sprintf("/api/waste-data/%d", client.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeletedClientEntriesBecomeInaccessible(t *testing.T) {
	app := setupTestApp(t)
	user, token := seedTenantUser(t, "Acme Waste", "admin@acme.example", "ADMIN")
	client := seedClient(t, *user.TenantID, "Brewery Co")
	entry := seedWasteEntry(t, client.ID, 50)

	resp := jsonRequest(t, app, "DELETE", fmt.Sprintf("/api/clients/%d", client.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Entries of a removed client can no longer be edited or deleted.
	resp = jsonRequest(t, app, "PUT", fmt.Sprintf("/api/waste-data/%d", entry.ID), token, map[string]interface{}{
		"distance_km": 12.5,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = jsonRequest(t, app, "DELETE", fmt.Sprintf("/api/waste-data/%d", entry.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
