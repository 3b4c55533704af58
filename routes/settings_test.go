package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/database"
	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
)

func TestTenantProfileUpdate(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedTenantUser(t, "Acme Waste", "admin@acme.example", "ADMIN")

	resp := jsonRequest(t, app, "PUT", "/api/settings/profile", token, map[string]string{
		"name":          "Acme Waste GmbH",
		"contact_email": "office@acme.example",
		"phone":         "+49 30 1234567",
		"address":       "Recyclinghof 1, Berlin",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Acme Waste GmbH", body["name"])
	assert.Equal(t, "office@acme.example", body["contact_email"])

	resp = jsonRequest(t, app, "GET", "/api/settings/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "Acme Waste GmbH", body["name"])
}

func TestFacilityCRUD(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedTenantUser(t, "Acme Waste", "admin@acme.example", "ADMIN")

	resp := jsonRequest(t, app, "POST", "/api/settings/facilities", token, map[string]string{
		"name":    "North Depot",
		"address": "Industriestr. 5",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	id := created["ID"]

	resp = jsonRequest(t, app, "GET", "/api/settings/facilities", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = jsonRequest(t, app, "PUT", fmt.Sprintf("/api/settings/facilities/%v", id), token, map[string]string{
		"name": "North Depot II",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = jsonRequest(t, app, "DELETE", fmt.Sprintf("/api/settings/facilities/%v", id), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Facility{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestFacilityMissingName(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedTenantUser(t, "Acme Waste", "admin@acme.example", "ADMIN")

	resp := jsonRequest(t, app, "POST", "/api/settings/facilities", token, map[string]string{
		"address": "Industriestr. 5",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVehicleTypeCRUD(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedTenantUser(t, "Acme Waste", "admin@acme.example", "ADMIN")

	resp := jsonRequest(t, app, "POST", "/api/settings/vehicle-types", token, map[string]interface{}{
		"name":            "7.5t Truck",
		"emission_factor": 210.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	assert.InDelta(t, 210.0, created["emission_factor"].(float64), 0.001)

	resp = jsonRequest(t, app, "PUT", fmt.Sprintf("/api/settings/vehicle-types/%v", created["ID"]), token, map[string]interface{}{
		"name":            "7.5t Truck",
		"emission_factor": 195.0,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var vt models.VehicleType
	require.NoError(t, database.DB.First(&vt).Error)
	assert.InDelta(t, 195.0, vt.EmissionFactor, 0.001)
}

func TestSettingsTenantIsolation(t *testing.T) {
	app := setupTestApp(t)
	userA, tokenA := seedTenantUser(t, "Tenant A", "a@a.example", "ADMIN")
	_, tokenB := seedTenantUser(t, "Tenant B", "b@b.example", "ADMIN")

	facility := models.Facility{TenantID: *userA.TenantID, Name: "A's Depot"}
	require.NoError(t, database.DB.Create(&facility).Error)

	// B cannot see, edit or delete A's facility.
	resp := jsonRequest(t, app, "GET", "/api/settings/facilities", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = jsonRequest(t, app, "PUT", fmt.Sprintf("/api/settings/facilities/%d", facility.ID), tokenB, map[string]string{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = jsonRequest(t, app, "DELETE", fmt.Sprintf("/api/settings/facilities/%d", facility.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = jsonRequest(t, app, "PUT", fmt.Sprintf("/api/settings/facilities/%d", facility.ID), tokenA, map[string]string{
		"name": "A's Depot II",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
