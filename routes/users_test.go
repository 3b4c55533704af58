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

func TestUserCapPerTenant(t *testing.T) {
	app := setupTestApp(t)
	user, token := seedTenantUser(t, "Acme Waste", "admin@acme.example", "ADMIN")

	// The seeded admin occupies one of the five seats.
	for i := 2; i <= 5; i++ {
		resp := jsonRequest(t, app, "POST", "/api/users", token, map[string]string{
			"name":     fmt.Sprintf("Member %d", i),
			"email":    fmt.Sprintf("member%d@acme.example", i),
			"password": "password123",
			"role":     "MEMBER",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, "user %d", i)
	}

	resp := jsonRequest(t, app, "POST", "/api/users", token, map[string]string{
		"name":     "One Too Many",
		"email":    "overflow@acme.example",
		"password": "password123",
		"role":     "MEMBER",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	database.DB.Model(&models.User{}).Where("tenant_id = ?", *user.TenantID).Count(&count)
	assert.EqualValues(t, models.MaxUsersPerTenant, count)
}

func TestCannotCreateSuperAdmin(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedTenantUser(t, "Acme Waste", "admin@acme.example", "ADMIN")

	resp := jsonRequest(t, app, "POST", "/api/users", token, map[string]string{
		"name":     "Sneaky",
		"email":    "sneaky@acme.example",
		"password": "password123",
		"role":     "SUPER_ADMIN",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = jsonRequest(t, app, "POST", "/api/users", token, map[string]string{
		"name":     "Member",
		"email":    "member@acme.example",
		"password": "password123",
		"role":     "MEMBER",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)

	resp = jsonRequest(t, app, "PUT", fmt.Sprintf("/api/users/%v", created["ID"]), token, map[string]string{
		"role": "SUPER_ADMIN",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCannotDeleteOwnAccount(t *testing.T) {
	app := setupTestApp(t)
	user, token := seedTenantUser(t, "Acme Waste", "admin@acme.example", "ADMIN")

	resp := jsonRequest(t, app, "DELETE", fmt.Sprintf("/api/users/%d", user.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var still models.User
	assert.NoError(t, database.DB.First(&still, user.ID).Error)
}

func TestUserRoutesRequireAdmin(t *testing.T) {
	app := setupTestApp(t)
	_, memberToken := seedTenantUser(t, "Acme Waste", "member@acme.example", "MEMBER")

	resp := jsonRequest(t, app, "GET", "/api/users", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUserTenantIsolation(t *testing.T) {
	app := setupTestApp(t)
	userA, _ := seedTenantUser(t, "Tenant A", "a@a.example", "ADMIN")
	_, tokenB := seedTenantUser(t, "Tenant B", "b@b.example", "ADMIN")

	resp := jsonRequest(t, app, "DELETE", fmt.Sprintf("/api/users/%d", userA.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
