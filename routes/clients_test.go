package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCRUD(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedTenantUser(t, "Acme Waste", "admin@acme.example", "ADMIN")

	resp := jsonRequest(t, app, "POST", "/api/clients", token, map[string]string{
		"company_name": "Brewery Co",
		"contact_name": "Sam",
		"email":        "sam@brewery.example",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	id := created["ID"]
	require.NotNil(t, id)

	resp = jsonRequest(t, app, "PUT", fmt.Sprintf("/api/clients/%v", id), token, map[string]string{
		"company_name": "Brewery & Sons",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)
	assert.Equal(t, "Brewery & Sons", updated["company_name"])

	resp = jsonRequest(t, app, "DELETE", fmt.Sprintf("/api/clients/%v", id), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = jsonRequest(t, app, "GET", fmt.Sprintf("/api/clients/%v", id), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClientTenantIsolation(t *testing.T) {
	app := setupTestApp(t)
	userA, tokenA := seedTenantUser(t, "Tenant A", "a@a.example", "ADMIN")
	_, tokenB := seedTenantUser(t, "Tenant B", "b@b.example", "ADMIN")

	client := seedClient(t, *userA.TenantID, "A's Client")

	// Tenant B sees 404, not 403: existence is not confirmed across tenants.
	path := fmt.Sprintf("/api/clients/%d", client.ID)
	for _, method := range []string{"GET", "DELETE"} {
		resp := jsonRequest(t, app, method, path, tokenB, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, method)
	}
	resp := jsonRequest(t, app, "PUT", path, tokenB, map[string]string{"company_name": "stolen"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner still sees it untouched.
	resp = jsonRequest(t, app, "GET", path, tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "A's Client", body["company_name"])
}
