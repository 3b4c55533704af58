package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDistanceMocksWithoutKey(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	client := NewClientFromEnv()

	for i := 0; i < 25; i++ {
		d := client.CalculateDistance(context.Background(), "Berlin", "Hamburg")
		assert.True(t, d.Mock)
		assert.GreaterOrEqual(t, d.Km, float64(mockMinKm))
		assert.LessOrEqual(t, d.Km, float64(mockMaxKm))
	}
}

func TestCalculateDistanceParsesMatrixResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, distanceMatrixPath, r.URL.Path)
		require.Equal(t, "Berlin", r.URL.Query().Get("origins"))
		require.Equal(t, "Hamburg", r.URL.Query().Get("destinations"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{"status": "OK", "distance": {"value": 289500}}]}]
		}`))
	}))
	defer server.Close()

	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	t.Setenv("GOOGLE_MAPS_API_BASE", server.URL)
	client := NewClientFromEnv()

	d := client.CalculateDistance(context.Background(), "Berlin", "Hamburg")
	assert.False(t, d.Mock)
	assert.Equal(t, 289.5, d.Km)
}

func TestCalculateDistanceFallsBackOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "rows": []}`))
	}))
	defer server.Close()

	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	t.Setenv("GOOGLE_MAPS_API_BASE", server.URL)
	client := NewClientFromEnv()

	d := client.CalculateDistance(context.Background(), "Berlin", "Hamburg")
	assert.True(t, d.Mock)
	assert.GreaterOrEqual(t, d.Km, float64(mockMinKm))
	assert.LessOrEqual(t, d.Km, float64(mockMaxKm))
}
