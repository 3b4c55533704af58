package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	defaultBaseURL     = "https://maps.googleapis.com"
	distanceMatrixPath = "/maps/api/distancematrix/json"
	defaultHTTPTimeout = 10 * time.Second

	mockMinKm = 10
	mockMaxKm = 100
)

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Distance is the result of a lookup. Mock is true when the value was
// substituted because the live lookup was unavailable.
type Distance struct {
	Km   float64 `json:"distance_km"`
	Mock bool    `json:"mock"`
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int64 `json:"value"` // meters
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

func NewClientFromEnv() *Client {
	baseURL := os.Getenv("GOOGLE_MAPS_API_BASE")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  os.Getenv("GOOGLE_MAPS_API_KEY"),
		baseURL: baseURL,
		http: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// CalculateDistance looks up the driving distance between two addresses.
// Any failure (no key, network error, API error) falls back to a plausible
// random distance so the caller's flow is never blocked.
func (c *Client) CalculateDistance(ctx context.Context, origin, destination string) Distance {
	km, err := c.lookup(ctx, origin, destination)
	if err != nil {
		return Distance{Km: mockDistanceKm(), Mock: true}
	}
	return Distance{Km: km}
}

func (c *Client) lookup(ctx context.Context, origin, destination string) (float64, error) {
	if c.apiKey == "" {
		return 0, errors.New("GOOGLE_MAPS_API_KEY not set")
	}

	params := url.Values{}
	params.Set("origins", origin)
	params.Set("destinations", destination)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+distanceMatrixPath+"?"+params.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("distance matrix status %d", resp.StatusCode)
	}

	var out matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	if out.Status != "OK" || len(out.Rows) == 0 || len(out.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("distance matrix response status %q", out.Status)
	}
	element := out.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, fmt.Errorf("distance matrix element status %q", element.Status)
	}
	return float64(element.Distance.Value) / 1000, nil
}

func mockDistanceKm() float64 {
	return mockMinKm + rand.Float64()*(mockMaxKm-mockMinKm)
}
