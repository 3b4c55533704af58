package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL     = "https://api.worldbank.org"
	defaultHTTPTimeout = 15 * time.Second
)

// Indicator codes aggregated into the global sustainability payload.
const (
	IndicatorCO2PerCapita = "EN.ATM.CO2E.PC"
	IndicatorRenewables   = "EG.FEC.RNEW.ZS"
	IndicatorUrbanPop     = "SP.URB.TOTL.IN.ZS"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// Point is one year's value for an indicator.
type Point struct {
	Country string  `json:"country"`
	Year    string  `json:"year"`
	Value   float64 `json:"value"`
}

func NewClient() *Client {
	baseURL := os.Getenv("WORLDBANK_API_BASE")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// FetchIndicator pulls a yearly series for an indicator. The API wraps the
// data in a two-element array: [metadata, rows].
func (c *Client) FetchIndicator(ctx context.Context, country, indicator string, fromYear, toYear int) ([]Point, error) {
	url := fmt.Sprintf("%s/v2/country/%s/indicator/%s?format=json&per_page=200&date=%d:%d",
		c.baseURL, country, indicator, fromYear, toYear)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("worldbank status %d", resp.StatusCode)
	}

	var envelope []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	if len(envelope) < 2 {
		return nil, fmt.Errorf("unexpected worldbank envelope of %d parts", len(envelope))
	}

	var rows []struct {
		Country struct {
			Value string `json:"value"`
		} `json:"country"`
		Date  string   `json:"date"`
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(envelope[1], &rows); err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(rows))
	for _, r := range rows {
		if r.Value == nil {
			continue
		}
		points = append(points, Point{
			Country: r.Country.Value,
			Year:    r.Date,
			Value:   *r.Value,
		})
	}
	return points, nil
}
