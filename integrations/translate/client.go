package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL     = "https://translation.googleapis.com"
	translatePath      = "/language/translate/v2"
	defaultHTTPTimeout = 10 * time.Second
)

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

type translateRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("GOOGLE_TRANSLATE_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GOOGLE_TRANSLATE_API_KEY not set")
	}
	baseURL := os.Getenv("GOOGLE_TRANSLATE_API_BASE")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}, nil
}

// Translate converts the given texts to the target language, preserving order.
func (c *Client) Translate(ctx context.Context, texts []string, target string) ([]string, error) {
	payload := translateRequest{Q: texts, Target: target, Format: "text"}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, err
	}

	url := c.baseURL + translatePath + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("translate status %d", resp.StatusCode)
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	translated := make([]string, 0, len(out.Data.Translations))
	for _, t := range out.Data.Translations {
		translated = append(translated, t.TranslatedText)
	}
	if len(translated) != len(texts) {
		return nil, fmt.Errorf("expected %d translations, got %d", len(texts), len(translated))
	}
	return translated, nil
}
