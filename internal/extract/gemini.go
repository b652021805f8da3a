package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sfusd-lunch-menu/internal/menu"
)

const (
	geminiAPIURL = "https://generativelanguage.googleapis.com/v1beta"
	geminiModel  = "gemini-2.5-flash"
)

// GeminiClient extracts menu data through Google's Gemini API.
type GeminiClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewGemini creates a new Gemini menu extractor.
func NewGemini(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		apiURL:     geminiAPIURL,
		httpClient: &http.Client{},
	}
}

func (c *GeminiClient) Name() string {
	return "gemini"
}

// Extract sends the PDF inline and asks for a JSON response, then decodes
// the menu days the model returns.
func (c *GeminiClient) Extract(ctx context.Context, pdf []byte, month time.Month, year int) ([]menu.Day, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY environment variable not set")
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": prompt(month, year),
					},
					{
						"inline_data": map[string]string{
							"mime_type": "application/pdf",
							"data":      base64.StdEncoding.EncodeToString(pdf),
						},
					},
				},
			},
		},
		"generationConfig": map[string]string{
			"response_mime_type": "application/json",
		},
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.apiURL, geminiModel)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing API response: %w", err)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	return decodeDays(apiResp.Candidates[0].Content.Parts[0].Text)
}
