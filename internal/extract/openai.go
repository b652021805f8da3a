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
	openaiAPIURL = "https://api.openai.com/v1/chat/completions"
	openaiModel  = "gpt-4o"
)

// OpenAIClient extracts menu data through OpenAI's chat completions API.
type OpenAIClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewOpenAI creates a new OpenAI menu extractor.
func NewOpenAI(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:     apiKey,
		apiURL:     openaiAPIURL,
		httpClient: &http.Client{},
	}
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

// Extract sends the PDF inline as a base64 file part and decodes the JSON
// the model returns.
func (c *OpenAIClient) Extract(ctx context.Context, pdf []byte, month time.Month, year int) ([]menu.Day, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	pdfBase64 := base64.StdEncoding.EncodeToString(pdf)

	reqBody := map[string]interface{}{
		"model": openaiModel,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": prompt(month, year),
					},
					{
						"type": "file",
						"file": map[string]string{
							"filename":  "menu.pdf",
							"file_data": "data:application/pdf;base64," + pdfBase64,
						},
					},
				},
			},
		},
		"max_tokens":      4000,
		"response_format": map[string]string{"type": "json_object"},
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

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
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing API response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	return decodeDays(apiResp.Choices[0].Message.Content)
}
