// Package extract turns a menu PDF into structured menu data using an AI
// text-extraction provider. Two providers are supported and interchangeable;
// which one runs is a configuration choice.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sfusd-lunch-menu/internal/menu"
)

// Extractor extracts one month's menu days from a PDF document.
type Extractor interface {
	// Name returns the provider name used in configuration and logs.
	Name() string

	// Extract sends the document to the provider and returns the menu
	// days it reports, unvalidated.
	Extract(ctx context.Context, pdf []byte, month time.Month, year int) ([]menu.Day, error)
}

// ForProvider returns the extractor for a configured provider name.
func ForProvider(name, openaiKey, googleKey string) (Extractor, error) {
	switch name {
	case "openai":
		return NewOpenAI(openaiKey), nil
	case "gemini":
		return NewGemini(googleKey), nil
	}
	return nil, fmt.Errorf("unknown menu parser %q (want gemini or openai)", name)
}

// prompt builds the extraction instruction. Naming the month and year
// anchors dates the document only prints as day numbers.
func prompt(month time.Month, year int) string {
	return fmt.Sprintf(`Parse this SFUSD lunch menu PDF and extract the menu data.

Return a JSON array where each item has:
- "date": in ISO format "yyyy-mm-dd" (e.g., "2025-08-19")
- "food": array of food items found for that date

Extract all dates and their corresponding food items. Split food items by natural boundaries (newlines, meal separators, etc.).

The menu is for %s %d.`, month, year)
}

// decodeDays parses a provider's JSON payload into menu days. Providers in
// JSON mode sometimes wrap the array in a {"menu": [...]} object, and some
// fence the payload in markdown; both forms are accepted.
func decodeDays(content string) ([]menu.Day, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var days []menu.Day
	if err := json.Unmarshal([]byte(content), &days); err == nil {
		return days, nil
	}

	var wrapped struct {
		Menu []menu.Day `json:"menu"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err == nil && wrapped.Menu != nil {
		return wrapped.Menu, nil
	}

	return nil, fmt.Errorf("response is not a menu array (content: %s)", content)
}
