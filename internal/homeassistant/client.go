// Package homeassistant is a minimal client for the Home Assistant REST
// API, covering the two calls the publisher needs: listing a calendar's
// events and creating one.
package homeassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnauthorized reports that Home Assistant rejected the access token.
var ErrUnauthorized = errors.New("home assistant rejected the access token")

// Event is one event on a calendar entity, as the calendar API returns it.
type Event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
}

// EventTime is either a clock time or a whole day, matching the API's
// two start/end shapes.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// CreateRequest describes an event to create on a calendar entity.
type CreateRequest struct {
	EntityID    string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

// Client talks to a Home Assistant instance.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new Home Assistant client. baseURL is the instance
// root, e.g. http://homeassistant.local:8123.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Configured reports whether the client has both a base URL and a token.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.token != ""
}

// ListEvents returns the calendar entity's events between start and end.
func (c *Client) ListEvents(ctx context.Context, entityID string, start, end time.Time) ([]Event, error) {
	u := fmt.Sprintf("%s/api/calendars/%s?start=%s&end=%s",
		c.baseURL, entityID,
		url.QueryEscape(start.Format(time.RFC3339)),
		url.QueryEscape(end.Format(time.RFC3339)))

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("parsing events: %w", err)
	}
	return events, nil
}

// CreateEvent creates an event through the calendar.create_event service.
func (c *Client) CreateEvent(ctx context.Context, r CreateRequest) error {
	body := map[string]string{
		"entity_id":   r.EntityID,
		"summary":     r.Summary,
		"description": r.Description,
	}
	if r.AllDay {
		// All-day events take bare dates, end exclusive.
		body["start_date"] = r.Start.Format("2006-01-02")
		body["end_date"] = r.End.Format("2006-01-02")
	} else {
		body["start_date_time"] = r.Start.Format("2006-01-02 15:04:05")
		body["end_date_time"] = r.End.Format("2006-01-02 15:04:05")
	}

	reqJSON, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	u := c.baseURL + "/api/services/calendar/create_event"
	req, err := http.NewRequestWithContext(ctx, "POST", u, bytes.NewReader(reqJSON))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}
