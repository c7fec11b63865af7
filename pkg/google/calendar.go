package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rendetalje/friday/config"
	"github.com/rendetalje/friday/pkg/models"
)

const DefaultCalendarBaseURL = "https://www.googleapis.com/calendar/v3"

const calendarTimeZone = "Europe/Copenhagen"

var _ models.CalendarClient = &CalendarClient{}

// CalendarClient talks to the Google Calendar API for a single,
// configured calendar.
type CalendarClient struct {
	httpClient *http.Client
	tokens     *tokenSource
	baseURL    string
	calendarID string
}

func NewCalendarClient(cfg *config.Config) (*CalendarClient, error) {
	if cfg.Google.CalendarID == "" {
		return nil, fmt.Errorf("google calendar id is not set")
	}
	httpClient := NewRetryableHTTPClient(clientRetries, clientTimeout)
	tokens, err := newTokenSource(cfg, httpClient)
	if err != nil {
		return nil, err
	}
	return &CalendarClient{
		httpClient: httpClient,
		tokens:     tokens,
		baseURL:    DefaultCalendarBaseURL,
		calendarID: cfg.Google.CalendarID,
	}, nil
}

type calendarEventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type calendarEvent struct {
	ID          string            `json:"id,omitempty"`
	Summary     string            `json:"summary"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location,omitempty"`
	Start       calendarEventTime `json:"start"`
	End         calendarEventTime `json:"end"`
}

func (t calendarEventTime) parse() time.Time {
	if t.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return parsed
		}
	}
	if t.Date != "" {
		if parsed, err := time.Parse("2006-01-02", t.Date); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (e calendarEvent) toModel() models.CalendarEvent {
	return models.CalendarEvent{
		ID:          e.ID,
		Summary:     e.Summary,
		Description: e.Description,
		Location:    e.Location,
		Start:       e.Start.parse(),
		End:         e.End.parse(),
	}
}

func (c *CalendarClient) ListEvents(
	ctx context.Context,
	timeMin, timeMax time.Time,
) ([]models.CalendarEvent, error) {
	query := url.Values{
		"timeMin":      {timeMin.Format(time.RFC3339)},
		"timeMax":      {timeMax.Format(time.RFC3339)},
		"singleEvents": {"true"},
		"orderBy":      {"startTime"},
		"maxResults":   {"50"},
	}
	endpoint := fmt.Sprintf(
		"%s/calendars/%s/events?%s",
		c.baseURL, url.PathEscape(c.calendarID), query.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if err := c.tokens.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("calendar api error: %d - %s", resp.StatusCode, string(errorBody))
	}

	var payload struct {
		Items []calendarEvent `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	events := make([]models.CalendarEvent, len(payload.Items))
	for i, item := range payload.Items {
		events[i] = item.toModel()
	}
	return events, nil
}

// CreateEvent inserts an event. The request body never carries an
// attendees field, so Google sends no invitation emails.
func (c *CalendarClient) CreateEvent(
	ctx context.Context,
	event *models.CreateEventRequest,
) (*models.CalendarEvent, error) {
	body := calendarEvent{
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Start: calendarEventTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: calendarTimeZone,
		},
		End: calendarEventTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: calendarTimeZone,
		},
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, endpoint, bytes.NewReader(encoded),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.tokens.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("calendar api error: %d - %s", resp.StatusCode, string(errorBody))
	}

	var created calendarEvent
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, err
	}
	result := created.toModel()
	return &result, nil
}
