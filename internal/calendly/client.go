package calendly

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultBaseURL = "https://api.calendly.com"
	defaultTimeout = 10 * time.Second

	// Calendly wants absolute ISO-8601 timestamps with millisecond precision.
	timeFormat = "2006-01-02T15:04:05.000Z07:00"
)

// Config controls how the Calendly client behaves.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client wraps the Calendly v2 REST endpoints used by the booking flow.
// Each operation is a single outbound call with no retry; failures
// surface to the caller.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a configured Client with sane defaults. An empty token is
// not an error here: every operation reports ErrNotConfigured before
// attempting network I/O.
func New(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	token := strings.TrimSpace(cfg.Token)
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			},
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

// CurrentUser fetches the authenticated account.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var out struct {
		Resource User `json:"resource"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &out); err != nil {
		var ae *APIError
		if errors.As(err, &ae) && (ae.StatusCode == http.StatusUnauthorized || ae.StatusCode == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: %w", ErrAuth, err)
		}
		return nil, err
	}
	return &out.Resource, nil
}

// ListEventTypes fetches the account's active event types.
func (c *Client) ListEventTypes(ctx context.Context, userURI string) ([]EventType, error) {
	q := url.Values{}
	q.Set("user", userURI)
	q.Set("active", "true")
	var out struct {
		Collection []EventType `json:"collection"`
	}
	if err := c.do(ctx, http.MethodGet, "/event_types", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Collection, nil
}

// ListAvailableTimes fetches open slots for one calendar day. When day
// is the current local day the window starts at "now" so already-passed
// slots are not offered; otherwise it starts at midnight. The window
// always ends at end-of-day. An empty collection is not an error.
func (c *Client) ListAvailableTimes(ctx context.Context, eventTypeURI string, day time.Time) ([]AvailableTime, error) {
	start, end := c.dayWindow(day)
	q := url.Values{}
	q.Set("event_type", eventTypeURI)
	q.Set("start_time", start.UTC().Format(timeFormat))
	q.Set("end_time", end.UTC().Format(timeFormat))
	var out struct {
		Collection []AvailableTime `json:"collection"`
	}
	if err := c.do(ctx, http.MethodGet, "/event_type_available_times", q, nil, &out); err != nil {
		return nil, err
	}
	if out.Collection == nil {
		return []AvailableTime{}, nil
	}
	return out.Collection, nil
}

// CreateSchedulingLink mints a single-use link scoped to the event
// type, expiring ttl from now. The returned expires_at is whatever the
// provider echoed back, not a recomputed value.
func (c *Client) CreateSchedulingLink(ctx context.Context, eventTypeURI string, ttl time.Duration) (*SchedulingLink, error) {
	payload := schedulingLinkRequest{
		MaxEventCount: 1,
		ExpiresAt:     c.now().Add(ttl).UTC().Format(timeFormat),
		Owner:         eventTypeURI,
		OwnerType:     "EventType",
	}
	var out struct {
		Resource SchedulingLink `json:"resource"`
	}
	if err := c.do(ctx, http.MethodPost, "/scheduling_links", nil, payload, &out); err != nil {
		var ae *APIError
		if errors.As(err, &ae) {
			c.logger.Error("calendly rejected scheduling link",
				"event_type", eventTypeURI,
				"status", ae.StatusCode,
				"body", ae.Body,
			)
			return nil, fmt.Errorf("%w: %w", ErrLinkCreation, err)
		}
		return nil, err
	}
	return &out.Resource, nil
}

// dayWindow returns the one-day availability window for day, evaluated
// in local time to match the caller's calendar.
func (c *Client) dayWindow(day time.Time) (time.Time, time.Time) {
	now := c.now()
	y, m, d := day.In(time.Local).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	if ny, nm, nd := now.In(time.Local).Date(); ny == y && nm == m && nd == d {
		start = now
	}
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.Local)
	return start, end
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	if c.token == "" {
		return ErrNotConfigured
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("calendly: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calendly: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("calendly: read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("calendly: decode response: %w", err)
		}
	}
	return nil
}
