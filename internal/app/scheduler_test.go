package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"booking-link-service/internal/calendly"
)

func TestPickEventType(t *testing.T) {
	cases := []struct {
		name       string
		eventTypes []calendly.EventType
		want       string
	}{
		{
			name: "slug match wins over everything",
			eventTypes: []calendly.EventType{
				{URI: "A", Name: "30 Minute Chat", Duration: 30, Slug: "long-chat"},
				{URI: "B", Name: "Intro", Duration: 60, Slug: "30min-meeting"},
			},
			want: "B",
		},
		{
			name: "name match when no slug matches",
			eventTypes: []calendly.EventType{
				{URI: "A", Name: "Hour Session", Duration: 60, Slug: "hour"},
				{URI: "B", Name: "Quick 30", Duration: 45, Slug: "quick"},
			},
			want: "B",
		},
		{
			name: "name match is case-insensitive",
			eventTypes: []calendly.EventType{
				{URI: "A", Name: "Hour Session", Duration: 60, Slug: "hour"},
				{URI: "B", Name: "CHAT FOR 30", Duration: 45, Slug: "chat"},
			},
			want: "B",
		},
		{
			name: "duration match when neither slug nor name matches",
			eventTypes: []calendly.EventType{
				{URI: "A", Name: "Hour Session", Duration: 60, Slug: "hour"},
				{URI: "B", Name: "Quick Chat", Duration: 30, Slug: "quick"},
			},
			want: "B",
		},
		{
			name: "falls back to first in provider order",
			eventTypes: []calendly.EventType{
				{URI: "A", Name: "Hour Session", Duration: 60, Slug: "hour"},
				{URI: "B", Name: "Long Session", Duration: 90, Slug: "long"},
			},
			want: "A",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// selection must be deterministic, so run it twice
			for i := 0; i < 2; i++ {
				if got := pickEventType(tc.eventTypes); got.URI != tc.want {
					t.Fatalf("picked %s, want %s", got.URI, tc.want)
				}
			}
		})
	}
}

func TestBuildDeepLink(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	req := ScheduleEventRequest{
		Date: "2025-03-10",
		Time: "2025-03-10T15:30:00Z",
		Invitee: Invitee{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
		},
	}

	want := "https://calendly.com/acct/ET1/2025-03-10T15%3A30%3A00Z?month=2025-03&date=2025-03-10&name=Ada%20Lovelace&email=ada%40example.com"
	// trailing slash on the booking URL must not produce a double slash
	if got := buildDeepLink("https://calendly.com/acct/ET1/", day, req); got != want {
		t.Fatalf("deep link mismatch:\n got %s\nwant %s", got, want)
	}
	if got := buildDeepLink("https://calendly.com/acct/ET1", day, req); got != want {
		t.Fatalf("deep link mismatch without trailing slash:\n got %s\nwant %s", got, want)
	}
}

func TestBuildDeepLinkMonthAndDateComeFromRequestDate(t *testing.T) {
	// date and time referring to different days are not reconciled;
	// month/date follow the date field
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	req := ScheduleEventRequest{
		Date:    "2025-04-01",
		Time:    "2025-03-10T15:30:00Z",
		Invitee: Invitee{Name: "Ada", Email: "ada@example.com"},
	}
	got := buildDeepLink("https://calendly.com/acct/ET1", day, req)
	want := "https://calendly.com/acct/ET1/2025-03-10T15%3A30%3A00Z?month=2025-04&date=2025-04-01&name=Ada&email=ada%40example.com"
	if got != want {
		t.Fatalf("deep link mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("2025-03-10")
	if err != nil || !d.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("parse bare date: %v %v", d, err)
	}
	if _, err := parseDay("2025-03-10T12:00:00Z"); err != nil {
		t.Fatalf("parse RFC3339 date: %v", err)
	}
	if _, err := parseDay("not-a-date"); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

// stubProvider fakes the three Calendly endpoints the orchestrator
// touches and counts calls per endpoint.
type stubProvider struct {
	eventTypesJSON string
	linkStatus     int
	linkJSON       string

	userCalls atomic.Int64
	listCalls atomic.Int64
	linkCalls atomic.Int64
}

func (s *stubProvider) server(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users/me":
			s.userCalls.Add(1)
			w.Write([]byte(`{"resource":{"uri":"https://api.calendly.com/users/U1","name":"Acct","slug":"acct","email":"acct@example.com","scheduling_url":"https://calendly.com/acct"}}`))
		case "/event_types":
			s.listCalls.Add(1)
			w.Write([]byte(s.eventTypesJSON))
		case "/scheduling_links":
			s.linkCalls.Add(1)
			status := s.linkStatus
			if status == 0 {
				status = http.StatusCreated
			}
			w.WriteHeader(status)
			w.Write([]byte(s.linkJSON))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
}

func newTestApp(server *httptest.Server) *App {
	return &App{
		Calendly: calendly.New(calendly.Config{BaseURL: server.URL, Token: "test-token"}),
	}
}

func TestScheduleEventEndToEnd(t *testing.T) {
	stub := &stubProvider{
		eventTypesJSON: `{"collection":[{"uri":"ET1","name":"30 Minute Meeting","duration":30,"slug":"30min-meeting","scheduling_url":"https://calendly.com/acct/30min-meeting"}]}`,
		linkJSON:       `{"resource":{"booking_url":"https://calendly.com/acct/ET1/","expires_at":"2025-03-10T17:30:00Z"}}`,
	}
	server := stub.server(t)
	defer server.Close()

	req := ScheduleEventRequest{
		Date:    "2025-03-10",
		Time:    "2025-03-10T15:30:00Z",
		Invitee: Invitee{Name: "Ada Lovelace", Email: "ada@example.com"},
	}
	day, err := parseDay(req.Date)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}

	result, err := newTestApp(server).ScheduleEvent(context.Background(), day, req)
	if err != nil {
		t.Fatalf("schedule event: %v", err)
	}
	want := "https://calendly.com/acct/ET1/2025-03-10T15%3A30%3A00Z?month=2025-03&date=2025-03-10&name=Ada%20Lovelace&email=ada%40example.com"
	if result.BookingURL != want {
		t.Fatalf("booking url mismatch:\n got %s\nwant %s", result.BookingURL, want)
	}
	if result.ExpiresAt != "2025-03-10T17:30:00Z" {
		t.Fatalf("expected provider-echoed expiry, got %q", result.ExpiresAt)
	}
	if stub.userCalls.Load() != 1 || stub.listCalls.Load() != 1 || stub.linkCalls.Load() != 1 {
		t.Fatalf("expected one call per step, got user=%d list=%d link=%d",
			stub.userCalls.Load(), stub.listCalls.Load(), stub.linkCalls.Load())
	}
}

func TestScheduleEventNoEventTypes(t *testing.T) {
	stub := &stubProvider{eventTypesJSON: `{"collection":[]}`}
	server := stub.server(t)
	defer server.Close()

	req := ScheduleEventRequest{
		Date:    "2025-03-10",
		Time:    "2025-03-10T15:30:00Z",
		Invitee: Invitee{Name: "Ada", Email: "ada@example.com"},
	}
	_, err := newTestApp(server).ScheduleEvent(context.Background(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), req)
	if !errors.Is(err, ErrNoEventTypes) {
		t.Fatalf("expected ErrNoEventTypes, got %v", err)
	}
	if stub.linkCalls.Load() != 0 {
		t.Fatalf("expected no link-creation call, got %d", stub.linkCalls.Load())
	}
}
