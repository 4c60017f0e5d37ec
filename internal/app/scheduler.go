package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"booking-link-service/internal/calendly"
)

// schedulingLinkTTL is the fixed lifetime of every single-use link.
const schedulingLinkTTL = 2 * time.Hour

// ErrNoEventTypes means the account has zero active event types, so
// there is nothing to book against.
var ErrNoEventTypes = errors.New("account has no active event types")

// ScheduleEvent turns a booking request into a slot-pinned, pre-filled
// booking URL. The steps are strictly sequential: resolve the account,
// pick an event type, mint a fresh single-use link, then derive the
// deep link. A new link is created on every call, never reused.
func (a *App) ScheduleEvent(ctx context.Context, day time.Time, req ScheduleEventRequest) (*ScheduleEventResult, error) {
	user, err := a.Calendly.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve account: %w", err)
	}

	eventTypes, err := a.Calendly.ListEventTypes(ctx, user.URI)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	if len(eventTypes) == 0 {
		return nil, ErrNoEventTypes
	}
	target := pickEventType(eventTypes)

	link, err := a.Calendly.CreateSchedulingLink(ctx, target.URI, schedulingLinkTTL)
	if err != nil {
		return nil, fmt.Errorf("create scheduling link: %w", err)
	}

	return &ScheduleEventResult{
		BookingURL: buildDeepLink(link.BookingURL, day, req),
		ExpiresAt:  link.ExpiresAt,
	}, nil
}

// pickEventType selects the standard short meeting type: a slug
// containing "30min" wins, then a name containing "30", then an exact
// 30-minute duration, then whatever the provider listed first.
func pickEventType(eventTypes []calendly.EventType) calendly.EventType {
	for _, et := range eventTypes {
		if strings.Contains(et.Slug, "30min") {
			return et
		}
	}
	for _, et := range eventTypes {
		if strings.Contains(strings.ToLower(et.Name), "30") {
			return et
		}
	}
	for _, et := range eventTypes {
		if et.Duration == 30 {
			return et
		}
	}
	return eventTypes[0]
}

// buildDeepLink appends the chosen slot as a path segment and pre-fills
// the month/date calendar position plus the invitee's name and email.
// month and date come from the request's day, not the slot timestamp;
// the two are deliberately not cross-validated.
func buildDeepLink(bookingURL string, day time.Time, req ScheduleEventRequest) string {
	dayUTC := day.UTC()
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(bookingURL, "/"))
	b.WriteString("/")
	b.WriteString(escapeComponent(req.Time))
	b.WriteString("?month=")
	b.WriteString(dayUTC.Format("2006-01"))
	b.WriteString("&date=")
	b.WriteString(dayUTC.Format("2006-01-02"))
	b.WriteString("&name=")
	b.WriteString(escapeComponent(req.Invitee.Name))
	b.WriteString("&email=")
	b.WriteString(escapeComponent(req.Invitee.Email))
	return b.String()
}

// escapeComponent percent-encodes s for use in a URL path segment or
// query value, with spaces as %20 rather than "+".
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// parseDay accepts either a bare calendar date or a full RFC3339
// timestamp, matching what the calendar UI sends.
func parseDay(s string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}
