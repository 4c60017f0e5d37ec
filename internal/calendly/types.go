package calendly

// User is the authenticated Calendly account (GET /users/me resource).
type User struct {
	URI           string `json:"uri"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Email         string `json:"email"`
	SchedulingURL string `json:"scheduling_url"`
}

// EventType is one bookable meeting template owned by the account.
type EventType struct {
	URI           string `json:"uri"`
	Name          string `json:"name"`
	Duration      int    `json:"duration"`
	Slug          string `json:"slug"`
	SchedulingURL string `json:"scheduling_url"`
}

// AvailableTime is one open slot for an event type on a given day.
type AvailableTime struct {
	StartTime        string `json:"start_time"`
	InviteeStartTime string `json:"invitee_start_time"`
	Status           string `json:"status"`
}

// SchedulingLink is a single-use booking link; consumed after one
// completed booking or at expiry.
type SchedulingLink struct {
	BookingURL string `json:"booking_url"`
	ExpiresAt  string `json:"expires_at"`
}

type schedulingLinkRequest struct {
	MaxEventCount int    `json:"max_event_count"`
	ExpiresAt     string `json:"expires_at"`
	Owner         string `json:"owner"`
	OwnerType     string `json:"owner_type"`
}
