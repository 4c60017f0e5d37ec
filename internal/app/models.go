package app

// Invitee identifies who the booking is for; both fields are pre-filled
// into the deep link.
type Invitee struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// ScheduleEventRequest is the booking input: the selected calendar day,
// the full ISO timestamp of the chosen slot, and the invitee identity.
type ScheduleEventRequest struct {
	Date        string  `json:"date" binding:"required"`
	Time        string  `json:"time" binding:"required"`
	Invitee     Invitee `json:"invitee" binding:"required"`
	Description string  `json:"description,omitempty"`
}

// ScheduleEventResult carries the slot-pinned, pre-filled booking URL
// and the single-use link's expiry as echoed by Calendly.
type ScheduleEventResult struct {
	BookingURL string `json:"booking_url"`
	ExpiresAt  string `json:"expires_at"`
}
