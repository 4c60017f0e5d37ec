package app

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-link-service/internal/calendly"
)

// GET /user
func (a *App) GetUserHandler(c *gin.Context) {
	user, err := a.Calendly.CurrentUser(c.Request.Context())
	if err != nil {
		a.log().Error("fetch user failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user info"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /event-types?userUri=<uri>
func (a *App) ListEventTypesHandler(c *gin.Context) {
	userURI := c.Query("userUri")
	if userURI == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userUri is required"})
		return
	}
	eventTypes, err := a.Calendly.ListEventTypes(c.Request.Context(), userURI)
	if err != nil {
		a.log().Error("fetch event types failed", "user", userURI, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch event types"})
		return
	}
	c.JSON(http.StatusOK, eventTypes)
}

// GET /available-times?eventTypeUri=<uri>&date=<ISO date>
func (a *App) ListAvailableTimesHandler(c *gin.Context) {
	eventTypeURI := c.Query("eventTypeUri")
	dateStr := c.Query("date")
	if eventTypeURI == "" || dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventTypeUri and date are required"})
		return
	}
	day, err := parseDay(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	times, err := a.Calendly.ListAvailableTimes(c.Request.Context(), eventTypeURI, day)
	if err != nil {
		a.log().Error("fetch available times failed", "event_type", eventTypeURI, "date", dateStr, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch available times"})
		return
	}
	c.JSON(http.StatusOK, times)
}

// POST /schedule-event
func (a *App) ScheduleEventHandler(c *gin.Context) {
	var req ScheduleEventRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}
	day, err := parseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	result, err := a.ScheduleEvent(c.Request.Context(), day, req)
	if err != nil {
		a.log().Error("schedule event failed", "date", req.Date, "time", req.Time, "error", err)
		switch {
		case errors.Is(err, calendly.ErrAuth):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Calendly auth failed"})
		case errors.Is(err, calendly.ErrLinkCreation):
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not create booking link"})
		case errors.Is(err, calendly.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Calendly integration not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"booking_url": result.BookingURL,
		"expires_at":  result.ExpiresAt,
	})
}
