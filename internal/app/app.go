package app

import (
	"log/slog"

	"booking-link-service/internal/calendly"
)

// App wires the Calendly client into the HTTP handlers.
type App struct {
	Calendly *calendly.Client
	Logger   *slog.Logger
}

func (a *App) log() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}
