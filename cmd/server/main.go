package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"booking-link-service/internal/app"
	"booking-link-service/internal/calendly"
	"booking-link-service/internal/config"
	"booking-link-service/internal/server"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	if cfg.CalendlyToken == "" {
		logger.Warn("CALENDLY_TOKEN not set; Calendly endpoints will report a configuration error")
	}

	client := calendly.New(calendly.Config{
		BaseURL: cfg.CalendlyBaseURL,
		Token:   cfg.CalendlyToken,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	})
	appInstance := &app.App{Calendly: client, Logger: logger}

	router := gin.Default()
	if cfg.InboundAuthEnabled() {
		router.Use(app.AuthMiddleware(cfg.StaticTokens, cfg.JWTSecret))
	}

	api := router.Group("/api/calendly")
	{
		api.GET("/user", appInstance.GetUserHandler)
		api.GET("/event-types", appInstance.ListEventTypesHandler)
		api.GET("/available-times", appInstance.ListAvailableTimesHandler)
		api.POST("/schedule-event", appInstance.ScheduleEventHandler)
	}

	logger.Info("starting booking-link-service", "env", cfg.Env, "port", cfg.Port)
	server.Run(router, cfg.Port)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
