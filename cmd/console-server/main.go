package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dentadmin/console/internal/config"
	"github.com/dentadmin/console/internal/domain/appointment"
	"github.com/dentadmin/console/internal/domain/dashboard"
	"github.com/dentadmin/console/internal/domain/patient"
	"github.com/dentadmin/console/internal/domain/reports"
	"github.com/dentadmin/console/internal/domain/treatment"
	"github.com/dentadmin/console/internal/domain/user"
	"github.com/dentadmin/console/internal/platform/apiclient"
	"github.com/dentadmin/console/internal/platform/auth"
	"github.com/dentadmin/console/internal/platform/middleware"
	"github.com/dentadmin/console/internal/platform/session"
	"github.com/dentadmin/console/internal/view"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "console-server",
		Short: "Dental office admin console",
		Long:  "HTTP gateway that renders the dental office admin UI and proxies every data operation to the practice backend API.",
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the console server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe the backend API and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			client := &http.Client{Timeout: cfg.APIRequestTimeout()}
			resp, err := client.Get(cfg.APIBaseURL)
			if err != nil {
				return fmt.Errorf("backend %s unreachable: %w", cfg.APIBaseURL, err)
			}
			resp.Body.Close()
			fmt.Printf("backend %s reachable (status %d)\n", cfg.APIBaseURL, resp.StatusCode)
			return nil
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Backend API client
	api, err := apiclient.New(cfg.APIBaseURL, cfg.APIRequestTimeout(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build backend client")
	}
	logger.Info().Str("backend", cfg.APIBaseURL).Msg("backend client ready")

	// Sessions
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionCookie, cfg.SessionTTL(), cfg.IsProduction())

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))

	// Public surface
	e.Static("/static", "static")
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Everything else requires a session
	authed := e.Group("", session.Middleware(sessions))

	authHandler := auth.NewHandler(api, sessions, logger)
	authHandler.RegisterRoutes(e, authed)

	// Domain services
	patientSvc := patient.NewService(api)
	treatmentSvc := treatment.NewService(api)
	appointmentSvc := appointment.NewService(api)
	userSvc := user.NewService(api)
	dashboardSvc := dashboard.NewService(api, appointmentSvc)
	reportSvc := reports.NewService(api)

	// Sections and fragment routes
	sections := view.NewController()
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(sections)
	patient.NewHandler(patientSvc).RegisterRoutes(authed, sections)
	appointment.NewHandler(appointmentSvc, patientSvc, treatmentSvc).RegisterRoutes(authed, sections)
	treatment.NewHandler(treatmentSvc).RegisterRoutes(authed, sections)
	user.NewHandler(userSvc).RegisterRoutes(authed, sections)
	reports.NewHandler(reportSvc).RegisterRoutes(authed, sections)
	sections.RegisterRoutes(authed)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting console server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
