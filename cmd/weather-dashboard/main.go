package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/location"
	"github.com/i474232898/weather-dashboard/internal/render"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/telemetry"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

func main() {
	once := flag.Bool("once", false, "run a single fetch cycle, print the result and exit")
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls. A zero timeout keeps the
	// transport default.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	service := weather.NewService(
		providers.NewOpenMeteoProvider(httpClient, cfg.ForecastURL),
		providers.NewNominatimGeocoder(httpClient, cfg.GeocodingURL, cfg.UserAgent),
	)

	acquirer := location.NewAcquirer(newLocationSource(cfg), newConsent(cfg))
	machine := dashboard.NewMachine(acquirer, service, nil)

	machine.Subscribe(func(s dashboard.ViewState) {
		log.Printf("DEBUG: dashboard state -> %s", s.Status)
	})
	reporter := telemetry.New(cfg.AppInsightsKey)
	if reporter != nil {
		machine.Subscribe(reporter.Observe)
		defer reporter.Close(5 * time.Second)
	}

	if *once {
		state, _ := machine.Trigger(context.Background())
		if err := render.Text(os.Stdout, render.Build(state)); err != nil {
			log.Printf("ERROR: writing output: %v", err)
		}
		if state.Status != dashboard.StatusSuccess {
			reporter.Close(5 * time.Second)
			os.Exit(1)
		}
		return
	}

	// Optional periodic refresh.
	sched := scheduler.New(cfg.RefreshInterval, machine)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	httpapi.RegisterRoutes(app, machine, render.ImageOptions{FontPath: cfg.FontPath})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: dashboard listening on :%s", cfg.Port)

	// First load happens at startup, like opening the page.
	go func() {
		if _, err := machine.Trigger(context.Background()); err != nil {
			log.Printf("INFO: initial load skipped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func newLocationSource(cfg *config.AppConfig) location.Source {
	switch cfg.LocationSource {
	case config.SourceFixed:
		return location.Fixed{Coords: weather.Coordinates{Latitude: cfg.Latitude, Longitude: cfg.Longitude}}
	case config.SourceAddress:
		return location.NewAddressSource(cfg.GoogleAPIKey, cfg.AddressCity, cfg.AddressState, cfg.AddressCountry)
	case config.SourceIP:
		return location.NewIPSource(cfg.IPLookupURL, cfg.HTTPTimeout)
	default:
		return nil
	}
}

func newConsent(cfg *config.AppConfig) location.Consent {
	switch cfg.LocationPermission {
	case config.PermissionDenied:
		return location.Denied{}
	case config.PermissionPrompt:
		return location.NewPrompt(os.Stdin, os.Stderr)
	default:
		return location.Granted{}
	}
}
