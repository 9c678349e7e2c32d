package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/forecast-report/internal/api/http"
	"github.com/i474232898/forecast-report/internal/config"
	"github.com/i474232898/forecast-report/internal/report"
	"github.com/i474232898/forecast-report/internal/scheduler"
	"github.com/i474232898/forecast-report/internal/store"
	"github.com/i474232898/forecast-report/internal/weather"
	"github.com/i474232898/forecast-report/internal/weather/providers"
)

func main() {
	log.Printf("INFO: starting forecast-report")

	// Load configuration (flags win over env; .env is loaded inside).
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherProvider(httpClient, cfg.APIKey)
	svc := weather.NewService(provider)
	loc := cfg.Location()

	if !cfg.Serve {
		if err := runOnce(svc, loc, cfg.Output); err != nil {
			log.Printf("ERROR: processing failed: %v", err)
			os.Exit(1)
		}
		log.Printf("INFO: processing completed successfully")
		return
	}

	serve(cfg, svc, loc)
}

// runOnce performs a single fetch-aggregate-write run. On any failure no
// output file is produced so a report on disk is always complete.
func runOnce(svc *weather.Service, loc weather.Location, output string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rep, err := svc.Collect(ctx, loc)
	if err != nil {
		return err
	}

	if err := report.WriteFile(output, rep); err != nil {
		return err
	}

	log.Printf("INFO: report generated: %s", output)
	report.LogSummary(rep)
	return nil
}

// publisher is the serve-mode refresh pipeline: collect, keep in the
// in-memory history, rewrite the report file.
type publisher struct {
	svc     *weather.Service
	reports *store.MemoryStore
	output  string
}

func (p *publisher) Refresh(ctx context.Context, loc weather.Location) error {
	rep, err := p.svc.Collect(ctx, loc)
	if err != nil {
		return err
	}

	p.reports.Save(loc, time.Now().UTC(), rep)

	if err := report.WriteFile(p.output, rep); err != nil {
		return err
	}
	report.LogSummary(rep)
	return nil
}

func serve(cfg *config.AppConfig, svc *weather.Service, loc weather.Location) {
	reports := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)
	pub := &publisher{svc: svc, reports: reports, output: cfg.Output}

	// Initial run. In serve mode a failed fetch is logged, not fatal; the
	// scheduler retries on the next tick.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := pub.Refresh(ctx, loc); err != nil {
		log.Printf("ERROR: initial refresh failed for %s: %v", loc.Key(), err)
	}
	cancel()

	sched := scheduler.New(loc, cfg.RefreshInterval, pub)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "forecast-report",
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

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "forecast-report",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, reports)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
