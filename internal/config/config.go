package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/forecast-report/internal/weather"
)

var validate = validator.New()

// AppConfig is the resolved configuration for one invocation. Flags override
// environment variables; the environment (or a .env file) provides defaults.
type AppConfig struct {
	City    string `validate:"required"`
	Country string `validate:"required,len=2,alpha"`
	APIKey  string `validate:"required"`

	// Output is the path the JSON report is written to.
	Output string `validate:"required"`

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// Serve keeps the process alive, refreshing the report on an interval
	// and exposing it over HTTP.
	Serve           bool
	Port            string
	RefreshInterval time.Duration

	// In-memory report history retention (serve mode).
	StoreMaxHistory int
	StoreMaxAge     time.Duration
}

// Location returns the configured location.
func (c *AppConfig) Location() weather.Location {
	return weather.Location{
		City:    c.City,
		Country: c.Country,
	}
}

// Load parses flags and environment into an AppConfig. args is the command
// line without the program name (os.Args[1:]).
func Load(args []string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	fs := flag.NewFlagSet("forecast-report", flag.ContinueOnError)
	fs.StringVar(&cfg.City, "city", os.Getenv("WEATHER_LOCATION_CITY"), "city name")
	fs.StringVar(&cfg.Country, "country", os.Getenv("WEATHER_LOCATION_COUNTRY"), "ISO country code (2 letters)")
	fs.StringVar(&cfg.APIKey, "api-key", os.Getenv("OPENWEATHER_API_KEY"), "OpenWeatherMap API key (or OPENWEATHER_API_KEY)")
	fs.StringVar(&cfg.Output, "output", getenvDefault("REPORT_OUTPUT", "weather_forecast.json"), "output file path")
	fs.BoolVar(&cfg.Serve, "serve", false, "keep running: refresh periodically and serve reports over HTTP")
	fs.StringVar(&cfg.Port, "port", getenvDefault("PORT", "8080"), "HTTP port (serve mode)")

	refreshStr := fs.String("refresh", getenvDefault("REFRESH_INTERVAL", "1h"), "refresh interval (serve mode)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	refresh, err := time.ParseDuration(*refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}
	cfg.RefreshInterval = refresh

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 48)

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "48h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
