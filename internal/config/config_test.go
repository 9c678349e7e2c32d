package config

import (
	"testing"
	"time"
)

func TestLoadFromFlags(t *testing.T) {
	cfg, err := Load([]string{
		"-city", "Paris",
		"-country", "FR",
		"-api-key", "secret",
		"-output", "out.json",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.City != "Paris" || cfg.Country != "FR" || cfg.APIKey != "secret" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Output != "out.json" {
		t.Fatalf("unexpected output path: %q", cfg.Output)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("expected default HTTP timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.RefreshInterval != time.Hour {
		t.Fatalf("expected default refresh interval, got %v", cfg.RefreshInterval)
	}
	if cfg.Serve {
		t.Fatal("serve should default to false")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WEATHER_LOCATION_CITY", "Lyon")
	t.Setenv("WEATHER_LOCATION_COUNTRY", "FR")
	t.Setenv("OPENWEATHER_API_KEY", "env-key")
	t.Setenv("REPORT_OUTPUT", "env.json")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("STORE_MAX_HISTORY", "7")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.City != "Lyon" || cfg.APIKey != "env-key" || cfg.Output != "env.json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.StoreMaxHistory != 7 {
		t.Fatalf("expected store history 7, got %d", cfg.StoreMaxHistory)
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("WEATHER_LOCATION_CITY", "Lyon")
	t.Setenv("WEATHER_LOCATION_COUNTRY", "FR")
	t.Setenv("OPENWEATHER_API_KEY", "env-key")

	cfg, err := Load([]string{"-city", "Paris"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.City != "Paris" {
		t.Fatalf("expected flag to win, got %q", cfg.City)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing city", []string{"-country", "FR", "-api-key", "k"}},
		{"missing api key", []string{"-city", "Paris", "-country", "FR"}},
		{"country too long", []string{"-city", "Paris", "-country", "FRA", "-api-key", "k"}},
		{"country not alphabetic", []string{"-city", "Paris", "-country", "F1", "-api-key", "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.args); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := Load([]string{"-city", "Paris", "-country", "FR", "-api-key", "k"})
	if err == nil {
		t.Fatal("expected error for invalid HTTP_TIMEOUT")
	}
}
