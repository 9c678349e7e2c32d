package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/i474232898/forecast-report/internal/weather"
)

func testReport() weather.Report {
	return weather.Report{
		LocationName:   "Paris",
		CountryCode:    "FR",
		TotalRainMM:    3.5,
		TotalSnowMM:    0.0,
		MaxHumidityPct: 87,
		ForecastDetails: []weather.DaySummary{
			{DateLocal: "2026-08-27", RainCumulMM: 2.0, SnowCumulMM: 0, MajorTransitionsCount: 1},
			{DateLocal: "2026-08-28", RainCumulMM: 1.5, SnowCumulMM: 0, MajorTransitionsCount: 0},
		},
	}
}

func TestWriteFileEmitsStableFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_forecast.json")

	if err := WriteFile(path, testReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	// The file format is consumed by external tooling; the field names are a
	// compatibility contract.
	for _, field := range []string{
		`"forecast_location_name"`,
		`"country_code"`,
		`"total_rain_period_mm"`,
		`"total_snow_period_mm"`,
		`"max_humidity_period"`,
		`"forecast_details"`,
		`"date_local"`,
		`"rain_cumul_mm"`,
		`"snow_cumul_mm"`,
		`"major_transitions_count"`,
	} {
		if !strings.Contains(string(data), field) {
			t.Fatalf("report file missing field %s:\n%s", field, data)
		}
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report file is not valid JSON: %v", err)
	}
	if decoded["forecast_location_name"] != "Paris" {
		t.Fatalf("unexpected location name: %v", decoded["forecast_location_name"])
	}
	if decoded["max_humidity_period"] != float64(87) {
		t.Fatalf("unexpected max humidity: %v", decoded["max_humidity_period"])
	}

	details, ok := decoded["forecast_details"].([]interface{})
	if !ok || len(details) != 2 {
		t.Fatalf("unexpected forecast_details: %v", decoded["forecast_details"])
	}
}

func TestWriteFileRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	rep := testReport()

	if err := WriteFile(path, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	var back weather.Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if back.LocationName != rep.LocationName || back.TotalRainMM != rep.TotalRainMM {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if len(back.ForecastDetails) != len(rep.ForecastDetails) {
		t.Fatalf("detail count mismatch: %d", len(back.ForecastDetails))
	}
}

func TestWriteFileFailsOnUnwritablePath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "report.json"), testReport())
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
