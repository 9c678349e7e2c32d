// Package report writes finished aggregation reports to disk and to the
// console. It never sees raw samples; it only consumes the read-only
// weather.Report snapshot.
package report

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/i474232898/forecast-report/internal/weather"
)

// WriteFile persists the report as indented JSON at path. The file is only
// ever written whole: marshalling happens before the file is touched, so a
// failed run never leaves a partial report behind.
func WriteFile(path string, rep weather.Report) error {
	data, err := json.MarshalIndent(rep, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report to %s: %w", path, err)
	}
	return nil
}

// LogSummary prints the human-readable banner for a finished run.
func LogSummary(rep weather.Report) {
	rule := strings.Repeat("=", 50)
	log.Println(rule)
	log.Printf("Location: %s (%s)", rep.LocationName, rep.CountryCode)
	log.Printf("Total rain: %.1f mm", rep.TotalRainMM)
	log.Printf("Total snow: %.1f mm", rep.TotalSnowMM)
	log.Printf("Max humidity: %d%%", rep.MaxHumidityPct)
	log.Printf("Number of days: %d", len(rep.ForecastDetails))
	log.Println(rule)
}
