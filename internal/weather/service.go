package weather

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Service orchestrates one aggregation run: fetch the raw forecast from the
// provider, then reduce it into a Report. Aggregation never starts on a
// failed or partial fetch.
type Service struct {
	provider ForecastProvider

	// now is the clock used to decide which samples fall on the current
	// (excluded) day. Overridable in tests.
	now func() time.Time
}

// NewService creates a new Service around the given provider.
func NewService(provider ForecastProvider) *Service {
	return &Service{
		provider: provider,
		now:      time.Now,
	}
}

// Collect fetches the forecast for loc and aggregates it into a Report.
// Any provider failure is returned as-is wrapped; no report is produced in
// that case. A fetch where every sample falls on the current day is still a
// success and yields an empty report.
func (s *Service) Collect(ctx context.Context, loc Location) (Report, error) {
	log.Printf("INFO: fetching forecast for %s via %s", loc.Key(), s.provider.Name())

	result, err := s.provider.FetchForecast(ctx, loc)
	if err != nil {
		return Report{}, fmt.Errorf("fetch forecast for %s: %w", loc.Key(), err)
	}

	log.Printf("INFO: processing %d forecast samples for %s", len(result.Samples), result.LocationName)

	engine := NewEngine()
	engine.Observer = func(date, from, to string, deltaC float64) {
		log.Printf("DEBUG: transition on %s: %s->%s, ΔT=%.1f°C", date, from, to, deltaC)
	}
	engine.Ingest(result.Samples, s.now())

	return engine.BuildReport(result.LocationName, loc.Country), nil
}
