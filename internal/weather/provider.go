package weather

import (
	"context"
)

// ForecastProvider abstracts a multi-day forecast source (e.g. OpenWeatherMap).
// Implementations must return samples in chronological order and must fail
// with an error rather than return a partial or malformed sample set.
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, loc Location) (ForecastResult, error)
}
