package weather

import (
	"time"
)

// Location represents the place a forecast run is executed for.
// City/Country must be provided; Country is a 2-letter ISO code.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// ForecastSample is one normalized 3-hour forecast record from a provider.
// RainMM and SnowMM are 3-hour accumulations and default to 0 when the
// source payload carries no precipitation group (absent data, not an error).
type ForecastSample struct {
	Timestamp    time.Time
	TemperatureC float64
	Category     string // raw provider label, e.g. "Rain", "Clear"
	RainMM       float64
	SnowMM       float64
	HumidityPct  int
}

// ForecastResult is what a provider returns for one fetch: the resolved
// location name plus the raw samples in chronological order. Order matters;
// transition detection compares adjacent samples only.
type ForecastResult struct {
	LocationName string
	Samples      []ForecastSample
}

// DaySummary is the per-day slice of the report. The JSON field names are
// the persisted file format and must not change.
type DaySummary struct {
	DateLocal             string  `json:"date_local"`
	RainCumulMM           float64 `json:"rain_cumul_mm"`
	SnowCumulMM           float64 `json:"snow_cumul_mm"`
	MajorTransitionsCount int     `json:"major_transitions_count"`
}

// Report is the aggregated output of one run. The JSON field names are the
// persisted file format and must not change.
type Report struct {
	LocationName    string       `json:"forecast_location_name"`
	CountryCode     string       `json:"country_code"`
	TotalRainMM     float64      `json:"total_rain_period_mm"`
	TotalSnowMM     float64      `json:"total_snow_period_mm"`
	MaxHumidityPct  int          `json:"max_humidity_period"`
	ForecastDetails []DaySummary `json:"forecast_details"`
}
