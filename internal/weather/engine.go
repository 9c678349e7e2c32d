package weather

import (
	"sort"
	"strings"
	"time"
)

// localDateLayout is the day-bucket key format. Lexicographic order on these
// strings matches chronological order.
const localDateLayout = "2006-01-02"

// TransitionObserver is an optional callback invoked for every major
// transition the engine counts. Logging is injected through it instead of
// being baked into the aggregation itself.
type TransitionObserver func(date, from, to string, deltaC float64)

// Engine groups forecast samples by local calendar day, excludes the day the
// run happens on, and reduces the per-day aggregators into one Report.
// Grouping and "today" both use the process-local timezone, matching the
// timestamps handed out by time.Unix.
type Engine struct {
	days        map[string]*DailyAggregator
	maxHumidity int

	// Observer, when set, is called for every major transition counted.
	Observer TransitionObserver
}

// NewEngine creates an empty aggregation engine.
func NewEngine() *Engine {
	return &Engine{
		days: make(map[string]*DailyAggregator),
	}
}

// Ingest routes samples to their day's aggregator in input order. Samples
// whose local date equals referenceNow's local date are skipped entirely:
// the current day's forecast window is partial, so it contributes neither to
// per-day totals nor to the period max humidity.
func (e *Engine) Ingest(samples []ForecastSample, referenceNow time.Time) {
	today := referenceNow.Local().Format(localDateLayout)

	for _, s := range samples {
		date := s.Timestamp.Local().Format(localDateLayout)
		if date == today {
			continue
		}

		day, ok := e.days[date]
		if !ok {
			day = NewDailyAggregator(date)
			if e.Observer != nil {
				d := date
				day.OnTransition = func(from, to string, deltaC float64) {
					e.Observer(d, from, to, deltaC)
				}
			}
			e.days[date] = day
		}
		day.AddSample(s.TemperatureC, s.Category, s.RainMM, s.SnowMM)

		if s.HumidityPct > e.maxHumidity {
			e.maxHumidity = s.HumidityPct
		}
	}
}

// BuildReport reduces all day aggregators into the final report: exact
// per-day sums are totalled first and rounded once, details are sorted
// ascending by date. With nothing ingested the result is a defined empty
// report (zero totals, max humidity 0, empty details).
func (e *Engine) BuildReport(locationName, countryCode string) Report {
	var totalRain, totalSnow float64

	details := make([]DaySummary, 0, len(e.days))
	for _, day := range e.days {
		totalRain += day.RainTotalMM()
		totalSnow += day.SnowTotalMM()
		details = append(details, day.Summary())
	}

	sort.Slice(details, func(i, j int) bool {
		return details[i].DateLocal < details[j].DateLocal
	})

	return Report{
		LocationName:    locationName,
		CountryCode:     strings.ToUpper(countryCode),
		TotalRainMM:     round1(totalRain),
		TotalSnowMM:     round1(totalSnow),
		MaxHumidityPct:  e.maxHumidity,
		ForecastDetails: details,
	}
}
