package weather

import "math"

// majorTransitionDeltaC is the temperature swing two adjacent samples must
// exceed, together with a category change, to count as a major transition.
const majorTransitionDeltaC = 3.0

// DailyAggregator accumulates precipitation and counts major weather
// transitions for exactly one local calendar day. Samples must be added in
// chronological order: the transition check compares each sample to the
// immediately preceding one only.
type DailyAggregator struct {
	date        string
	rainMM      float64
	snowMM      float64
	transitions int

	hasPrev      bool
	prevTempC    float64
	prevCategory string

	// OnTransition, when set, is invoked each time a major transition is
	// counted. Used for debug logging; aggregation never logs on its own.
	OnTransition func(from, to string, deltaC float64)
}

// NewDailyAggregator creates an empty aggregator for the given local date
// (YYYY-MM-DD).
func NewDailyAggregator(date string) *DailyAggregator {
	return &DailyAggregator{date: date}
}

// Date returns the local calendar date this aggregator covers.
func (d *DailyAggregator) Date() string {
	return d.date
}

// AddSample folds one forecast sample into the day. Precipitation sums stay
// exact; rounding happens once at report time. A major transition is counted
// when the category changed from the previous sample AND the temperature
// moved by more than 3°C. The first sample of a day never counts.
func (d *DailyAggregator) AddSample(tempC float64, category string, rainMM, snowMM float64) {
	d.rainMM += rainMM
	d.snowMM += snowMM

	if d.hasPrev {
		deltaC := math.Abs(tempC - d.prevTempC)
		if category != d.prevCategory && deltaC > majorTransitionDeltaC {
			d.transitions++
			if d.OnTransition != nil {
				d.OnTransition(d.prevCategory, category, deltaC)
			}
		}
	}

	d.hasPrev = true
	d.prevTempC = tempC
	d.prevCategory = category
}

// RainTotalMM returns the exact (unrounded) rain sum for the day.
func (d *DailyAggregator) RainTotalMM() float64 {
	return d.rainMM
}

// SnowTotalMM returns the exact (unrounded) snow sum for the day.
func (d *DailyAggregator) SnowTotalMM() float64 {
	return d.snowMM
}

// Transitions returns the number of major transitions seen so far.
func (d *DailyAggregator) Transitions() int {
	return d.transitions
}

// Summary snapshots the day into its report form, rounding precipitation to
// one decimal. Idempotent as long as no further samples are added.
func (d *DailyAggregator) Summary() DaySummary {
	return DaySummary{
		DateLocal:             d.date,
		RainCumulMM:           round1(d.rainMM),
		SnowCumulMM:           round1(d.snowMM),
		MajorTransitionsCount: d.transitions,
	}
}

// round1 rounds to one decimal place, applied only at output boundaries so
// rounding error never compounds across days.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
