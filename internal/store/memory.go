package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/forecast-report/internal/weather"
)

var (
	// ErrNotFound is returned when no report has been generated yet for a
	// given location.
	ErrNotFound = errors.New("no report for location")
)

// Entry is one generated report together with the time it was produced.
type Entry struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Report      weather.Report `json:"report"`
}

// reportHistory holds a time-ordered list of report entries for a location.
type reportHistory struct {
	entries []Entry
}

// MemoryStore is a concurrency-safe in-memory history of generated reports,
// used in serve mode so the API can return the latest run and past runs.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: history
	data map[string]*reportHistory

	// retention configuration
	maxHistory int           // max number of entries per location
	maxAge     time.Duration // optional max age for entries
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// Non-positive maxHistory or maxAge means unlimited for that dimension.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*reportHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Save appends a freshly generated report for a location and enforces
// retention.
func (s *MemoryStore) Save(loc weather.Location, generatedAt time.Time, rep weather.Report) {
	key := loc.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &reportHistory{}
		s.data[key] = history
	}

	history.entries = append(history.entries, Entry{
		GeneratedAt: generatedAt,
		Report:      rep,
	})

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.entries) > s.maxHistory {
		over := len(history.entries) - s.maxHistory
		history.entries = history.entries[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.entries); i++ {
			if !history.entries[i].GeneratedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history.entries) {
			history.entries = history.entries[i:]
		}
	}
}

// Latest returns the most recently generated report for a location.
func (s *MemoryStore) Latest(loc weather.Location) (Entry, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.entries) == 0 {
		return Entry{}, ErrNotFound
	}
	return history.entries[len(history.entries)-1], nil
}

// Range returns all entries for a location generated between from and to
// (inclusive).
func (s *MemoryStore) Range(loc weather.Location, from, to time.Time) ([]Entry, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.entries) == 0 {
		return nil, ErrNotFound
	}

	var result []Entry
	for _, e := range history.entries {
		if !e.GeneratedAt.Before(from) && !e.GeneratedAt.After(to) {
			result = append(result, e)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
