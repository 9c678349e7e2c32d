package store

import (
	"errors"
	"testing"
	"time"

	"github.com/i474232898/forecast-report/internal/weather"
)

var testLoc = weather.Location{City: "Paris", Country: "FR"}

func reportNamed(name string) weather.Report {
	return weather.Report{LocationName: name, CountryCode: "FR"}
}

func TestMemoryStoreLatest(t *testing.T) {
	s := NewMemoryStore(10, 0)

	if _, err := s.Latest(testLoc); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	now := time.Now().UTC()
	s.Save(testLoc, now.Add(-time.Hour), reportNamed("old"))
	s.Save(testLoc, now, reportNamed("new"))

	entry, err := s.Latest(testLoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Report.LocationName != "new" {
		t.Fatalf("expected latest report, got %q", entry.Report.LocationName)
	}
}

func TestMemoryStoreRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)

	base := time.Now().UTC()
	s.Save(testLoc, base, reportNamed("a"))
	s.Save(testLoc, base.Add(time.Minute), reportNamed("b"))
	s.Save(testLoc, base.Add(2*time.Minute), reportNamed("c"))

	entries, err := s.Range(testLoc, base.Add(-time.Hour), base.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 retained entries, got %d", len(entries))
	}
	if entries[0].Report.LocationName != "b" {
		t.Fatalf("expected oldest entry to be dropped, got %q first", entries[0].Report.LocationName)
	}
}

func TestMemoryStoreRetentionByAge(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)

	now := time.Now().UTC()
	s.Save(testLoc, now.Add(-2*time.Hour), reportNamed("stale"))
	s.Save(testLoc, now, reportNamed("fresh"))

	entries, err := s.Range(testLoc, now.Add(-24*time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Report.LocationName != "fresh" {
		t.Fatalf("expected only the fresh entry, got %+v", entries)
	}
}

func TestMemoryStoreRange(t *testing.T) {
	s := NewMemoryStore(0, 0)

	base := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	s.Save(testLoc, base, reportNamed("a"))
	s.Save(testLoc, base.Add(time.Hour), reportNamed("b"))
	s.Save(testLoc, base.Add(2*time.Hour), reportNamed("c"))

	entries, err := s.Range(testLoc, base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries in range, got %d", len(entries))
	}

	if _, err := s.Range(testLoc, base.Add(10*time.Hour), base.Add(11*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty range, got %v", err)
	}
}

func TestMemoryStoreSeparatesLocations(t *testing.T) {
	s := NewMemoryStore(0, 0)

	other := weather.Location{City: "Lyon", Country: "FR"}
	s.Save(testLoc, time.Now().UTC(), reportNamed("paris"))

	if _, err := s.Latest(other); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other location, got %v", err)
	}
}
