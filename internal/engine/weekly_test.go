package engine

import (
	"testing"
	"time"

	"FitTrack/internal/model"
)

func TestWeekStart_AnchorsOnMonday(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		now  time.Time
		want time.Time
	}{
		// 2025-03-12 is a Wednesday.
		{time.Date(2025, 3, 12, 15, 30, 0, 0, loc), time.Date(2025, 3, 10, 0, 0, 0, 0, loc)},
		// A Monday maps to its own midnight.
		{time.Date(2025, 3, 10, 0, 0, 1, 0, loc), time.Date(2025, 3, 10, 0, 0, 0, 0, loc)},
		// A Sunday belongs to the week starting the previous Monday.
		{time.Date(2025, 3, 16, 23, 0, 0, 0, loc), time.Date(2025, 3, 10, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		if got := WeekStart(tt.now, loc); !got.Equal(tt.want) {
			t.Errorf("WeekStart(%v): expected %v, got %v", tt.now, tt.want, got)
		}
	}
}

func TestAggregateWeek_ExerciseMinutes(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 12, 18, 0, 0, 0, loc) // Wednesday
	entries := []model.ExerciseEntry{
		{Name: "running", DurationMin: 30, Timestamp: time.Date(2025, 3, 10, 7, 0, 0, 0, loc)},
		{Name: "cycling", DurationMin: 45, Timestamp: time.Date(2025, 3, 11, 19, 0, 0, 0, loc)},
		{Name: "last week", DurationMin: 60, Timestamp: time.Date(2025, 3, 9, 10, 0, 0, 0, loc)},
		{Name: "future", DurationMin: 20, Timestamp: now.Add(time.Hour)},
	}

	got := AggregateWeek(entries,
		func(e model.ExerciseEntry) time.Time { return e.Timestamp },
		func(e model.ExerciseEntry) float64 { return float64(e.DurationMin) },
		now, loc)
	if got != 75 {
		t.Errorf("expected 75 minutes inside the rolling week, got %d", got)
	}
}

func TestAggregateWeek_HydrationCups(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 12, 18, 0, 0, 0, loc)
	type cupDay struct {
		day  time.Time
		cups int
	}
	days := []cupDay{
		{time.Date(2025, 3, 10, 12, 0, 0, 0, loc), 6},
		{time.Date(2025, 3, 11, 12, 0, 0, 0, loc), 8},
		{time.Date(2025, 3, 12, 12, 0, 0, 0, loc), 3},
		{time.Date(2025, 3, 8, 12, 0, 0, 0, loc), 9}, // previous week
	}

	got := AggregateWeek(days,
		func(d cupDay) time.Time { return d.day },
		func(d cupDay) float64 { return float64(d.cups) },
		now, loc)
	if got != 17 {
		t.Errorf("expected 17 cups, got %d", got)
	}
}

func TestAggregateWeek_Empty(t *testing.T) {
	got := AggregateWeek(nil,
		func(e model.ExerciseEntry) time.Time { return e.Timestamp },
		func(e model.ExerciseEntry) float64 { return float64(e.DurationMin) },
		time.Now(), time.UTC)
	if got != 0 {
		t.Errorf("expected 0 for empty input, got %d", got)
	}
}
