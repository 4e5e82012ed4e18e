package engine

import "time"

// WeekStart returns Monday 00:00 of the week containing now, in loc.
func WeekStart(now time.Time, loc *time.Location) time.Time {
	day := StartOfDay(now, loc)
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// AggregateWeek sums valueOf over the items whose timestamp falls in
// [Monday 00:00, now] — a rolling partial-week total, not a full-week
// one. The accessors make it generic over the record type and the field
// being summed; exercise minutes and hydration cups both go through
// here. Empty input yields 0.
func AggregateWeek[T any](items []T, timeOf func(T) time.Time, valueOf func(T) float64, now time.Time, loc *time.Location) int {
	start := WeekStart(now, loc)
	var sum float64
	for _, it := range items {
		t := timeOf(it).In(loc)
		if t.Before(start) || t.After(now) {
			continue
		}
		sum += valueOf(it)
	}
	return int(sum)
}
