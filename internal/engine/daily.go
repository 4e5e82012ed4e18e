package engine

import (
	"strings"
	"time"

	"FitTrack/internal/model"
)

// AggregateDay sums the core nutrients of the entries whose DateAdded
// falls within the calendar day containing `day` in the given time zone.
// Sums are accumulated in floating point and truncated once at the end,
// so many small fractional entries do not compound rounding error.
// An empty or fully filtered-out input yields zeroed totals.
func AggregateDay(entries []model.FoodEntry, day time.Time, loc *time.Location) model.DailyTotals {
	start := StartOfDay(day, loc)
	end := start.AddDate(0, 0, 1)

	var calories, protein, fat, carbs float64
	for _, e := range entries {
		t := e.DateAdded.In(loc)
		if t.Before(start) || !t.Before(end) {
			continue
		}
		calories += e.Calories
		protein += e.Protein
		fat += e.Fat
		carbs += e.Carbs
	}

	return model.DailyTotals{
		Calories: int(calories),
		Protein:  int(protein),
		Fat:      int(fat),
		Carbs:    int(carbs),
	}
}

// ParseMealTime maps a free-form meal tag to a meal group,
// case-insensitively. Unknown or empty tags land in Unspecified.
func ParseMealTime(tag string) model.MealTime {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "breakfast":
		return model.MealBreakfast
	case "lunch":
		return model.MealLunch
	case "dinner":
		return model.MealDinner
	default:
		return model.MealUnspecified
	}
}

// GroupByMeal partitions entries by meal tag. The partition is stable:
// each group keeps the entries in their original relative order.
func GroupByMeal(entries []model.FoodEntry) map[model.MealTime][]model.FoodEntry {
	groups := make(map[model.MealTime][]model.FoodEntry)
	for _, e := range entries {
		meal := ParseMealTime(e.MealTime)
		groups[meal] = append(groups[meal], e)
	}
	return groups
}

// StartOfDay returns midnight of the calendar day containing t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayKey formats t as the YYYY-MM-DD key used for per-day records.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
