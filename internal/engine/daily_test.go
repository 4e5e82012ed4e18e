package engine

import (
	"testing"
	"time"

	"FitTrack/internal/model"
)

func entryAt(name string, at time.Time, cal, protein, fat, carbs float64) model.FoodEntry {
	return model.FoodEntry{
		Name:      name,
		Calories:  cal,
		Protein:   protein,
		Fat:       fat,
		Carbs:     carbs,
		DateAdded: at,
	}
}

func TestAggregateDay_Empty(t *testing.T) {
	got := AggregateDay(nil, time.Now(), time.UTC)
	if got != (model.DailyTotals{}) {
		t.Errorf("expected zeroed totals for empty input, got %+v", got)
	}
}

func TestAggregateDay_FiltersByCalendarDay(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)

	entries := []model.FoodEntry{
		entryAt("oatmeal", day.Add(7*time.Hour), 300, 10, 5, 54),
		entryAt("chicken", day.Add(13*time.Hour), 400, 35, 9, 0),
		entryAt("yesterday", day.Add(-2*time.Hour), 900, 50, 40, 80),
		entryAt("tomorrow", day.Add(25*time.Hour), 900, 50, 40, 80),
		entryAt("midnight", day, 100, 1, 1, 20), // start of day is inclusive
	}

	got := AggregateDay(entries, day.Add(12*time.Hour), loc)
	want := model.DailyTotals{Calories: 800, Protein: 46, Fat: 15, Carbs: 74}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestAggregateDay_OrderInvariant(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	a := entryAt("a", day.Add(8*time.Hour), 120.4, 3.2, 1.1, 20.9)
	b := entryAt("b", day.Add(12*time.Hour), 250.3, 18.7, 10.2, 5.5)
	c := entryAt("c", day.Add(19*time.Hour), 90.9, 2.1, 0.4, 17.3)

	first := AggregateDay([]model.FoodEntry{a, b, c}, day, loc)
	second := AggregateDay([]model.FoodEntry{c, a, b}, day, loc)
	if first != second {
		t.Errorf("aggregation should be order invariant: %+v vs %+v", first, second)
	}
}

func TestAggregateDay_TruncatesAfterSumming(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	// Three 0.4-calorie entries: truncating per entry would give 0,
	// summing first gives 1.
	entries := []model.FoodEntry{
		entryAt("a", day.Add(time.Hour), 0.4, 0.4, 0.4, 0.4),
		entryAt("b", day.Add(2*time.Hour), 0.4, 0.4, 0.4, 0.4),
		entryAt("c", day.Add(3*time.Hour), 0.4, 0.4, 0.4, 0.4),
	}
	got := AggregateDay(entries, day, loc)
	if got.Calories != 1 {
		t.Errorf("expected sum-then-truncate to give 1, got %d", got.Calories)
	}
}

func TestAggregateDay_RespectsTimeZone(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*60*60)
	// 06:00 UTC on March 11 is 22:00 March 10 in UTC-8.
	at := time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC)
	entries := []model.FoodEntry{entryAt("late snack", at, 200, 5, 5, 30)}

	day10 := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	if got := AggregateDay(entries, day10, loc); got.Calories != 200 {
		t.Errorf("entry should count toward March 10 in UTC-8, got %+v", got)
	}
	day11 := time.Date(2025, 3, 11, 12, 0, 0, 0, loc)
	if got := AggregateDay(entries, day11, loc); got.Calories != 0 {
		t.Errorf("entry should not count toward March 11 in UTC-8, got %+v", got)
	}
}

func TestParseMealTime(t *testing.T) {
	tests := []struct {
		tag  string
		want model.MealTime
	}{
		{"Breakfast", model.MealBreakfast},
		{"breakfast", model.MealBreakfast},
		{"LUNCH", model.MealLunch},
		{" dinner ", model.MealDinner},
		{"", model.MealUnspecified},
		{"brunch", model.MealUnspecified},
	}
	for _, tt := range tests {
		if got := ParseMealTime(tt.tag); got != tt.want {
			t.Errorf("ParseMealTime(%q): expected %q, got %q", tt.tag, tt.want, got)
		}
	}
}

func TestGroupByMeal_StablePartition(t *testing.T) {
	now := time.Now()
	entries := []model.FoodEntry{
		{ID: "1", MealTime: "Lunch", DateAdded: now},
		{ID: "2", MealTime: "breakfast", DateAdded: now},
		{ID: "3", MealTime: "Lunch", DateAdded: now},
		{ID: "4", MealTime: "", DateAdded: now},
		{ID: "5", MealTime: "Dinner", DateAdded: now},
		{ID: "6", MealTime: "snack", DateAdded: now},
	}

	groups := GroupByMeal(entries)

	lunch := groups[model.MealLunch]
	if len(lunch) != 2 || lunch[0].ID != "1" || lunch[1].ID != "3" {
		t.Errorf("lunch group should preserve insertion order, got %+v", lunch)
	}
	unspec := groups[model.MealUnspecified]
	if len(unspec) != 2 || unspec[0].ID != "4" || unspec[1].ID != "6" {
		t.Errorf("untagged and unrecognized entries should land in Unspecified in order, got %+v", unspec)
	}

	// Concatenating the groups in meal order reproduces a permutation
	// of the input.
	total := 0
	seen := make(map[string]bool)
	for _, meal := range model.MealOrder {
		for _, e := range groups[meal] {
			total++
			seen[e.ID] = true
		}
	}
	if total != len(entries) || len(seen) != len(entries) {
		t.Errorf("groups should partition the input: %d entries across groups, %d distinct", total, len(seen))
	}
}
