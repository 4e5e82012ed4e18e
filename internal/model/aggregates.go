package model

// MealTime groups food entries for display.
type MealTime string

const (
	MealBreakfast   MealTime = "Breakfast"
	MealLunch       MealTime = "Lunch"
	MealDinner      MealTime = "Dinner"
	MealUnspecified MealTime = "Unspecified"
)

// MealOrder is the display order of meal groups.
var MealOrder = []MealTime{MealBreakfast, MealLunch, MealDinner, MealUnspecified}

// DailyTotals is the summed consumption for one calendar day, truncated
// to whole units for display.
type DailyTotals struct {
	Calories int
	Protein  int
	Fat      int
	Carbs    int
}

// GoalMacros are the whole-gram daily targets derived from the calorie
// goal and the macro percentage split.
type GoalMacros struct {
	ProteinGrams int
	CarbGrams    int
	FatGrams     int
}

// WeeklyTotals is the rolling partial-week rollup from Monday 00:00
// through now. Steps and SleepMinutes come from the health sensor and
// are zero when unavailable.
type WeeklyTotals struct {
	ExerciseMinutes int
	HydrationCups   int
	Steps           int
	SleepMinutes    int
}

// DailySummary is everything the dashboard shows for one day. It is a
// pure function of the profile and the day's entry snapshot.
type DailySummary struct {
	Date   string // YYYY-MM-DD
	Totals DailyTotals

	HasProfile   bool
	GoalCalories int
	Goal         GoalMacros
	Remaining    int // goal - consumed, negative when over budget

	CalorieProgress float64
	ProteinProgress float64
	FatProgress     float64
	CarbProgress    float64

	Meals map[MealTime][]FoodEntry
}
