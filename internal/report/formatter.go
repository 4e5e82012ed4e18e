package report

import (
	"fmt"
	"strings"

	"FitTrack/internal/model"
)

// FormatDailySummary formats the day's dashboard into a plain-text
// report for the log and the end-of-day snapshot.
func FormatDailySummary(s model.DailySummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Daily Summary | %s\n\n", s.Date))

	if s.HasProfile {
		b.WriteString(fmt.Sprintf("Calories: %d / %d (%.0f%%), %d remaining\n",
			s.Totals.Calories, s.GoalCalories, s.CalorieProgress*100, s.Remaining))
		b.WriteString(fmt.Sprintf("Protein:  %dg / %dg (%.0f%%)\n",
			s.Totals.Protein, s.Goal.ProteinGrams, s.ProteinProgress*100))
		b.WriteString(fmt.Sprintf("Carbs:    %dg / %dg (%.0f%%)\n",
			s.Totals.Carbs, s.Goal.CarbGrams, s.CarbProgress*100))
		b.WriteString(fmt.Sprintf("Fat:      %dg / %dg (%.0f%%)\n",
			s.Totals.Fat, s.Goal.FatGrams, s.FatProgress*100))
	} else {
		b.WriteString(fmt.Sprintf("Calories: %d (no profile, no goal set)\n", s.Totals.Calories))
		b.WriteString(fmt.Sprintf("Protein:  %dg | Carbs: %dg | Fat: %dg\n",
			s.Totals.Protein, s.Totals.Carbs, s.Totals.Fat))
	}

	for _, meal := range model.MealOrder {
		entries := s.Meals[meal]
		if len(entries) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n%s:\n", meal))
		for _, e := range entries {
			b.WriteString("  " + FormatFoodLine(e) + "\n")
		}
	}

	return b.String()
}

// FormatFoodLine formats one logged food as a single line. Foods
// without a brand show as generic.
func FormatFoodLine(e model.FoodEntry) string {
	brand := e.Brand
	if brand == "" {
		brand = "(Generic)"
	}
	return fmt.Sprintf("%s %s, %.4g %s, %.0f kcal (P %.0fg / C %.0fg / F %.0fg)",
		e.Name, brand, e.ServingQty, e.ServingUnit, e.Calories, e.Protein, e.Carbs, e.Fat)
}

// FormatNutrientDetail formats the full nutrient panel of one food.
// Nutrients the source did not report show a dash.
func FormatNutrientDetail(e model.FoodEntry) string {
	var b strings.Builder

	brand := e.Brand
	if brand == "" {
		brand = "(Generic)"
	}
	b.WriteString(fmt.Sprintf("%s | %s | %.4g %s\n", e.Name, brand, e.ServingQty, e.ServingUnit))
	b.WriteString(fmt.Sprintf("Calories:      %.0f\n", e.Calories))
	b.WriteString(fmt.Sprintf("Total Fat:     %.1fg\n", e.Fat))
	b.WriteString(fmt.Sprintf("Saturated Fat: %s\n", optionalGrams(e.SaturatedFat)))
	b.WriteString(fmt.Sprintf("Cholesterol:   %s\n", optionalMilligrams(e.Cholesterol)))
	b.WriteString(fmt.Sprintf("Sodium:        %s\n", optionalMilligrams(e.Sodium)))
	b.WriteString(fmt.Sprintf("Total Carbs:   %.1fg\n", e.Carbs))
	b.WriteString(fmt.Sprintf("Dietary Fiber: %s\n", optionalGrams(e.Fiber)))
	b.WriteString(fmt.Sprintf("Sugars:        %s\n", optionalGrams(e.Sugar)))
	b.WriteString(fmt.Sprintf("Protein:       %.1fg\n", e.Protein))
	b.WriteString(fmt.Sprintf("Potassium:     %s\n", optionalMilligrams(e.Potassium)))

	return b.String()
}

// FormatWeeklySummary formats the week-to-date rollup.
func FormatWeeklySummary(w model.WeeklyTotals, hydrationGoalCups int) string {
	var b strings.Builder

	b.WriteString("Weekly Summary (Monday to now)\n\n")
	b.WriteString(fmt.Sprintf("Exercise: %d min\n", w.ExerciseMinutes))

	weeklyGoal := hydrationGoalCups * 7
	if weeklyGoal > 0 {
		pct := float64(w.HydrationCups) / float64(weeklyGoal) * 100
		b.WriteString(fmt.Sprintf("Water:    %d cups (%.0f oz, %.0f%% of weekly goal)\n",
			w.HydrationCups, float64(w.HydrationCups*model.CupOunces), pct))
	} else {
		b.WriteString(fmt.Sprintf("Water:    %d cups (%.0f oz)\n",
			w.HydrationCups, float64(w.HydrationCups*model.CupOunces)))
	}

	b.WriteString(fmt.Sprintf("Steps:    %d today\n", w.Steps))
	if w.SleepMinutes > 0 {
		b.WriteString(fmt.Sprintf("Sleep:    %dh %02dm this week\n", w.SleepMinutes/60, w.SleepMinutes%60))
	} else {
		b.WriteString("Sleep:    no data\n")
	}

	return b.String()
}

func optionalGrams(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1fg", *v)
}

func optionalMilligrams(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.0fmg", *v)
}
