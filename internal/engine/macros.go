package engine

import "FitTrack/internal/model"

// Energy densities in kcal per gram.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarb    = 4
	kcalPerGramFat     = 9
)

// ComputeGoalMacros derives whole-gram daily targets from the calorie
// goal and the macro percentage split. Values truncate toward zero to
// match the whole-gram display convention. Zero or absent percentages
// yield zero grams; nothing here divides by a caller-supplied value.
func ComputeGoalMacros(goalCalories int, carbPercent, fatPercent, proPercent float64) model.GoalMacros {
	return model.GoalMacros{
		ProteinGrams: int(proPercent * float64(goalCalories) / kcalPerGramProtein),
		CarbGrams:    int(carbPercent * float64(goalCalories) / kcalPerGramCarb),
		FatGrams:     int(fatPercent * float64(goalCalories) / kcalPerGramFat),
	}
}

// ProgressRatio returns current/goal clamped to [0, 1]. A zero goal
// reads as no progress rather than complete; over-consumption saturates
// at 1 and is surfaced separately as a signed remainder. Every progress
// indicator goes through this one function.
func ProgressRatio(goal, current int) float64 {
	if goal == 0 {
		return 0.0
	}
	if current > goal {
		return 1.0
	}
	return float64(current) / float64(goal)
}

// RemainingCalories is goal minus consumed. Negative means over budget
// and is intentionally not clamped.
func RemainingCalories(goal, consumed int) int {
	return goal - consumed
}
