package engine

import "testing"

func TestComputeGoalMacros_StandardSplit(t *testing.T) {
	g := ComputeGoalMacros(2000, 0.45, 0.25, 0.30)
	if g.ProteinGrams != 150 {
		t.Errorf("protein: expected 150g, got %d", g.ProteinGrams)
	}
	if g.CarbGrams != 225 {
		t.Errorf("carbs: expected 225g, got %d", g.CarbGrams)
	}
	if g.FatGrams != 55 {
		t.Errorf("fat: expected 55g (floor of 55.55), got %d", g.FatGrams)
	}
}

func TestComputeGoalMacros_ZeroInputs(t *testing.T) {
	g := ComputeGoalMacros(0, 0.45, 0.25, 0.30)
	if g.ProteinGrams != 0 || g.CarbGrams != 0 || g.FatGrams != 0 {
		t.Errorf("zero goal calories should yield zero grams, got %+v", g)
	}

	g = ComputeGoalMacros(2000, 0, 0, 0)
	if g.ProteinGrams != 0 || g.CarbGrams != 0 || g.FatGrams != 0 {
		t.Errorf("zero percentages should yield zero grams, got %+v", g)
	}
}

func TestProgressRatio_Boundaries(t *testing.T) {
	tests := []struct {
		goal    int
		current int
		want    float64
	}{
		{0, 0, 0.0},
		{0, 500, 0.0}, // zero goal reads as no progress, never division by zero
		{100, 0, 0.0},
		{100, 50, 0.5},
		{100, 100, 1.0},
		{100, 150, 1.0}, // saturates, over-budget is shown via the remainder
		{2000, 800, 0.4},
	}
	for _, tt := range tests {
		if got := ProgressRatio(tt.goal, tt.current); got != tt.want {
			t.Errorf("ProgressRatio(%d, %d): expected %.2f, got %.2f", tt.goal, tt.current, tt.want, got)
		}
	}
}

func TestRemainingCalories_AllowsNegative(t *testing.T) {
	if got := RemainingCalories(2000, 2500); got != -500 {
		t.Errorf("expected -500 when over budget, got %d", got)
	}
	if got := RemainingCalories(1800, 1000); got != 800 {
		t.Errorf("expected 800, got %d", got)
	}
}

func TestCupTransitions(t *testing.T) {
	if got := DecrementCups(0); got != 0 {
		t.Errorf("decrement at floor should stay 0, got %d", got)
	}
	// Round trip away from the floor is an identity.
	if got := DecrementCups(IncrementCups(3)); got != 3 {
		t.Errorf("increment then decrement should return to 3, got %d", got)
	}
	if got := IncrementCups(0); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}
