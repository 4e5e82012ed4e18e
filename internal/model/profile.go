package model

// UserProfile holds identity, body metrics and daily targets.
type UserProfile struct {
	ID       string
	FullName string
	Email    string
	Height   float64 // inches
	Weight   float64 // pounds
	Age      int
	Gender   string

	// Daily calorie goal and macro split. The percentages are expected
	// to roughly sum to 1 but this is not enforced; zero values simply
	// degrade goal-macro calculations to zero grams.
	GoalCalories int
	CarbPercent  float64
	FatPercent   float64
	ProPercent   float64
}
