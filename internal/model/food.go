package model

import "time"

// FoodEntry is one logged food item. Core nutrients are always present;
// the remaining fields are optional and nil when the lookup API omitted
// them.
type FoodEntry struct {
	ID          string
	Name        string
	Brand       string // empty when the food is generic
	ServingQty  float64
	ServingUnit string

	Calories float64
	Fat      float64
	Carbs    float64
	Protein  float64

	SaturatedFat *float64
	Cholesterol  *float64
	Sodium       *float64
	Fiber        *float64
	Sugar        *float64
	Potassium    *float64

	DateAdded time.Time
	MealTime  string // free-form tag, matched case-insensitively
}
