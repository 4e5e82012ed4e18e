package model

import "time"

// ExerciseEntry is one logged exercise, produced by natural-language
// parsing of a "type for N minutes" description.
type ExerciseEntry struct {
	ID          string
	Name        string
	DurationMin int
	Calories    float64
	Timestamp   time.Time
}
