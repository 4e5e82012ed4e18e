package store

import "FitTrack/internal/model"

// DailyRecord is one end-of-day summary snapshot kept for history and
// weekly averages.
type DailyRecord struct {
	Day             string // YYYY-MM-DD
	Calories        int
	Protein         int
	Fat             int
	Carbs           int
	ExerciseMinutes int
	HydrationCups   int
}

// Store is the log-store contract. Days are keyed by YYYY-MM-DD in the
// store's time zone. Subscriptions deliver full-replacement snapshots
// of the subscribed day on every change, never deltas; the initial
// snapshot is pushed on subscribe.
type Store interface {
	Profile() (*model.UserProfile, error) // nil, nil when no profile saved
	SaveProfile(p model.UserProfile) error

	AddFoodEntry(e model.FoodEntry) error
	DeleteFoodEntry(id string) error
	FoodEntriesForDay(day string) ([]model.FoodEntry, error)

	AddExerciseEntry(day string, e model.ExerciseEntry) error
	DeleteExerciseEntry(day, id string) error
	ExerciseEntriesForDay(day string) ([]model.ExerciseEntry, error)

	HydrationCups(day string) (int, error) // 0 for an unseen day
	SetHydrationCups(day string, cups int) error

	RecordDailySummary(rec DailyRecord) error
	DailyRecords(fromDay, toDay string) ([]DailyRecord, error)

	SubscribeFoods(day string) (<-chan []model.FoodEntry, func())
	SubscribeExercises(day string) (<-chan []model.ExerciseEntry, func())
	SubscribeHydration(day string) (<-chan int, func())

	Close() error
}
