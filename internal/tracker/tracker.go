package tracker

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"FitTrack/internal/engine"
	"FitTrack/internal/health"
	"FitTrack/internal/hydration"
	"FitTrack/internal/lookup"
	"FitTrack/internal/model"
	"FitTrack/internal/store"
)

// Lookup is the slice of the nutrition API the tracker needs.
type Lookup interface {
	Search(ctx context.Context, query string) (*lookup.SearchResult, error)
	BrandedDetails(ctx context.Context, nixItemID string) (model.FoodEntry, error)
	CommonDetails(ctx context.Context, foodName string) (model.FoodEntry, error)
	ParseExercise(ctx context.Context, query string, profile model.UserProfile) ([]model.ExerciseEntry, error)
}

// Tracker orchestrates the day's state: it mirrors the store through
// push subscriptions, computes summaries through the engine, and routes
// writes (food, exercise, hydration) back to the store.
type Tracker struct {
	store   store.Store
	lookup  Lookup
	sensor  health.SensorClient
	counter *hydration.Counter
	loc     *time.Location
	now     func() time.Time

	mu        sync.Mutex
	day       string
	profile   *model.UserProfile
	foods     []model.FoodEntry
	exercises []model.ExerciseEntry
	lastErr   error

	cancelSubs func()
}

// New creates a tracker synced to today. The hydration counter shares
// the tracker's store and day.
func New(st store.Store, lk Lookup, sensor health.SensorClient, loc *time.Location) (*Tracker, error) {
	t := &Tracker{
		store:  st,
		lookup: lk,
		sensor: sensor,
		loc:    loc,
		now:    time.Now,
	}
	day := engine.DayKey(t.now(), loc)

	counter, err := hydration.NewCounter(st, day)
	if err != nil {
		return nil, fmt.Errorf("init hydration counter: %w", err)
	}
	t.counter = counter

	if err := t.syncDay(day); err != nil {
		return nil, err
	}
	return t, nil
}

// syncDay loads the profile and the day's snapshots and points the
// tracker at the given day.
func (t *Tracker) syncDay(day string) error {
	profile, err := t.store.Profile()
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	foods, err := t.store.FoodEntriesForDay(day)
	if err != nil {
		return fmt.Errorf("load foods for %s: %w", day, err)
	}
	exercises, err := t.store.ExerciseEntriesForDay(day)
	if err != nil {
		return fmt.Errorf("load exercises for %s: %w", day, err)
	}

	t.mu.Lock()
	t.day = day
	t.profile = profile
	t.foods = foods
	t.exercises = exercises
	t.mu.Unlock()
	return nil
}

// Start subscribes to the current day's store feeds and consumes pushed
// snapshots until ctx is cancelled.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	day := t.day
	t.mu.Unlock()
	t.subscribe(ctx, day)
	log.Printf("[INFO] tracker started for %s", day)
}

func (t *Tracker) subscribe(ctx context.Context, day string) {
	foodCh, cancelFoods := t.store.SubscribeFoods(day)
	exCh, cancelExercises := t.store.SubscribeExercises(day)
	hydCh, cancelHydration := t.store.SubscribeHydration(day)

	// done lets the consumer goroutine exit on rollover; without it a
	// cancelled subscription would leave the goroutine parked forever.
	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			cancelFoods()
			cancelExercises()
			cancelHydration()
			close(done)
		})
	}

	t.mu.Lock()
	prev := t.cancelSubs
	t.cancelSubs = cancel
	t.mu.Unlock()
	if prev != nil {
		prev()
	}

	go func() {
		for {
			select {
			case snap, ok := <-foodCh:
				if !ok {
					return
				}
				t.mu.Lock()
				if t.day == day {
					t.foods = snap
				}
				t.mu.Unlock()
			case snap, ok := <-exCh:
				if !ok {
					return
				}
				t.mu.Lock()
				if t.day == day {
					t.exercises = snap
				}
				t.mu.Unlock()
			case cups, ok := <-hydCh:
				if !ok {
					return
				}
				if t.counter.Day() == day {
					t.counter.Adopt(cups)
				}
			case <-done:
				return
			case <-ctx.Done():
				cancel()
				return
			}
		}
	}()
}

// RollToDay re-syncs the tracker and hydration counter to a new day and
// moves the subscriptions over. Called by the scheduler after the
// end-of-day snapshot.
func (t *Tracker) RollToDay(ctx context.Context, day string) error {
	if err := t.counter.Sync(day); err != nil {
		return fmt.Errorf("roll hydration to %s: %w", day, err)
	}
	if err := t.syncDay(day); err != nil {
		return err
	}
	t.subscribe(ctx, day)
	log.Printf("[INFO] tracker rolled to %s", day)
	return nil
}

// Day returns the day the tracker is synced to.
func (t *Tracker) Day() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.day
}

// Profile returns the cached profile, or nil when none is saved.
func (t *Tracker) Profile() *model.UserProfile {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.profile == nil {
		return nil
	}
	p := *t.profile
	return &p
}

// SaveProfile persists the profile and updates the cached copy.
func (t *Tracker) SaveProfile(p model.UserProfile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := t.store.SaveProfile(p); err != nil {
		return err
	}
	t.mu.Lock()
	t.profile = &p
	t.mu.Unlock()
	return nil
}

// Hydration returns the hydration counter.
func (t *Tracker) Hydration() *hydration.Counter {
	return t.counter
}

// LastError reports the most recent collaborator failure. The cached
// aggregates stay valid (if stale) while it is set; a later successful
// operation clears it.
func (t *Tracker) LastError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

func (t *Tracker) setErr(err error) {
	t.mu.Lock()
	t.lastErr = err
	t.mu.Unlock()
}

// DailySummary computes the dashboard state for the current day from
// the cached snapshots. Without a profile the goal-dependent fields stay
// zero and HasProfile is false.
func (t *Tracker) DailySummary() model.DailySummary {
	t.mu.Lock()
	day := t.day
	profile := t.profile
	foods := append([]model.FoodEntry(nil), t.foods...)
	t.mu.Unlock()

	dayStart, _ := time.ParseInLocation("2006-01-02", day, t.loc)
	totals := engine.AggregateDay(foods, dayStart, t.loc)

	summary := model.DailySummary{
		Date:   day,
		Totals: totals,
		Meals:  engine.GroupByMeal(foods),
	}
	if profile == nil {
		return summary
	}

	goal := engine.ComputeGoalMacros(profile.GoalCalories, profile.CarbPercent, profile.FatPercent, profile.ProPercent)
	summary.HasProfile = true
	summary.GoalCalories = profile.GoalCalories
	summary.Goal = goal
	summary.Remaining = engine.RemainingCalories(profile.GoalCalories, totals.Calories)
	summary.CalorieProgress = engine.ProgressRatio(profile.GoalCalories, totals.Calories)
	summary.ProteinProgress = engine.ProgressRatio(goal.ProteinGrams, totals.Protein)
	summary.FatProgress = engine.ProgressRatio(goal.FatGrams, totals.Fat)
	summary.CarbProgress = engine.ProgressRatio(goal.CarbGrams, totals.Carbs)
	return summary
}

// WeeklySummary rolls up exercise minutes and hydration cups from
// Monday 00:00 through now, plus steps and sleep from the health
// sensor. Day buckets that fail to load are skipped with a warning so
// one bad day does not blank the whole week.
func (t *Tracker) WeeklySummary() model.WeeklyTotals {
	now := t.now()
	start := engine.WeekStart(now, t.loc)

	var exercises []model.ExerciseEntry
	var hydrationDays []model.HydrationDay
	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		day := engine.DayKey(d, t.loc)

		entries, err := t.store.ExerciseEntriesForDay(day)
		if err != nil {
			log.Printf("[WARN] weekly rollup: skipping exercise for %s: %v", day, err)
			t.setErr(err)
		} else {
			exercises = append(exercises, entries...)
		}

		cups, err := t.store.HydrationCups(day)
		if err != nil {
			log.Printf("[WARN] weekly rollup: skipping hydration for %s: %v", day, err)
			t.setErr(err)
		} else if cups > 0 {
			hydrationDays = append(hydrationDays, model.HydrationDay{Date: day, Cups: cups})
		}
	}

	minutes := engine.AggregateWeek(exercises,
		func(e model.ExerciseEntry) time.Time { return e.Timestamp },
		func(e model.ExerciseEntry) float64 { return float64(e.DurationMin) },
		now, t.loc)

	cups := engine.AggregateWeek(hydrationDays,
		func(h model.HydrationDay) time.Time {
			d, _ := time.ParseInLocation("2006-01-02", h.Date, t.loc)
			return d
		},
		func(h model.HydrationDay) float64 { return float64(h.Cups) },
		now, t.loc)

	return model.WeeklyTotals{
		ExerciseMinutes: minutes,
		HydrationCups:   cups,
		Steps:           t.sensor.TodaySteps(),
		SleepMinutes:    t.sensor.WeeklySleepMinutes(),
	}
}

// SearchFoods runs an instant food search.
func (t *Tracker) SearchFoods(ctx context.Context, query string) (*lookup.SearchResult, error) {
	return t.lookup.Search(ctx, query)
}

// AddBrandedFood fetches full nutrients for a branded item and logs it
// under the given meal.
func (t *Tracker) AddBrandedFood(ctx context.Context, nixItemID string, meal model.MealTime) (model.FoodEntry, error) {
	entry, err := t.lookup.BrandedDetails(ctx, nixItemID)
	if err != nil {
		return model.FoodEntry{}, err
	}
	return t.logFood(entry, meal)
}

// AddCommonFood fetches full nutrients for a generic food by name and
// logs it under the given meal.
func (t *Tracker) AddCommonFood(ctx context.Context, foodName string, meal model.MealTime) (model.FoodEntry, error) {
	entry, err := t.lookup.CommonDetails(ctx, foodName)
	if err != nil {
		return model.FoodEntry{}, err
	}
	return t.logFood(entry, meal)
}

func (t *Tracker) logFood(entry model.FoodEntry, meal model.MealTime) (model.FoodEntry, error) {
	entry.ID = uuid.NewString()
	entry.DateAdded = t.now()
	entry.MealTime = string(meal)
	if err := t.store.AddFoodEntry(entry); err != nil {
		t.setErr(err)
		return model.FoodEntry{}, err
	}
	t.setErr(nil)
	log.Printf("[INFO] logged food %q (%d kcal) under %s", entry.Name, int(entry.Calories), meal)
	return entry, nil
}

// DeleteFood removes a logged food entry.
func (t *Tracker) DeleteFood(id string) error {
	return t.store.DeleteFoodEntry(id)
}

// LogExercise parses a natural-language exercise description against
// the saved profile and records one entry per recognized exercise.
// A duration phrase is appended when the description lacks one.
func (t *Tracker) LogExercise(ctx context.Context, description string, minutes int) ([]model.ExerciseEntry, error) {
	profile := t.Profile()
	if profile == nil {
		return nil, fmt.Errorf("log exercise: no profile saved")
	}

	query := description
	if minutes > 0 && !strings.Contains(strings.ToLower(description), "minute") {
		query = fmt.Sprintf("%s for %d minutes", description, minutes)
	}

	parsed, err := t.lookup.ParseExercise(ctx, query, *profile)
	if err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("log exercise: %q not recognized", description)
	}

	now := t.now()
	day := engine.DayKey(now, t.loc)
	for i := range parsed {
		parsed[i].ID = uuid.NewString()
		parsed[i].Timestamp = now
		if err := t.store.AddExerciseEntry(day, parsed[i]); err != nil {
			return nil, err
		}
		log.Printf("[INFO] logged exercise %q, %d min, %.0f kcal", parsed[i].Name, parsed[i].DurationMin, parsed[i].Calories)
	}
	return parsed, nil
}

// DeleteExercise removes an exercise entry from the current day.
func (t *Tracker) DeleteExercise(id string) error {
	return t.store.DeleteExerciseEntry(t.Day(), id)
}

// ExerciseMinutesForDay sums the recorded minutes for one day.
func (t *Tracker) ExerciseMinutesForDay(day string) (int, error) {
	entries, err := t.store.ExerciseEntriesForDay(day)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.DurationMin
	}
	return total, nil
}
