package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"FitTrack/internal/engine"
	"FitTrack/internal/report"
	"FitTrack/internal/store"
	"FitTrack/internal/tracker"
)

// Scheduler manages the cron tasks: the end-of-day snapshot and the
// weekly summary.
type Scheduler struct {
	Cron              *cron.Cron
	Tracker           *tracker.Tracker
	Store             store.Store
	HydrationGoalCups int
	Loc               *time.Location
	Ctx               context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, tr *tracker.Tracker, st store.Store, hydrationGoalCups int, loc *time.Location) *Scheduler {
	return &Scheduler{
		Cron:              cron.New(cron.WithSeconds()),
		Tracker:           tr,
		Store:             st,
		HydrationGoalCups: hydrationGoalCups,
		Loc:               loc,
		Ctx:               ctx,
	}
}

// RegisterAll registers the daily snapshot and weekly summary tasks.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	// Day rollover: re-sync the tracker at midnight.
	if _, err := s.Cron.AddFunc("0 0 0 * * *", s.rolloverTask); err != nil {
		return fmt.Errorf("register rollover task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily snapshot immediately.
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running end-of-day snapshot")

	summary := s.Tracker.DailySummary()
	day := summary.Date

	minutes, err := s.Tracker.ExerciseMinutesForDay(day)
	if err != nil {
		log.Printf("[WARN] exercise minutes for %s: %v", day, err)
	}
	cups := s.Tracker.Hydration().Cups()

	if err := s.Store.RecordDailySummary(store.DailyRecord{
		Day:             day,
		Calories:        summary.Totals.Calories,
		Protein:         summary.Totals.Protein,
		Fat:             summary.Totals.Fat,
		Carbs:           summary.Totals.Carbs,
		ExerciseMinutes: minutes,
		HydrationCups:   cups,
	}); err != nil {
		log.Printf("[ERROR] record daily summary: %v", err)
	}

	log.Printf("[INFO] daily snapshot for %s:\n%s", day, report.FormatDailySummary(summary))
}

func (s *Scheduler) weeklyTask() {
	log.Println("[INFO] running weekly summary")
	totals := s.Tracker.WeeklySummary()
	log.Printf("[INFO] weekly summary:\n%s", report.FormatWeeklySummary(totals, s.HydrationGoalCups))
}

func (s *Scheduler) rolloverTask() {
	day := engine.DayKey(time.Now(), s.Loc)
	if day == s.Tracker.Day() {
		return
	}
	if err := s.Tracker.RollToDay(s.Ctx, day); err != nil {
		log.Printf("[ERROR] day rollover to %s: %v", day, err)
	}
}
