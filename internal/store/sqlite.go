package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"FitTrack/internal/model"
)

// SQLiteStore persists the log to a SQLite database and fans snapshot
// updates out to subscribers.
type SQLiteStore struct {
	db  *sql.DB
	loc *time.Location

	mu       sync.Mutex
	closed   bool
	nextSub  int
	foodSubs map[string]map[int]chan []model.FoodEntry
	exSubs   map[string]map[int]chan []model.ExerciseEntry
	hydSubs  map[string]map[int]chan int
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string, loc *time.Location) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	// WAL mode so readers are not blocked while the tracker writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:       db,
		loc:      loc,
		foodSubs: make(map[string]map[int]chan []model.FoodEntry),
		exSubs:   make(map[string]map[int]chan []model.ExerciseEntry),
		hydSubs:  make(map[string]map[int]chan int),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			slot          INTEGER PRIMARY KEY CHECK (slot = 1),
			id            TEXT NOT NULL,
			full_name     TEXT,
			email         TEXT,
			height        REAL,
			weight        REAL,
			age           INTEGER,
			gender        TEXT,
			goal_calories INTEGER,
			carb_percent  REAL,
			fat_percent   REAL,
			pro_percent   REAL
		)`,

		`CREATE TABLE IF NOT EXISTS food_entries (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			brand         TEXT,
			serving_qty   REAL,
			serving_unit  TEXT,
			calories      REAL,
			fat           REAL,
			saturated_fat REAL,
			cholesterol   REAL,
			sodium        REAL,
			carbs         REAL,
			fiber         REAL,
			sugar         REAL,
			protein       REAL,
			potassium     REAL,
			date_added    INTEGER NOT NULL,
			meal_time     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_food_date ON food_entries(date_added)`,

		`CREATE TABLE IF NOT EXISTS exercise_entries (
			id           TEXT PRIMARY KEY,
			day          TEXT NOT NULL,
			name         TEXT NOT NULL,
			duration_min INTEGER,
			calories     REAL,
			timestamp    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exercise_day ON exercise_entries(day)`,

		`CREATE TABLE IF NOT EXISTS hydration (
			day  TEXT PRIMARY KEY,
			cups INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS daily_summaries (
			day              TEXT PRIMARY KEY,
			calories         INTEGER,
			protein          INTEGER,
			fat              INTEGER,
			carbs            INTEGER,
			exercise_minutes INTEGER,
			hydration_cups   INTEGER,
			recorded_at      INTEGER NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Profile returns the saved profile, or nil when none exists.
func (s *SQLiteStore) Profile() (*model.UserProfile, error) {
	var p model.UserProfile
	err := s.db.QueryRow(`SELECT id, full_name, email, height, weight, age, gender,
		goal_calories, carb_percent, fat_percent, pro_percent FROM profile WHERE slot = 1`).
		Scan(&p.ID, &p.FullName, &p.Email, &p.Height, &p.Weight, &p.Age, &p.Gender,
			&p.GoalCalories, &p.CarbPercent, &p.FatPercent, &p.ProPercent)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &p, nil
}

func (s *SQLiteStore) SaveProfile(p model.UserProfile) error {
	// Single-user store: the row lives in a fixed slot so saving a
	// profile with a new ID replaces the old one instead of adding a
	// second row.
	_, err := s.db.Exec(`INSERT INTO profile
		(slot, id, full_name, email, height, weight, age, gender, goal_calories, carb_percent, fat_percent, pro_percent)
		VALUES (1,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(slot) DO UPDATE SET
			id=excluded.id,
			full_name=excluded.full_name, email=excluded.email,
			height=excluded.height, weight=excluded.weight,
			age=excluded.age, gender=excluded.gender,
			goal_calories=excluded.goal_calories,
			carb_percent=excluded.carb_percent,
			fat_percent=excluded.fat_percent,
			pro_percent=excluded.pro_percent`,
		p.ID, p.FullName, p.Email, p.Height, p.Weight, p.Age, p.Gender,
		p.GoalCalories, p.CarbPercent, p.FatPercent, p.ProPercent)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func nullable(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func (s *SQLiteStore) AddFoodEntry(e model.FoodEntry) error {
	_, err := s.db.Exec(`INSERT INTO food_entries
		(id, name, brand, serving_qty, serving_unit, calories, fat, saturated_fat,
		 cholesterol, sodium, carbs, fiber, sugar, protein, potassium, date_added, meal_time)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.ID, e.Name, e.Brand, e.ServingQty, e.ServingUnit, e.Calories, e.Fat,
		nullable(e.SaturatedFat), nullable(e.Cholesterol), nullable(e.Sodium),
		e.Carbs, nullable(e.Fiber), nullable(e.Sugar), e.Protein, nullable(e.Potassium),
		e.DateAdded.Unix(), e.MealTime)
	if err != nil {
		return fmt.Errorf("add food entry: %w", err)
	}
	s.notifyFoods(dayKey(e.DateAdded, s.loc))
	return nil
}

func (s *SQLiteStore) DeleteFoodEntry(id string) error {
	var added int64
	if err := s.db.QueryRow(`SELECT date_added FROM food_entries WHERE id = ?`, id).Scan(&added); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("food entry %s not found", id)
		}
		return fmt.Errorf("delete food entry: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM food_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete food entry: %w", err)
	}
	s.notifyFoods(dayKey(time.Unix(added, 0), s.loc))
	return nil
}

func (s *SQLiteStore) FoodEntriesForDay(day string) ([]model.FoodEntry, error) {
	start, end, err := dayBounds(day, s.loc)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT id, name, IFNULL(brand, ''), serving_qty, serving_unit,
		calories, fat, saturated_fat, cholesterol, sodium, carbs, fiber, sugar, protein,
		potassium, date_added, IFNULL(meal_time, '')
		FROM food_entries
		WHERE date_added >= ? AND date_added < ?
		ORDER BY date_added ASC`, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.FoodEntry, 0)
	for rows.Next() {
		var e model.FoodEntry
		var satFat, chol, sodium, fiber, sugar, potassium sql.NullFloat64
		var added int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Brand, &e.ServingQty, &e.ServingUnit,
			&e.Calories, &e.Fat, &satFat, &chol, &sodium, &e.Carbs, &fiber, &sugar,
			&e.Protein, &potassium, &added, &e.MealTime); err != nil {
			return nil, fmt.Errorf("scan food entry: %w", err)
		}
		e.SaturatedFat = floatPtr(satFat)
		e.Cholesterol = floatPtr(chol)
		e.Sodium = floatPtr(sodium)
		e.Fiber = floatPtr(fiber)
		e.Sugar = floatPtr(sugar)
		e.Potassium = floatPtr(potassium)
		e.DateAdded = time.Unix(added, 0).In(s.loc)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food entries: %w", err)
	}
	return entries, nil
}

func (s *SQLiteStore) AddExerciseEntry(day string, e model.ExerciseEntry) error {
	_, err := s.db.Exec(`INSERT INTO exercise_entries (id, day, name, duration_min, calories, timestamp)
		VALUES (?,?,?,?,?,?)`,
		e.ID, day, e.Name, e.DurationMin, e.Calories, e.Timestamp.Unix())
	if err != nil {
		return fmt.Errorf("add exercise entry: %w", err)
	}
	s.notifyExercises(day)
	return nil
}

func (s *SQLiteStore) DeleteExerciseEntry(day, id string) error {
	res, err := s.db.Exec(`DELETE FROM exercise_entries WHERE day = ? AND id = ?`, day, id)
	if err != nil {
		return fmt.Errorf("delete exercise entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("exercise entry %s not found on %s", id, day)
	}
	s.notifyExercises(day)
	return nil
}

func (s *SQLiteStore) ExerciseEntriesForDay(day string) ([]model.ExerciseEntry, error) {
	rows, err := s.db.Query(`SELECT id, name, duration_min, calories, timestamp
		FROM exercise_entries WHERE day = ? ORDER BY timestamp DESC`, day)
	if err != nil {
		return nil, fmt.Errorf("list exercise entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.ExerciseEntry, 0)
	for rows.Next() {
		var e model.ExerciseEntry
		var ts int64
		if err := rows.Scan(&e.ID, &e.Name, &e.DurationMin, &e.Calories, &ts); err != nil {
			return nil, fmt.Errorf("scan exercise entry: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0).In(s.loc)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise entries: %w", err)
	}
	return entries, nil
}

func (s *SQLiteStore) HydrationCups(day string) (int, error) {
	var cups int
	err := s.db.QueryRow(`SELECT cups FROM hydration WHERE day = ?`, day).Scan(&cups)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load hydration for %s: %w", day, err)
	}
	return cups, nil
}

func (s *SQLiteStore) SetHydrationCups(day string, cups int) error {
	if cups < 0 {
		cups = 0
	}
	_, err := s.db.Exec(`INSERT INTO hydration (day, cups) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET cups=excluded.cups`, day, cups)
	if err != nil {
		return fmt.Errorf("set hydration for %s: %w", day, err)
	}
	s.notifyHydration(day)
	return nil
}

func (s *SQLiteStore) RecordDailySummary(rec DailyRecord) error {
	_, err := s.db.Exec(`INSERT INTO daily_summaries
		(day, calories, protein, fat, carbs, exercise_minutes, hydration_cups, recorded_at)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(day) DO UPDATE SET
			calories=excluded.calories, protein=excluded.protein,
			fat=excluded.fat, carbs=excluded.carbs,
			exercise_minutes=excluded.exercise_minutes,
			hydration_cups=excluded.hydration_cups,
			recorded_at=excluded.recorded_at`,
		rec.Day, rec.Calories, rec.Protein, rec.Fat, rec.Carbs,
		rec.ExerciseMinutes, rec.HydrationCups, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("record daily summary: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DailyRecords(fromDay, toDay string) ([]DailyRecord, error) {
	rows, err := s.db.Query(`SELECT day, calories, protein, fat, carbs, exercise_minutes, hydration_cups
		FROM daily_summaries WHERE day >= ? AND day <= ? ORDER BY day ASC`, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("list daily summaries: %w", err)
	}
	defer rows.Close()

	records := make([]DailyRecord, 0)
	for rows.Next() {
		var r DailyRecord
		if err := rows.Scan(&r.Day, &r.Calories, &r.Protein, &r.Fat, &r.Carbs,
			&r.ExerciseMinutes, &r.HydrationCups); err != nil {
			return nil, fmt.Errorf("scan daily summary: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily summaries: %w", err)
	}
	return records, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	s.mu.Lock()
	s.closed = true
	for _, subs := range s.foodSubs {
		for _, ch := range subs {
			close(ch)
		}
	}
	for _, subs := range s.exSubs {
		for _, ch := range subs {
			close(ch)
		}
	}
	for _, subs := range s.hydSubs {
		for _, ch := range subs {
			close(ch)
		}
	}
	s.foodSubs = make(map[string]map[int]chan []model.FoodEntry)
	s.exSubs = make(map[string]map[int]chan []model.ExerciseEntry)
	s.hydSubs = make(map[string]map[int]chan int)
	s.mu.Unlock()
	return s.db.Close()
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

func dayBounds(day string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", day)
	}
	return start, start.AddDate(0, 0, 1), nil
}
