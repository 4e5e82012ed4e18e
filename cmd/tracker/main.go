package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"FitTrack/internal/config"
	"FitTrack/internal/health"
	"FitTrack/internal/lookup"
	"FitTrack/internal/scheduler"
	"FitTrack/internal/store"
	"FitTrack/internal/tracker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] FitTrack starting...")

	// Load .env if present, then config
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	loc := cfg.Location()

	// Init store
	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath, loc)
	if err != nil {
		log.Fatalf("[FATAL] init store: %v", err)
	}
	defer st.Close()

	// Init nutrition lookup
	creds := make([]lookup.Credential, 0, len(cfg.Nutritionix.Credentials))
	for _, c := range cfg.Nutritionix.Credentials {
		creds = append(creds, lookup.Credential{AppID: c.AppID, AppKey: c.AppKey})
	}
	lk := lookup.NewClient(cfg.Nutritionix.BaseURL, creds)
	log.Printf("[INFO] nutrition API: %s (%d credential pairs)", cfg.Nutritionix.BaseURL, len(creds))

	// Init health sensor
	var sensor health.SensorClient
	if cfg.Health.ExportPath != "" {
		es, err := health.NewExportSensor(cfg.Health.ExportPath, loc)
		if err != nil {
			log.Printf("[WARN] init health export sensor failed, using noop: %v", err)
			sensor = health.NoopSensor{}
		} else {
			sensor = es
			defer es.Close()
		}
	} else {
		sensor = health.NoopSensor{}
	}

	// Init tracker
	tr, err := tracker.New(st, lk, sensor, loc)
	if err != nil {
		log.Fatalf("[FATAL] init tracker: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr.Start(ctx)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, tr, st, cfg.Hydration.DailyGoalCups, loc)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: snapshot immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily snapshot now")
		go sched.RunDailyNow()
	}

	log.Println("[INFO] FitTrack is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] FitTrack stopped")
}
