package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Credential is one Nutritionix app-id/app-key pair. Multiple pairs are
// tried in order when a request hits a quota limit.
type Credential struct {
	AppID  string `yaml:"app_id"`
	AppKey string `yaml:"app_key"`
}

// Config holds all application configuration.
type Config struct {
	Nutritionix struct {
		BaseURL     string       `yaml:"base_url"`
		Credentials []Credential `yaml:"credentials"`
	} `yaml:"nutritionix"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Health struct {
		ExportPath string `yaml:"export_path"`
	} `yaml:"health"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Hydration struct {
		DailyGoalCups int `yaml:"daily_goal_cups"`
	} `yaml:"hydration"`
	TimeZone string `yaml:"time_zone"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if id, key := os.Getenv("NUTRITIONIX_APP_ID"), os.Getenv("NUTRITIONIX_APP_KEY"); id != "" && key != "" {
		cfg.Nutritionix.Credentials = append([]Credential{{AppID: id, AppKey: key}}, cfg.Nutritionix.Credentials...)
	}
	if id, key := os.Getenv("NUTRITIONIX_APP_ID2"), os.Getenv("NUTRITIONIX_APP_KEY2"); id != "" && key != "" {
		cfg.Nutritionix.Credentials = append(cfg.Nutritionix.Credentials, Credential{AppID: id, AppKey: key})
	}
	if v := os.Getenv("NUTRITIONIX_BASE_URL"); v != "" {
		cfg.Nutritionix.BaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HEALTH_EXPORT_PATH"); v != "" {
		cfg.Health.ExportPath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		cfg.Schedule.WeeklyCron = v
	}
	if v := os.Getenv("TRACKER_TIMEZONE"); v != "" {
		cfg.TimeZone = v
	}
	if v := os.Getenv("HYDRATION_GOAL_CUPS"); v != "" {
		if cups, err := strconv.Atoi(v); err == nil {
			cfg.Hydration.DailyGoalCups = cups
		}
	}

	// Defaults
	if cfg.Nutritionix.BaseURL == "" {
		cfg.Nutritionix.BaseURL = "https://trackapi.nutritionix.com/v2"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/fittrack.db"
	}
	if cfg.Schedule.DailyCron == "" {
		// End-of-day snapshot just before midnight.
		cfg.Schedule.DailyCron = "0 55 23 * * *"
	}
	if cfg.Schedule.WeeklyCron == "" {
		// Weekly summary on Monday mornings.
		cfg.Schedule.WeeklyCron = "0 0 8 * * 1"
	}
	if cfg.Hydration.DailyGoalCups == 0 {
		cfg.Hydration.DailyGoalCups = 8
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = "Local"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Nutritionix.Credentials) == 0 {
		return fmt.Errorf("nutritionix.credentials: at least one app_id/app_key pair is required")
	}
	for i, cred := range c.Nutritionix.Credentials {
		if cred.AppID == "" || cred.AppKey == "" {
			return fmt.Errorf("nutritionix.credentials[%d]: app_id and app_key are required", i)
		}
	}
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("time_zone %q: %w", c.TimeZone, err)
	}
	return nil
}

// Location resolves the configured time zone. Call Validate first.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}
