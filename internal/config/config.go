package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken    string
	DatabaseURL      string
	ReminderInterval time.Duration
	Location         *time.Location
}

// Load reads configuration from environment variables with sane defaults.
// A local .env file is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		TelegramToken:    strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ReminderInterval: parseInterval(strings.TrimSpace(os.Getenv("REMINDER_INTERVAL_HOURS"))),
		Location:         time.Local,
	}

	if tz := strings.TrimSpace(os.Getenv("TIMEZONE")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return cfg, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "auticonnect.db"
	}

	if cfg.ReminderInterval == 0 {
		cfg.ReminderInterval = 6 * time.Hour
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
