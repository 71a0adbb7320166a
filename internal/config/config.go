package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Sheets   SheetsConfig
	Estimate EstimateConfig
	Digest   DigestConfig
	Notify   NotifyConfig
	MongoDB  MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// SheetsConfig contains configuration required to interact with the
// workshop spreadsheet.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	MasterSheet     string
	RatesSheet      string
	EstimateSheet   string
}

// EstimateConfig holds the billing policy knobs of the estimate engine.
type EstimateConfig struct {
	Discount         float64
	SurchargePercent float64
	MaxSlots         int
}

// DigestConfig holds scheduler-related settings.
type DigestConfig struct {
	CronSchedule string
	Timezone     string
}

// NotifyConfig holds the optional estimate-digest webhook target.
type NotifyConfig struct {
	WebhookURL string
}

// MongoDBConfig holds settings for the optional audit trail store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	discount, err := getenvFloat("ESTIMATE_DISCOUNT", 0)
	if err != nil {
		return nil, err
	}
	surcharge, err := getenvFloat("ESTIMATE_SURCHARGE_PERCENT", 4)
	if err != nil {
		return nil, err
	}
	maxSlots, err := getenvInt("ESTIMATE_MAX_SLOTS", 4)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			MasterSheet:     getenvWithDefault("MASTER_SHEET_NAME", "MASTER"),
			RatesSheet:      getenvWithDefault("RATES_SHEET_NAME", "RATES"),
			EstimateSheet:   getenvWithDefault("ESTIMATE_SHEET_NAME", "ESTIMATE"),
		},
		Estimate: EstimateConfig{
			Discount:         discount,
			SurchargePercent: surcharge,
			MaxSlots:         maxSlots,
		},
		Digest: DigestConfig{
			CronSchedule: getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 18 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "tcworkshop"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
// The webhook and MongoDB targets are optional; leaving them empty
// disables the corresponding feature.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
	}

	if c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided")
	}

	switch {
	case c.Sheets.MasterSheet == "":
		return errors.New("MASTER_SHEET_NAME must not be empty")
	case c.Sheets.RatesSheet == "":
		return errors.New("RATES_SHEET_NAME must not be empty")
	case c.Sheets.EstimateSheet == "":
		return errors.New("ESTIMATE_SHEET_NAME must not be empty")
	}

	if c.Estimate.Discount < 0 {
		return errors.New("ESTIMATE_DISCOUNT must not be negative")
	}

	if c.Estimate.SurchargePercent < 0 {
		return errors.New("ESTIMATE_SURCHARGE_PERCENT must not be negative")
	}

	if c.Estimate.MaxSlots < 1 {
		return errors.New("ESTIMATE_MAX_SLOTS must be at least 1")
	}

	if c.Digest.CronSchedule == "" {
		return errors.New("DIGEST_CRON_SCHEDULE must be provided")
	}

	if c.Digest.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric: %w", key, err)
	}
	return parsed, nil
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
