package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database      DatabaseConfig
	App           AppConfig
	Consolidation ConsolidationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Env            string
	LogLevel       string
	OrganizationID string
}

// ConsolidationConfig holds the engine's time parameters.
type ConsolidationConfig struct {
	StandardDailyMinutes int
	NightStartHour       int
	NightEndHour         int
	LateThresholdMinutes int
	WorkDaysPerWeek      int
}

func Load() (*Config, error) {
	// .env is optional outside local development.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timesheet-engine"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	config.App = AppConfig{
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		OrganizationID: getEnv("ORGANIZATION_ID", ""),
	}

	// Consolidation configuration
	standardDailyMinutes, err := getEnvInt("STANDARD_DAILY_MINUTES", 480)
	if err != nil {
		return nil, err
	}
	nightStartHour, err := getEnvInt("NIGHT_START_HOUR", 21)
	if err != nil {
		return nil, err
	}
	nightEndHour, err := getEnvInt("NIGHT_END_HOUR", 6)
	if err != nil {
		return nil, err
	}
	lateThresholdMinutes, err := getEnvInt("LATE_THRESHOLD_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	workDaysPerWeek, err := getEnvInt("WORK_DAYS_PER_WEEK", 6)
	if err != nil {
		return nil, err
	}

	config.Consolidation = ConsolidationConfig{
		StandardDailyMinutes: standardDailyMinutes,
		NightStartHour:       nightStartHour,
		NightEndHour:         nightEndHour,
		LateThresholdMinutes: lateThresholdMinutes,
		WorkDaysPerWeek:      workDaysPerWeek,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.App.OrganizationID == "" {
		return fmt.Errorf("ORGANIZATION_ID is required")
	}
	if c.Consolidation.StandardDailyMinutes <= 0 {
		return fmt.Errorf("STANDARD_DAILY_MINUTES must be positive")
	}
	if c.Consolidation.NightStartHour < 0 || c.Consolidation.NightStartHour > 23 {
		return fmt.Errorf("NIGHT_START_HOUR must be between 0 and 23")
	}
	if c.Consolidation.NightEndHour < 0 || c.Consolidation.NightEndHour > 23 {
		return fmt.Errorf("NIGHT_END_HOUR must be between 0 and 23")
	}
	if c.Consolidation.WorkDaysPerWeek <= 0 || c.Consolidation.WorkDaysPerWeek > 7 {
		return fmt.Errorf("WORK_DAYS_PER_WEEK must be between 1 and 7")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
