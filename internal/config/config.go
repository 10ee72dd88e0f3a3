// Package config centralises configuration parsing for workoutstats.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sstent/workoutstats/internal/models"
)

// Config captures runtime configuration values.
type Config struct {
	HTTPAddress    string
	DataDir        string
	DBPath         string
	InboxDir       string
	SyncSchedule   string
	GatewayURL     string // empty disables gateway pulls
	GatewayTimeout time.Duration
	GatewayBatch   int
	Athlete        models.AthleteProfile
}

// Load reads an optional .env file and then the environment, applying defaults for local use.
func Load() Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds Config from the current environment only.
func FromEnv() Config {
	dataDir := getEnv("DATA_DIR", "./data")
	return Config{
		HTTPAddress:    getEnv("HTTP_ADDRESS", ":8888"),
		DataDir:        dataDir,
		DBPath:         getEnv("DB_PATH", filepath.Join(dataDir, "workouts.db")),
		InboxDir:       getEnv("INBOX_DIR", filepath.Join(dataDir, "inbox")),
		SyncSchedule:   getEnv("SYNC_SCHEDULE", "@hourly"),
		GatewayURL:     getEnv("GATEWAY_URL", ""),
		GatewayTimeout: getDurationEnv("GATEWAY_TIMEOUT", 30*time.Second),
		GatewayBatch:   getIntEnv("GATEWAY_BATCH", 100),
		Athlete: models.AthleteProfile{
			WeightKG: getFloatEnv("ATHLETE_WEIGHT_KG", 75),
			HeightCM: getFloatEnv("ATHLETE_HEIGHT_CM", 175),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
