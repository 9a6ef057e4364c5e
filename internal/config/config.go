package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults mirror the deployment this service replaces: the roster refresh
// runs every 10 seconds and the service window spans 07:00 to 22:00.
const (
	DefaultAddr             = ":5000"
	DefaultDataDir          = "data"
	DefaultUploadDir        = "uploads"
	DefaultServiceOpenHour  = 7
	DefaultServiceCloseHour = 22
	DefaultRosterInterval   = 10 * time.Second
)

// Config holds all configuration for the application.
type Config struct {
	Addr             string
	DataDir          string
	UploadDir        string
	ServiceOpenHour  int
	ServiceCloseHour int
	RosterInterval   time.Duration
	WatchDataDir     bool
}

// New loads configuration from environment variables.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Addr:             envOr("PARTAGE_ADDR", DefaultAddr),
		DataDir:          envOr("PARTAGE_DATA_DIR", DefaultDataDir),
		UploadDir:        envOr("PARTAGE_UPLOAD_DIR", DefaultUploadDir),
		ServiceOpenHour:  envIntOr("PARTAGE_SERVICE_OPEN_HOUR", DefaultServiceOpenHour),
		ServiceCloseHour: envIntOr("PARTAGE_SERVICE_CLOSE_HOUR", DefaultServiceCloseHour),
		RosterInterval:   envDurationOr("PARTAGE_ROSTER_INTERVAL", DefaultRosterInterval),
		WatchDataDir:     envBoolOr("PARTAGE_WATCH_DATA_DIR", false),
	}

	if cfg.ServiceOpenHour < 0 || cfg.ServiceOpenHour > 23 ||
		cfg.ServiceCloseHour < 0 || cfg.ServiceCloseHour > 24 {
		log.Fatal("PARTAGE_SERVICE_OPEN_HOUR and PARTAGE_SERVICE_CLOSE_HOUR must be valid hours of day")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}

func envBoolOr(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid boolean for %s: %q, using default %t", key, v, fallback)
		return fallback
	}
	return b
}
