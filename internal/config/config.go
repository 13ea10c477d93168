// Package config loads application configuration from environment
// variables.
package config

import (
	"log"
	"os"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The booking fields turn what the
// reference rule set hardcodes (closed on Tuesday, open 10:30-21:30)
// into per-deployment values.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	ClosedWeekday string // weekday on which the restaurant takes no reservations
	OpenTime      string // first bookable time of day, "HH:MM"
	CloseTime     string // last bookable time of day, "HH:MM"
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must(); the booking
// values fall back to the reference rule set when unset.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		ClosedWeekday: getenv("BOOKING_CLOSED_WEEKDAY", "Tuesday"),
		OpenTime:      getenv("BOOKING_OPEN_TIME", "10:30"),
		CloseTime:     getenv("BOOKING_CLOSE_TIME", "21:30"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
