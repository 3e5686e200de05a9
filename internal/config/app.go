package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const defaultPort = ":8080"

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

// Port is the listen address of the server, ":8080" unless APP_PORT is set.
func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultPort
	}
	return port
}

// AllowedOrigins lists the CORS origins from the comma separated
// CORS_ORIGINS variable.
func AllowedOrigins() []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

const defaultSessionIdle = 24 * time.Hour

// SessionIdle is how long an untouched game session is kept, taken from
// SESSION_IDLE as a Go duration.
func SessionIdle() (time.Duration, error) {
	s, ok := os.LookupEnv("SESSION_IDLE")
	if !ok || s == "" {
		return defaultSessionIdle, nil
	}
	idle, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse SESSION_IDLE: %w", err)
	}
	if idle <= 0 {
		return 0, fmt.Errorf("SESSION_IDLE must be positive, got %s", idle)
	}
	return idle, nil
}
