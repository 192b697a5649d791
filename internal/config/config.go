package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr  string
	PublicURL   string
	DatabaseURL string

	// RoomIdleTimeout is how long an empty room survives before the hub
	// reaps it. Zero keeps rooms forever.
	RoomIdleTimeout time.Duration

	// CursorRate caps cursor-move messages per second per connection.
	CursorRate float64

	// AllowSpectatorHost restores the legacy succession rule where a
	// spectator can inherit the host role.
	AllowSpectatorHost bool
}

// Load reads .env if present, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr:         getenv("LISTEN_ADDR", ":8080"),
		PublicURL:          getenv("PUBLIC_URL", "http://localhost:8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RoomIdleTimeout:    getduration("ROOM_IDLE_TIMEOUT", time.Hour),
		CursorRate:         getfloat("CURSOR_RATE", 30),
		AllowSpectatorHost: getbool("ALLOW_SPECTATOR_HOST", false),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getfloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
