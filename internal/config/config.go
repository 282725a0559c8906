package config

import (
	"os"
	"time"
)

type Config struct {
	DatabaseURL    string
	Location       *time.Location
	HTTPAddr       string
	LogLevel       string
	Env            string // dev|prod
	SentryDSN      string
	SupabaseURL    string // storage endpoint for selfies
	SupabaseKey    string
	SupabaseBucket string
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Asia/Jakarta")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	cfg := &Config{
		DatabaseURL:    mustEnv("DATABASE_URL"),
		Location:       loc,
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		Env:            getenv("ENV", "dev"),
		SentryDSN:      os.Getenv("SENTRY_DSN"),
		SupabaseURL:    mustEnv("SUPABASE_URL"),
		SupabaseKey:    mustEnv("SUPABASE_ANON_KEY"),
		SupabaseBucket: getenv("SUPABASE_BUCKET", "selfies"),
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
