package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	LogLevel string
	LogFile  string

	ClassifierURL     string
	ClassifierTimeout time.Duration

	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
	BreakerEnabled      bool

	TextExcerptChars int

	MetricsAddr string

	SortSourceDir        string
	SortTargetDir        string
	SortRatePerSecond    float64
	SortFallbackCategory string
}

func Load() Config {
	return Config{
		LogLevel: mustEnv("LOG_LEVEL", "info"),
		LogFile:  mustEnv("LOG_FILE", ""),

		ClassifierURL:     mustEnv("CLASSIFIER_URL", "http://localhost:5000"),
		ClassifierTimeout: mustEnvDuration("CLASSIFIER_TIMEOUT", 0),

		RetryMaxAttempts:    mustEnvInt("CLASSIFIER_RETRY_MAX_ATTEMPTS", 1),
		RetryInitialBackoff: mustEnvDuration("CLASSIFIER_RETRY_INITIAL_BACKOFF", 100*time.Millisecond),
		RetryMaxBackoff:     mustEnvDuration("CLASSIFIER_RETRY_MAX_BACKOFF", 400*time.Millisecond),
		BreakerEnabled:      mustEnvBool("CLASSIFIER_BREAKER_ENABLED", false),

		TextExcerptChars: mustEnvInt("TEXT_EXCERPT_CHARS", 150),

		MetricsAddr: mustEnv("METRICS_ADDR", ""),

		SortSourceDir:        mustEnv("SORT_SOURCE_DIR", "source_folder"),
		SortTargetDir:        mustEnv("SORT_TARGET_DIR", "sorted"),
		SortRatePerSecond:    mustEnvFloat("SORT_RATE_PER_SECOND", 5),
		SortFallbackCategory: mustEnv("SORT_FALLBACK_CATEGORY", "Unsorted"),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
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

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// mustEnvDuration accepts Go durations ("2s") or bare seconds ("2").
func mustEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
