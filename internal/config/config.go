package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig captures all tunable parameters for the shuttle
// process. Values are primarily loaded from environment variables with
// sane defaults so the binary can run locally without excessive setup.
type ServerConfig struct {
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	RedisAddr     string
	RedisPassword string

	PGDSN string

	KafkaBrokers []string
	KafkaTopic   string

	Fare          int
	TrackInterval time.Duration
	TrackSteps    int
	ListLoadDelay time.Duration

	GeoEndpoint string
	GeoTimeout  time.Duration

	NotifyEndpoint string
	NotifyKey      string

	StripeEnabled bool

	LogLevel string
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPAddr:        ":8080",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		KafkaTopic:      "vehicle-positions",
		Fare:            20,
		TrackInterval:   800 * time.Millisecond,
		TrackSteps:      60,
		ListLoadDelay:   520 * time.Millisecond,
		GeoTimeout:      5 * time.Second,
		LogLevel:        "info",
	}
}

func LoadServerConfig() (ServerConfig, error) {
	cfg := defaultServerConfig()
	var errs []error

	setStringFromEnv(&cfg.HTTPAddr, "HTTP_ADDR")
	setDurationFromEnv(&cfg.ReadTimeout, "HTTP_READ_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.WriteTimeout, "HTTP_WRITE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.IdleTimeout, "HTTP_IDLE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.ShutdownTimeout, "HTTP_SHUTDOWN_TIMEOUT", &errs)

	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	cfg.PGDSN = os.Getenv("PG_DSN")

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	setStringFromEnv(&cfg.KafkaTopic, "KAFKA_TOPIC")

	setIntFromEnv(&cfg.Fare, "SHUTTLE_FARE", &errs)
	setDurationFromEnv(&cfg.TrackInterval, "TRACK_INTERVAL", &errs)
	setIntFromEnv(&cfg.TrackSteps, "TRACK_STEPS", &errs)
	setDurationFromEnv(&cfg.ListLoadDelay, "LIST_LOAD_DELAY", &errs)

	setStringFromEnv(&cfg.GeoEndpoint, "GEO_ENDPOINT")
	setDurationFromEnv(&cfg.GeoTimeout, "GEO_TIMEOUT", &errs)

	setStringFromEnv(&cfg.NotifyEndpoint, "NOTIFY_ENDPOINT")
	cfg.NotifyKey = os.Getenv("NOTIFY_KEY")

	cfg.StripeEnabled = os.Getenv("STRIPE_API_KEY") != ""

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if cfg.Fare < 0 {
		errs = append(errs, fmt.Errorf("SHUTTLE_FARE must be >= 0"))
	}
	if cfg.TrackSteps <= 0 {
		errs = append(errs, fmt.Errorf("TRACK_STEPS must be > 0"))
	}

	return cfg, errors.Join(errs...)
}

func setDurationFromEnv(target *time.Duration, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = d
	}
}

func setIntFromEnv(target *int, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = i
	}
}

func setStringFromEnv(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func splitAndTrim(v string) []string {
	raw := strings.Split(v, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
