package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

type Config struct {
	BotToken string
	AdminIDs []int64

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPass      string
	DBName      string
	DBSSLMode   string

	StateBackend       string // postgres | memory
	StateTTL           time.Duration
	StateSweepInterval time.Duration
	HandleTimeout      time.Duration

	// OrderStatuses is ordered: the first one is assigned to new orders,
	// FinalStatuses are hidden from the customer's active orders.
	OrderStatuses []string
	FinalStatuses []string

	DefaultLocale string

	JWTSecret         string
	AdminSessionTTL   time.Duration
	AdminPasswordHash string

	KafkaBrokers string
	KafkaTopic   string
	MetricsAddr  string
	LogLevel     string
}

func Load() (*Config, error) {
	_, filename, _, _ := runtime.Caller(0) // корневая папка проекта
	rootDir := filepath.Join(filepath.Dir(filename), "..", "..")

	envPath := filepath.Join(rootDir, ".env") // .env необязателен, переменные могут прийти из окружения
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		BotToken:          os.Getenv("BOT_TOKEN"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBUser:            os.Getenv("DB_USER"),
		DBPass:            os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSSLMode:         getenv("DB_SSLMODE", "disable"),
		StateBackend:      getenv("STATE_BACKEND", "postgres"),
		DefaultLocale:     getenv("DEFAULT_LOCALE", "ru"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		KafkaBrokers:      os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:        getenv("KAFKA_TOPIC", "storebot.orders"),
		MetricsAddr:       os.Getenv("METRICS_ADDR"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		OrderStatuses:     splitCSV(getenv("ORDER_STATUSES", "in_progress,pending,shipped,done,cancelled")),
		FinalStatuses:     splitCSV(getenv("FINAL_STATUSES", "done,cancelled")),
	}

	var errs []error
	if cfg.BotToken == "" {
		errs = append(errs, errors.New("BOT_TOKEN is required"))
	}

	var err error
	if cfg.AdminIDs, err = parseIDs(os.Getenv("ADMIN_IDS")); err != nil {
		errs = append(errs, err)
	}
	if cfg.StateTTL, err = getDuration("STATE_TTL", 24*time.Hour); err != nil {
		errs = append(errs, err)
	}
	if cfg.StateSweepInterval, err = getDuration("STATE_SWEEP_INTERVAL", 10*time.Minute); err != nil {
		errs = append(errs, err)
	}
	if cfg.AdminSessionTTL, err = getDuration("ADMIN_SESSION_TTL", 12*time.Hour); err != nil {
		errs = append(errs, err)
	}
	if cfg.HandleTimeout, err = getDuration("HANDLE_TIMEOUT", 30*time.Second); err != nil {
		errs = append(errs, err)
	}

	if len(cfg.OrderStatuses) == 0 {
		errs = append(errs, errors.New("ORDER_STATUSES must not be empty"))
	}
	for _, s := range cfg.FinalStatuses {
		if !lo.Contains(cfg.OrderStatuses, s) {
			errs = append(errs, fmt.Errorf("FINAL_STATUSES: %q is not in ORDER_STATUSES", s))
		}
	}
	if cfg.StateBackend != "postgres" && cfg.StateBackend != "memory" {
		errs = append(errs, fmt.Errorf("STATE_BACKEND: unknown backend %q", cfg.StateBackend))
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = cfg.BotToken
	}
	if cfg.DatabaseURL == "" && cfg.DBName == "" {
		errs = append(errs, errors.New("DATABASE_URL or DB_NAME is required"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConnString prefers DATABASE_URL and falls back to the DB_* variables.
func (c *Config) ConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName, c.DBSSLMode,
	)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range splitCSV(s) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_IDS: %q is not a number", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
