package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/vytor/studyflash/internal/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	FormatConsole = "console"
	FormatJSON    = "json"
)

type Config struct {
	Addr             string
	DBDriver         string
	DBPath           string
	DatabaseURL      string
	LogLevel         string
	LogFormat        string
	RedisURL         string
	BatchCacheTTL    time.Duration
	OverviewCacheTTL time.Duration
	WorkerCount      int
	QueueSize        int
	SnapshotTime     string
	ReminderInterval time.Duration
	TelegramToken    string
	SessionMinutes   int
	ScheduleDays     int
}

var defaults = map[string]any{
	"addr":               ":8080",
	"db_driver":          DriverSQLite,
	"db_path":            "file:studyflash.db",
	"log_level":          "INFO",
	"log_format":         FormatConsole,
	"batch_cache_ttl":    "15m",
	"overview_cache_ttl": "10m",
	"worker_count":       2,
	"queue_size":         64,
	"snapshot_time":      "23:55",
	"reminder_interval":  "4h",
	"session_minutes":    20,
	"schedule_days":      7,
}

// Load reads configuration from a .env file (if present), an optional config.yaml and
// environment variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	for k, def := range defaults {
		v.SetDefault(k, def)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range []string{"database_url", "redis_url", "telegram_token"} {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logger.Warn("ignoring unreadable config file: %v", err)
		}
	}

	return Config{
		Addr:             v.GetString("addr"),
		DBDriver:         strings.ToLower(v.GetString("db_driver")),
		DBPath:           v.GetString("db_path"),
		DatabaseURL:      v.GetString("database_url"),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        strings.ToLower(v.GetString("log_format")),
		RedisURL:         v.GetString("redis_url"),
		BatchCacheTTL:    durationOr(v, "batch_cache_ttl"),
		OverviewCacheTTL: durationOr(v, "overview_cache_ttl"),
		WorkerCount:      intOr(v, "worker_count"),
		QueueSize:        intOr(v, "queue_size"),
		SnapshotTime:     v.GetString("snapshot_time"),
		ReminderInterval: durationOr(v, "reminder_interval"),
		TelegramToken:    v.GetString("telegram_token"),
		SessionMinutes:   intOr(v, "session_minutes"),
		ScheduleDays:     intOr(v, "schedule_days"),
	}
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Addr == "" {
		add("ADDR cannot be empty")
	}
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			add("DB_PATH cannot be empty")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			add("DATABASE_URL cannot be empty when DB_DRIVER=postgres")
		}
	default:
		add("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		add("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel)
	}
	if c.LogFormat != FormatConsole && c.LogFormat != FormatJSON {
		add("LOG_FORMAT must be %q or %q, got %q", FormatConsole, FormatJSON, c.LogFormat)
	}
	if c.BatchCacheTTL < 0 || c.OverviewCacheTTL < 0 {
		add("cache TTLs cannot be negative")
	}
	if c.WorkerCount < 1 {
		add("WORKER_COUNT must be at least 1, got %d", c.WorkerCount)
	}
	if c.QueueSize < 1 {
		add("QUEUE_SIZE must be at least 1, got %d", c.QueueSize)
	}
	if _, err := time.Parse("15:04", c.SnapshotTime); err != nil {
		add("SNAPSHOT_TIME must be HH:MM, got %q", c.SnapshotTime)
	}
	if c.ReminderInterval < 0 {
		add("REMINDER_INTERVAL cannot be negative")
	}
	if c.SessionMinutes < 1 {
		add("SESSION_MINUTES must be at least 1, got %d", c.SessionMinutes)
	}
	if c.ScheduleDays < 1 || c.ScheduleDays > 365 {
		add("SCHEDULE_DAYS must be between 1 and 365, got %d", c.ScheduleDays)
	}
	return errors.Join(errs...)
}

func intOr(v *viper.Viper, key string) int {
	raw := v.GetString(key)
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		def := defaults[key].(int)
		logger.Warn("invalid value for %s=%q, using default %d", strings.ToUpper(key), raw, def)
		return def
	}
	return i
}

func durationOr(v *viper.Viper, key string) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		def, _ := time.ParseDuration(defaults[key].(string))
		logger.Warn("invalid value for %s=%q, using default %s", strings.ToUpper(key), raw, def)
		return def
	}
	return d
}
