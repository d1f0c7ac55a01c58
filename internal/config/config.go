package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Payroll  PayrollConfig
	Telegram TelegramConfig
	CORS     CORSConfig
	Digest   DigestConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string
	Port     int
	Env      string
	LogLevel string
	Version  string
}

// StoreConfig selects the document store backend: "mongo", "postgres" or
// "memory" (local development only).
type StoreConfig struct {
	Driver string
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// PayrollConfig holds the pay policy constants.
type PayrollConfig struct {
	Timezone           string
	WeekStart          string
	HoursPerDay        int
	MonthlyWorkingDays int
	OvertimeMultiplier decimal.Decimal
	MorningShift       string
	AfternoonShift     string
	Currency           string
}

// TelegramConfig configures the chat bot. The bot token itself is read from
// TokenEnv on every send and is never stored here.
type TelegramConfig struct {
	APIBaseURL    string
	TokenEnv      string
	DefaultChatID string
	Timeout       time.Duration
	QueueSize     int
	WorkerCount   int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// DigestConfig controls the periodic payroll summary job. Zero disables it.
type DigestConfig struct {
	Interval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Warn("No .env file found, using process environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:     getEnv("APP_NAME", "furnishop-backend"),
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
	}

	config.Store = StoreConfig{
		Driver: strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
	}

	// MongoDB configuration
	mongoTimeout, err := time.ParseDuration(getEnv("MONGO_CONNECT_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_CONNECT_TIMEOUT: %w", err)
	}

	config.Mongo = MongoConfig{
		URI:            getEnv("MONGO_URI", ""),
		Database:       getEnv("MONGO_DATABASE", "furnishop"),
		ConnectTimeout: mongoTimeout,
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "furnishop"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Payroll configuration
	hoursPerDay, err := strconv.Atoi(getEnv("PAYROLL_HOURS_PER_DAY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_HOURS_PER_DAY: %w", err)
	}
	workingDays, err := strconv.Atoi(getEnv("PAYROLL_MONTHLY_WORKING_DAYS", "26"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_MONTHLY_WORKING_DAYS: %w", err)
	}
	overtimeMultiplier, err := decimal.NewFromString(getEnv("PAYROLL_OVERTIME_MULTIPLIER", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_OVERTIME_MULTIPLIER: %w", err)
	}

	config.Payroll = PayrollConfig{
		Timezone:           getEnv("PAYROLL_TIMEZONE", "Africa/Addis_Ababa"),
		WeekStart:          getEnv("PAYROLL_WEEK_START", "Monday"),
		HoursPerDay:        hoursPerDay,
		MonthlyWorkingDays: workingDays,
		OvertimeMultiplier: overtimeMultiplier,
		MorningShift:       getEnv("PAYROLL_MORNING_SHIFT", "08:00-12:30"),
		AfternoonShift:     getEnv("PAYROLL_AFTERNOON_SHIFT", "13:00-17:00"),
		Currency:           getEnv("PAYROLL_CURRENCY", "ETB"),
	}

	// Telegram configuration
	telegramTimeout, err := time.ParseDuration(getEnv("TELEGRAM_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_TIMEOUT: %w", err)
	}
	queueSize, err := strconv.Atoi(getEnv("NOTIFICATION_QUEUE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_QUEUE_SIZE: %w", err)
	}
	workerCount, err := strconv.Atoi(getEnv("NOTIFICATION_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_WORKERS: %w", err)
	}

	config.Telegram = TelegramConfig{
		APIBaseURL:    getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
		TokenEnv:      getEnv("TELEGRAM_TOKEN_ENV", "TELEGRAM_BOT_TOKEN"),
		DefaultChatID: getEnv("TELEGRAM_DEFAULT_CHAT_ID", ""),
		Timeout:       telegramTimeout,
		QueueSize:     queueSize,
		WorkerCount:   workerCount,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Digest configuration
	digestInterval, err := time.ParseDuration(getEnv("PAYROLL_DIGEST_INTERVAL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DIGEST_INTERVAL: %w", err)
	}
	config.Digest = DigestConfig{Interval: digestInterval}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}

	switch c.Store.Driver {
	case "mongo":
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when STORE_DRIVER=postgres")
		}
	case "memory":
		if c.App.Env == "production" {
			return fmt.Errorf("STORE_DRIVER=memory is not allowed in production")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of mongo, postgres, memory")
	}

	if c.Payroll.HoursPerDay <= 0 {
		return fmt.Errorf("PAYROLL_HOURS_PER_DAY must be positive")
	}
	if c.Payroll.MonthlyWorkingDays <= 0 || c.Payroll.MonthlyWorkingDays > 31 {
		return fmt.Errorf("PAYROLL_MONTHLY_WORKING_DAYS must be between 1 and 31")
	}
	if !c.Payroll.OvertimeMultiplier.IsPositive() {
		return fmt.Errorf("PAYROLL_OVERTIME_MULTIPLIER must be positive")
	}
	if c.Digest.Interval < 0 {
		return fmt.Errorf("PAYROLL_DIGEST_INTERVAL must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
