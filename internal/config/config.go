package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// smtpPlaceholderHost is the value shipped in sample env files.
const smtpPlaceholderHost = "YOUR_SMTP_HOST"

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
	RateLimit    RateLimitConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN             string
	ApplicationName string
	MaxConns        int32
	MinConns        int32
	RunMigrations   bool
	MigrationsDir   string
	ConnMaxIdleSec  int32
	ConnMaxLifeSec  int32
	ConnectTimeout  int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines staff authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	AdminName             string
	AdminEmail            string
	AdminPassword         string
}

// NotificationConfig holds mail transport settings.
type NotificationConfig struct {
	FromName       string
	FromAddress    string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	SendGridAPIKey string
	TimeZone       string
}

// RateLimitConfig bounds public submissions per client.
type RateLimitConfig struct {
	SubmissionsPerWindow int
	WindowSeconds        int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	appName := getEnv("APP_NAME", "admissions-service")

	cfg := &Config{
		App: AppConfig{
			Name:                  appName,
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:             os.Getenv("POSTGRES_DSN"),
			ApplicationName: appName,
			MaxConns:        maxConns,
			MinConns:        minConns,
			RunMigrations:   runMigrations,
			MigrationsDir:   getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec:  connMaxIdle,
			ConnMaxLifeSec:  connMaxLife,
			ConnectTimeout:  getEnvAsInt("POSTGRES_CONNECT_TIMEOUT_SECONDS", 10),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			AdminName:             getEnv("ADMIN_NAME", "Administrator"),
			AdminEmail:            os.Getenv("ADMIN_EMAIL"),
			AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
		},
		Notification: NotificationConfig{
			FromName:       getEnv("MAIL_FROM_NAME", "Career Redefine"),
			FromAddress:    os.Getenv("MAIL_FROM_ADDRESS"),
			SMTPHost:       os.Getenv("SMTP_HOST"),
			SMTPPort:       smtpPort,
			SMTPUser:       os.Getenv("SMTP_USER"),
			SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			TimeZone:       getEnv("MAIL_TIMEZONE", "UTC"),
		},
		RateLimit: RateLimitConfig{
			SubmissionsPerWindow: getEnvAsInt("RATE_LIMIT_SUBMISSIONS", 5),
			WindowSeconds:        getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 600),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the lifetime of issued staff tokens.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// SMTPConfigured reports whether every SMTP credential is present and not a placeholder.
func (n NotificationConfig) SMTPConfigured() bool {
	host := strings.TrimSpace(n.SMTPHost)
	if host == "" || host == smtpPlaceholderHost {
		return false
	}
	return n.SMTPPort > 0 && n.SMTPUser != "" && n.SMTPPassword != ""
}

// SendGridConfigured reports whether a SendGrid API key is present.
func (n NotificationConfig) SendGridConfigured() bool {
	return strings.TrimSpace(n.SendGridAPIKey) != ""
}

// Sender returns the envelope address, falling back to the SMTP user.
func (n NotificationConfig) Sender() string {
	if n.FromAddress != "" {
		return n.FromAddress
	}
	return n.SMTPUser
}

// Location resolves TimeZone, falling back to UTC when it is unknown.
func (n NotificationConfig) Location() *time.Location {
	loc, err := time.LoadLocation(n.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Window returns the rate limiting window.
func (r RateLimitConfig) Window() time.Duration {
	if r.WindowSeconds <= 0 {
		return 0
	}
	return time.Duration(r.WindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
