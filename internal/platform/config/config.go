package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Session lock backends.
const (
	LockBackendFile  = "file"
	LockBackendRedis = "redis"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port           string
	IsProduction   bool
	StorageDriver  string
	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string
	RunMigrations  bool

	// Operator credentials
	OperatorUser         string
	OperatorPasswordHash string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	SessionLockBackend string
	SessionLockFile    string
	SessionLockTimeout time.Duration
	RedisAddr          string
	RedisPassword      string
	RedisDB            int

	DailyFine          decimal.Decimal
	LoginRateLimit     string
	CORSAllowedOrigins []string
	Location           *time.Location
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("BESTSYSTEM_USER", "admin")
	v.SetDefault("BESTSYSTEM_PASSWORD_HASH", "")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "8h")
	v.SetDefault("JWT_ISSUER", "bestsystem-backend")
	v.SetDefault("SESSION_LOCK_BACKEND", LockBackendFile)
	v.SetDefault("SESSION_LOCK_FILE", "runtime/bestsystem.lock")
	v.SetDefault("SESSION_LOCK_TIMEOUT", "60m")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DAILY_FINE", "3.90")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")

	// The credential variables of the first deployment are still honored.
	_ = v.BindEnv("BESTSYSTEM_USER", "BESTSYSTEM_USER", "BESTCELL_USER")
	_ = v.BindEnv("BESTSYSTEM_PASSWORD_HASH", "BESTSYSTEM_PASSWORD_HASH", "BESTCELL_PASSWORD_HASH")

	v.AutomaticEnv()

	cfg := &Config{
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		StorageDriver:        strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseURL:          v.GetString("PGSQL_URL"),
		EnableDBCheck:        v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:       v.GetString("MIGRATIONS_PATH"),
		RunMigrations:        v.GetBool("RUN_MIGRATIONS"),
		OperatorUser:         v.GetString("BESTSYSTEM_USER"),
		OperatorPasswordHash: v.GetString("BESTSYSTEM_PASSWORD_HASH"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTIssuer:            v.GetString("JWT_ISSUER"),
		SessionLockBackend:   strings.ToLower(v.GetString("SESSION_LOCK_BACKEND")),
		SessionLockFile:      v.GetString("SESSION_LOCK_FILE"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		RedisDB:              v.GetInt("REDIS_DB"),
		LoginRateLimit:       v.GetString("LOGIN_RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.OperatorPasswordHash == "" {
		log.Println("Warning: BESTSYSTEM_PASSWORD_HASH not set. Using the development password.")
	}

	cfg.JWTExpiryDuration = parseDuration(v.GetString("JWT_EXPIRY_DURATION"), 8*time.Hour, "JWT_EXPIRY_DURATION")
	cfg.SessionLockTimeout = parseDuration(v.GetString("SESSION_LOCK_TIMEOUT"), 60*time.Minute, "SESSION_LOCK_TIMEOUT")

	dailyFineStr := v.GetString("DAILY_FINE")
	dailyFine, err := decimal.NewFromString(dailyFineStr)
	if err != nil || dailyFine.IsNegative() {
		dailyFine = decimal.RequireFromString("3.90")
		log.Printf("Warning: Invalid value for DAILY_FINE ('%s'). Defaulting to %s.\n", dailyFineStr, dailyFine)
	}
	cfg.DailyFine = dailyFine

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	tz := v.GetString("TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Unknown TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		loc = time.UTC
	}
	cfg.Location = loc

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration, key string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
