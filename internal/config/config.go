package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the web client needs at startup.
type Config struct {
	Port         string
	AllowOrigins string

	FrontendAPIURL string
	UserAPIURL     string
	SellerAPIURL   string
	HTTPTimeout    time.Duration

	StorageDriver string
	StorageSecret string
	Redis         RedisConfig
	Postgres      PostgresConfig

	SessionSecret string
	SessionTTL    time.Duration
	StripeKey     string

	LimitDebounce     time.Duration
	SearchDebounce    time.Duration
	CryptoIdentifiers []string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type PostgresConfig struct {
	Host            string
	User            string
	Password        string
	Name            string
	Port            string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:         GetEnv("PORT", "3000"),
		AllowOrigins: GetEnv("CORS_ORIGINS", "http://localhost:5173"),

		FrontendAPIURL: GetEnv("FRONTEND_API_URL", "http://localhost:8000/api/frontend"),
		UserAPIURL:     GetEnv("USER_API_URL", "http://localhost:8000/api/user"),
		SellerAPIURL:   GetEnv("SELLER_API_URL", "http://localhost:8000/api/seller"),
		HTTPTimeout:    GetDurationEnv("HTTP_TIMEOUT", 30*time.Second),

		StorageDriver: GetEnv("STORAGE_DRIVER", "redis"),
		StorageSecret: GetEnv("STORAGE_SECRET", ""),
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "orusweb"),
			Port:            GetEnv("DB_PORT", "5432"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},

		SessionSecret: GetEnv("SESSION_SECRET", "orusweb"),
		SessionTTL:    GetDurationEnv("SESSION_TTL", 30*24*time.Hour),
		StripeKey:     GetEnv("STRIPE_PUBLISHABLE_KEY", ""),

		LimitDebounce:     GetDurationEnv("LIMIT_DEBOUNCE", 400*time.Millisecond),
		SearchDebounce:    GetDurationEnv("SEARCH_DEBOUNCE", 300*time.Millisecond),
		CryptoIdentifiers: GetListEnv("CRYPTO_GATEWAYS", []string{"coinpayments", "nowpayments", "coinremitter", "blockchain"}),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// GetListEnv splits a comma separated environment variable.
func GetListEnv(key string, defaultVal []string) []string {
	val := GetEnv(key, "")
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
