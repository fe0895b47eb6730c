package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/srgjo27/event_booking/internal/platform/database"
)

const (
	LedgerMemory   = "memory"
	LedgerPostgres = "postgres"
	LedgerSQLite   = "sqlite"
)

type Config struct {
	HTTPAddr       string
	AllowedOrigins []string

	LedgerBackend string
	Postgres      database.Config
	SQLitePath    string

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CatalogTTL    time.Duration

	AMQPURL string

	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration
	SeedCatalog            bool
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFile string) Config {
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("File %s not found, using OS environment.", envFile)
		} else {
			log.Printf("Failed to read %s: %v", envFile, err)
		}
	}

	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),

		LedgerBackend: getenv("LEDGER_BACKEND", LedgerMemory),
		Postgres: database.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD", ""),
			DBName:   getenv("DB_NAME", "event_booking"),
		},
		SQLitePath: getenv("SQLITE_PATH", "event_booking.db"),

		RedisEnabled:  getBool("REDIS_ENABLED", false),
		RedisHost:     getenv("REDIS_HOST", "localhost"),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		CatalogTTL:    getDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		AMQPURL: getenv("AMQP_URL", ""),

		SessionTTL:             getDuration("SESSION_TTL", 2*time.Hour),
		SessionCleanupInterval: getDuration("SESSION_CLEANUP_INTERVAL", time.Minute),
		SeedCatalog:            getBool("SEED_CATALOG", true),
	}
}

func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid int for %s: %q, using %d", key, s, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Printf("Invalid bool for %s: %q, using %t", key, s, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using %s", key, s, fallback)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
