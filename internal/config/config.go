package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	TMDB      TMDBConfig
	LLM       LLMConfig
	RateLimit RateLimitConfig
	Port      string
}

type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TMDBConfig configures the catalog search client.
type TMDBConfig struct {
	APIKey      string
	BaseURL     string
	Language    string
	Region      string
	RequestRate float64 // requests per second
	Burst       int
	CacheTTL    time.Duration
	Timeout     time.Duration
}

// LLMConfig configures the text generator.
type LLMConfig struct {
	APIKey      string
	Models      []string
	TokenBudget int32 // tokens per 24h, 0 disables the budget
	Timeout     time.Duration
}

type RateLimitConfig struct {
	Max           int
	WindowSeconds int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "3"))
	burst, _ := strconv.Atoi(getEnv("TMDB_BURST", "5"))
	rps, _ := strconv.ParseFloat(getEnv("TMDB_REQUESTS_PER_SECOND", "20"), 64)
	budget, _ := strconv.Atoi(getEnv("LLM_TOKEN_BUDGET", "0"))
	rlMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "10"))
	rlWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))

	cfg := &Config{
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "recommender"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		TMDB: TMDBConfig{
			APIKey:      getEnv("TMDB_API_KEY", ""),
			BaseURL:     getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			Language:    getEnv("TMDB_LANGUAGE", "es-ES"),
			Region:      getEnv("TMDB_REGION", "ES"),
			RequestRate: rps,
			Burst:       burst,
			CacheTTL:    getDuration("TMDB_CACHE_TTL", 6*time.Hour),
			Timeout:     getDuration("CATALOG_TIMEOUT", 8*time.Second),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Models:      splitList(getEnv("GEMINI_MODELS", "gemini-2.5-flash,gemini-2.5-flash-lite,gemini-2.0-flash")),
			TokenBudget: int32(budget),
			Timeout:     getDuration("LLM_TIMEOUT", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			Max:           rlMax,
			WindowSeconds: rlWindow,
		},
		Port: getEnv("SERVER_PORT", "8084"),
	}

	if cfg.TMDB.APIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if len(cfg.LLM.Models) == 0 {
		return nil, fmt.Errorf("GEMINI_MODELS must list at least one model")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
