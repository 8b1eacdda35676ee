package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	ReviewsFile string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	GoogleBase  string
	GoogleKey   string
	SourceRPS   int
	CacheTTL    time.Duration
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":3001"),
		MetricsAddr: env("METRICS_ADDR", ""),
		ReviewsFile: env("REVIEWS_FILE", "data/hostaway/reviews.json"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		GoogleBase:  env("GOOGLE_PLACES_BASE_URL", "https://places.googleapis.com/v1"),
		GoogleKey:   env("GOOGLE_PLACES_API_KEY", ""),
		SourceRPS:   atoi("SOURCE_RPS", 5),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.GoogleKey == "" {
		log.Warn().Msg("GOOGLE_PLACES_API_KEY is empty; google source runs as a stub")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
