package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	RedisPrefix string
	NATSURL     string
	NATSSubject string

	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string
	RedditBaseURL      string
	RedditTokenURL     string
	RedditRPS          int

	RefreshBudget time.Duration
	ChannelDelay  time.Duration
	CacheTTL      time.Duration
	LockTTL       time.Duration
	Workers       int
	Profile       string
}

// Load reads the environment, after merging a .env file when one exists.
// Variables already set in the environment win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not parse .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/insight?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisPrefix: env("REDIS_PREFIX", "insight:"),
		NATSURL:     env("NATS_URL", ""),
		NATSSubject: env("NATS_SUBJECT", "insight.review.refreshed"),

		RedditClientID:     env("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: env("REDDIT_CLIENT_SECRET", ""),
		RedditUserAgent:    env("REDDIT_USER_AGENT", "InsightEngine/1.0"),
		RedditBaseURL:      env("REDDIT_BASE_URL", "https://oauth.reddit.com"),
		RedditTokenURL:     env("REDDIT_TOKEN_URL", "https://www.reddit.com/api/v1/access_token"),
		RedditRPS:          atoi("REDDIT_RPS", 1),

		RefreshBudget: time.Duration(atoi("REFRESH_BUDGET_SECONDS", 30)) * time.Second,
		ChannelDelay:  time.Duration(atoi("CHANNEL_DELAY_MS", 500)) * time.Millisecond,
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		LockTTL:       time.Duration(atoi("LOCK_TTL_SECONDS", 60)) * time.Second,
		Workers:       atoi("INGEST_WORKERS", 4),
		Profile:       env("PROFILE", ""),
	}
	if !c.LiveFetch() {
		log.Warn().Msg("REDDIT_CLIENT_ID/REDDIT_CLIENT_SECRET empty, refreshes will use demo mode")
	}
	return c
}

// LiveFetch reports whether Reddit credentials are present.
func (c Config) LiveFetch() bool {
	return c.RedditClientID != "" && c.RedditClientSecret != ""
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
