package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend selects where records are persisted when the embedded
// record-table service is enabled.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Record store access. Empty RecordStoreURL mounts the embedded
	// record-table service and points the adapters at it.
	RecordStoreURL string // ex: https://records.domain.ext (optional)
	ProjectID      string // record store project id
	PublicKey      string // record store public key
	RequestTimeout time.Duration // per remote call (default: 10s)

	CategoryFile    string        // path to categories.yaml (optional, empty = built-in catalog)
	RefreshInterval time.Duration // interval to re-fetch both feeds (default: 15m)

	// Embedded backend persistence ("sqlite" or "redis").
	Backend    string
	SQLitePath string // sqlite database file (default: ./cuelens.db)

	// Redis (required only when Backend=redis)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("CUELENS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("CUELENS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("CUELENS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CUELENS_PRETTY_LOG", true),

		// Record store
		RecordStoreURL: getenv("CUELENS_RECORD_STORE_URL", ""),
		ProjectID:      getenv("CUELENS_PROJECT_ID", "local"),
		PublicKey:      getenv("CUELENS_PUBLIC_KEY", "local"),
		RequestTimeout: mustDuration("CUELENS_REQUEST_TIMEOUT", 10*time.Second),

		CategoryFile:    getenv("CUELENS_CATEGORY_FILE", ""),
		RefreshInterval: mustDuration("CUELENS_REFRESH_INTERVAL", 15*time.Minute),

		// Embedded backend
		Backend:    strings.ToLower(getenv("CUELENS_BACKEND", BackendSQLite)),
		SQLitePath: getenv("CUELENS_SQLITE_PATH", "./cuelens.db"),
	}

	if cfg.Backend != BackendSQLite && cfg.Backend != BackendRedis {
		panic(fmt.Sprintf("❌ FATAL: Unknown CUELENS_BACKEND %q (want %q or %q)",
			cfg.Backend, BackendSQLite, BackendRedis))
	}

	// Redis settings only matter (and are only required) in redis mode.
	if cfg.Backend == BackendRedis && cfg.RecordStoreURL == "" {
		cfg.RedisAddr = requireEnv("CUELENS_REDIS_ADDR")
		cfg.RedisUser = getenv("CUELENS_REDIS_USERNAME", "default")
		cfg.RedisPassword = getenv("CUELENS_REDIS_PASSWORD", "")
		cfg.RedisDB = getenvInt("CUELENS_REDIS_DB", 0)
		cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
		cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
		cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
		cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
		cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
		cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
		cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
		cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
		cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
