package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DataSourceCSV      = "csv"
	DataSourcePostgres = "postgres"
)

type Config struct {
	App       AppConfig
	Data      DataConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
}

type DataConfig struct {
	Source        string
	Dir           string
	SyntheticSeed int64
	SyntheticJobs int
	ExportPath    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

func (c DatabaseConfig) Configured() bool {
	return strings.TrimSpace(c.DBHost) != "" && strings.TrimSpace(c.DBName) != ""
}

// DSN builds a libpq keyword/value connection string. Values are quoted so
// passwords may contain spaces or quotes.
func (c DatabaseConfig) DSN() string {
	kv := []struct{ k, v string }{
		{"host", strings.TrimSpace(c.DBHost)},
		{"port", strings.TrimSpace(c.DBPort)},
		{"user", strings.TrimSpace(c.DBUser)},
		{"password", c.DBPassword},
		{"dbname", strings.TrimSpace(c.DBName)},
		{"sslmode", strings.TrimSpace(c.DBSSLMode)},
	}
	parts := make([]string, 0, len(kv))
	for _, p := range kv {
		if p.v == "" {
			continue
		}
		v := strings.ReplaceAll(p.v, `\`, `\\`)
		v = strings.ReplaceAll(v, `'`, `\'`)
		parts = append(parts, fmt.Sprintf("%s='%s'", p.k, v))
	}
	return strings.Join(parts, " ")
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

type AdminConfig struct {
	Username     string
	PasswordHash string
	JWTSecret    string
	JWTExpiresIn time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type TelemetryConfig struct {
	CollectorURL string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
		// bare integers are seconds
		if n, err := strconv.Atoi(raw); err == nil {
			return time.Duration(n) * time.Second
		}
		invalid = append(invalid, key)
		return def
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    opt("LOG_LEVEL"),
	}

	cfg.Data = DataConfig{
		Source:        strings.ToLower(optDefault("DATA_SOURCE", DataSourceCSV)),
		Dir:           optDefault("DATA_DIR", "data"),
		SyntheticSeed: int64(optInt("SYNTHETIC_SEED", 42)),
		SyntheticJobs: optInt("SYNTHETIC_JOBS", 2000),
		ExportPath:    optDefault("EXPORT_PATH", "job_title_skill_count.csv"),
	}
	if cfg.Data.Source != DataSourceCSV && cfg.Data.Source != DataSourcePostgres {
		invalid = append(invalid, "DATA_SOURCE")
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                optDefault("DB_PORT", "5432"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}
	if cfg.Data.Source == DataSourcePostgres && !cfg.Database.Configured() {
		missing = append(missing, "DB_HOST", "DB_NAME")
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
	}

	cfg.Cache = CacheConfig{
		TTL:        optDuration("CACHE_TTL", 10*time.Minute),
		MaxEntries: optInt("CACHE_MAX_ENTRIES", 256),
	}

	cfg.Admin = AdminConfig{
		Username:     optDefault("ADMIN_USERNAME", "admin"),
		PasswordHash: opt("ADMIN_PASSWORD_HASH"),
		JWTSecret:    opt("JWT_SECRET"),
		JWTExpiresIn: optDuration("JWT_EXPIRES_IN", time.Hour),
	}

	cfg.RateLimit = RateLimitConfig{
		RPS:   optFloat("RATE_LIMIT_RPS", 0),
		Burst: optInt("RATE_LIMIT_BURST", 20),
	}

	cfg.Telemetry = TelemetryConfig{
		CollectorURL: opt("OTEL_COLLECTOR_URL"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
