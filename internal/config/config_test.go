package config

import (
	"errors"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "dataitjobs")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("SYNTHETIC_SEED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Data.Source != DataSourceCSV {
		t.Fatalf("expected csv source, got %q", cfg.Data.Source)
	}
	if cfg.Data.Dir != "data" {
		t.Fatalf("expected data dir default, got %q", cfg.Data.Dir)
	}
	if cfg.Data.SyntheticSeed != 42 {
		t.Fatalf("expected seed 42, got %d", cfg.Data.SyntheticSeed)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Fatalf("expected 10m ttl, got %s", cfg.Cache.TTL)
	}
}

func TestLoad_CacheTTLSeconds(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_TTL", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Fatalf("expected 30s, got %s", cfg.Cache.TTL)
	}
}

func TestLoad_PostgresSourceRequiresDB(t *testing.T) {
	setRequired(t)
	t.Setenv("DATA_SOURCE", "postgres")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_InvalidSource(t *testing.T) {
	setRequired(t)
	t.Setenv("DATA_SOURCE", "parquet")

	_, err := Load()
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}

func TestDatabaseConfig_DSNQuotesValues(t *testing.T) {
	c := DatabaseConfig{
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "jobs",
		DBUser:     "app",
		DBPassword: `it's a pass`,
		DBSSLMode:  "disable",
	}
	want := `host='db' port='5432' user='app' password='it\'s a pass' dbname='jobs' sslmode='disable'`
	if got := c.DSN(); got != want {
		t.Fatalf("unexpected dsn:\n got %s\nwant %s", got, want)
	}
}

func TestDatabaseConfig_DSNSkipsEmpty(t *testing.T) {
	c := DatabaseConfig{DBHost: "db", DBName: "jobs"}
	if got := c.DSN(); got != "host='db' dbname='jobs'" {
		t.Fatalf("unexpected dsn: %s", got)
	}
}
